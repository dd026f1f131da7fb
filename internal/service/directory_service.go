package service

import (
	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/internal/repository"
	"github.com/soportek/deskcore/pkg/util"
)

// Authorizer answers the role predicate that gates mutating surfaces
// and the directory listings.
type Authorizer interface {
	IsAdmin() bool
}

// DirectoryService exposes the read-only company/advisor/client
// listings and the existence lookups the ticket engine relies on.
// Reference data is replaced wholesale at startup and never mutated
// afterwards, so removal policy does not arise (reject by construction).
type DirectoryService struct {
	companies repository.CompanyRepository
	advisors  repository.AdvisorRepository
	clients   repository.ClientRepository
	authz     Authorizer
}

// DirectoryDependencies bundles repositories for the directory service.
type DirectoryDependencies struct {
	CompanyRepo repository.CompanyRepository
	AdvisorRepo repository.AdvisorRepository
	ClientRepo  repository.ClientRepository
	Authorizer  Authorizer
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		companies: deps.CompanyRepo,
		advisors:  deps.AdvisorRepo,
		clients:   deps.ClientRepo,
		authz:     deps.Authorizer,
	}
}

// Companies returns the company listing. Admin only.
func (s *DirectoryService) Companies() ([]domain.Company, error) {
	if !s.authz.IsAdmin() {
		return nil, util.NewUnauthorized("admin role required")
	}
	return s.companies.List(), nil
}

// Advisors returns the advisor listing. Admin only.
func (s *DirectoryService) Advisors() ([]domain.Advisor, error) {
	if !s.authz.IsAdmin() {
		return nil, util.NewUnauthorized("admin role required")
	}
	return s.advisors.List(), nil
}

// Clients returns the client listing. Admin only.
func (s *DirectoryService) Clients() ([]domain.Client, error) {
	if !s.authz.IsAdmin() {
		return nil, util.NewUnauthorized("admin role required")
	}
	return s.clients.List(), nil
}

// CompanyExists reports whether a company id resolves.
func (s *DirectoryService) CompanyExists(id string) bool {
	_, err := s.companies.GetByID(id)
	return err == nil
}

// AdvisorExists reports whether an advisor id resolves.
func (s *DirectoryService) AdvisorExists(id string) bool {
	_, err := s.advisors.GetByID(id)
	return err == nil
}

// ClientExists reports whether a client id resolves.
func (s *DirectoryService) ClientExists(id string) bool {
	_, err := s.clients.GetByID(id)
	return err == nil
}
