package repository

import (
	"sync"

	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/pkg/util"
)

// Companies, advisors and clients are read-mostly reference data:
// replaced wholesale at startup (seed or snapshot restore), looked up
// by the ticket engine, listed by the directory service. No per-record
// mutation is exposed, so a ticket's references cannot be orphaned.

// CompanyRepository owns the company collection.
type CompanyRepository interface {
	GetByID(id string) (*domain.Company, error)
	GetByName(name string) (*domain.Company, error)
	List() []domain.Company
	ReplaceAll(companies []domain.Company)
}

// AdvisorRepository owns the advisor collection.
type AdvisorRepository interface {
	GetByID(id string) (*domain.Advisor, error)
	List() []domain.Advisor
	ReplaceAll(advisors []domain.Advisor)
}

// ClientRepository owns the client collection.
type ClientRepository interface {
	GetByID(id string) (*domain.Client, error)
	List() []domain.Client
	ReplaceAll(clients []domain.Client)
}

type companyRepository struct {
	mu        sync.RWMutex
	companies []domain.Company
}

// NewCompanyRepository returns an in-memory implementation.
func NewCompanyRepository() CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) GetByID(id string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.companies {
		if r.companies[i].ID == id {
			company := r.companies[i]
			return &company, nil
		}
	}
	return nil, util.NewNotFound("company")
}

func (r *companyRepository) GetByName(name string) (*domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.companies {
		if r.companies[i].Name == name {
			company := r.companies[i]
			return &company, nil
		}
	}
	return nil, util.NewNotFound("company")
}

func (r *companyRepository) List() []domain.Company {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Company, len(r.companies))
	copy(out, r.companies)
	return out
}

func (r *companyRepository) ReplaceAll(companies []domain.Company) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies = make([]domain.Company, len(companies))
	copy(r.companies, companies)
}

type advisorRepository struct {
	mu       sync.RWMutex
	advisors []domain.Advisor
}

// NewAdvisorRepository returns an in-memory implementation.
func NewAdvisorRepository() AdvisorRepository {
	return &advisorRepository{}
}

func (r *advisorRepository) GetByID(id string) (*domain.Advisor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.advisors {
		if r.advisors[i].ID == id {
			advisor := r.advisors[i]
			return &advisor, nil
		}
	}
	return nil, util.NewNotFound("advisor")
}

func (r *advisorRepository) List() []domain.Advisor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Advisor, len(r.advisors))
	copy(out, r.advisors)
	return out
}

func (r *advisorRepository) ReplaceAll(advisors []domain.Advisor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advisors = make([]domain.Advisor, len(advisors))
	copy(r.advisors, advisors)
}

type clientRepository struct {
	mu      sync.RWMutex
	clients []domain.Client
}

// NewClientRepository returns an in-memory implementation.
func NewClientRepository() ClientRepository {
	return &clientRepository{}
}

func (r *clientRepository) GetByID(id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.clients {
		if r.clients[i].ID == id {
			client := r.clients[i]
			return &client, nil
		}
	}
	return nil, util.NewNotFound("client")
}

func (r *clientRepository) List() []domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Client, len(r.clients))
	copy(out, r.clients)
	return out
}

func (r *clientRepository) ReplaceAll(clients []domain.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = make([]domain.Client, len(clients))
	copy(r.clients, clients)
}
