package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soportek/deskcore/internal/auth"
	"github.com/soportek/deskcore/internal/config"
	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/internal/events"
	"github.com/soportek/deskcore/internal/observability"
	"github.com/soportek/deskcore/internal/repository"
	"github.com/soportek/deskcore/internal/validation"
	"github.com/soportek/deskcore/pkg/util"
)

// AuthService owns the account collection and the single session slot.
// The slot is either empty (anonymous) or holds exactly one account.
type AuthService struct {
	mu         sync.Mutex
	accounts   repository.AccountRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	bcryptCost int

	session *domain.Account
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Metrics     *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokens:     auth.NewTokenManager(cfg.SessionTokenSecret, cfg.SessionTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates by username and secret. Both failure modes yield
// the same generic error so callers cannot enumerate usernames.
func (s *AuthService) Login(username, secret string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.GetByUsername(username)
	if err != nil {
		s.metrics.RecordOperation("login", "invalid_credentials")
		return nil, util.NewInvalidCredentials()
	}
	if err := auth.CompareSecret(account.SecretHash, secret); err != nil {
		s.metrics.RecordOperation("login", "invalid_credentials")
		return nil, util.NewInvalidCredentials()
	}

	s.session = account
	s.metrics.RecordOperation("login", "ok")
	s.logger.Info("session started", zap.String("username", account.Username))
	s.publish(events.EventSessionStarted, account.ID, account.Username)
	return copyAccount(account), nil
}

// Logout unconditionally clears the session slot.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	ended := s.session
	s.session = nil
	s.logger.Info("session ended", zap.String("username", ended.Username))
	s.publish(events.EventSessionEnded, ended.ID, ended.Username)
}

// Register creates a non-privileged account and, by policy, starts a
// session for it immediately.
func (s *AuthService) Register(form validation.RegistrationForm) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fields := validation.ValidateRegistration(form); !fields.Valid() {
		s.metrics.RecordOperation("register", "validation_failed")
		return nil, util.NewValidationFailed(fields)
	}
	if _, err := s.accounts.GetByUsername(form.Username); err == nil {
		s.metrics.RecordOperation("register", "conflict")
		return nil, util.NewConflict("username already exists")
	}
	if form.Email != "" {
		if _, err := s.accounts.GetByEmail(form.Email); err == nil {
			s.metrics.RecordOperation("register", "conflict")
			return nil, util.NewConflict("email already exists")
		}
	}

	hash, err := auth.HashSecret(form.Secret, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:         uuid.NewString(),
		Username:   form.Username,
		Email:      form.Email,
		SecretHash: hash,
		Role:       domain.RoleUser,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.accounts.Append(account); err != nil {
		return nil, err
	}

	s.session = account
	s.metrics.RecordOperation("register", "ok")
	s.logger.Info("account registered", zap.String("username", account.Username))
	s.publish(events.EventAccountRegistered, account.ID, account.Username)
	s.publish(events.EventSessionStarted, account.ID, account.Username)
	return copyAccount(account), nil
}

// UpdateProfile replaces the authenticated account in place. A blank
// secret keeps the stored hash unchanged.
func (s *AuthService) UpdateProfile(form validation.ProfileForm) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, util.NewUnauthorized("authentication required")
	}
	if fields := validation.ValidateProfile(form); !fields.Valid() {
		s.metrics.RecordOperation("update_profile", "validation_failed")
		return nil, util.NewValidationFailed(fields)
	}
	if form.Name != s.session.Username {
		if _, err := s.accounts.GetByUsername(form.Name); err == nil {
			return nil, util.NewConflict("username already exists")
		}
	}
	if form.Email != s.session.Email {
		if _, err := s.accounts.GetByEmail(form.Email); err == nil {
			return nil, util.NewConflict("email already exists")
		}
	}

	updated := *s.session
	updated.Username = form.Name
	updated.Email = form.Email
	if form.Secret != "" {
		hash, err := auth.HashSecret(form.Secret, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		updated.SecretHash = hash
	}
	updated.UpdatedAt = time.Now()

	if err := s.accounts.Update(&updated); err != nil {
		return nil, err
	}
	s.session = &updated
	s.metrics.RecordOperation("update_profile", "ok")
	s.logger.Info("profile updated", zap.String("username", updated.Username))
	return copyAccount(&updated), nil
}

// Session returns the current account, if any.
func (s *AuthService) Session() (*domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, false
	}
	return copyAccount(s.session), true
}

// IsAdmin reports whether the session holds an admin account.
func (s *AuthService) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.Role == domain.RoleAdmin
}

// SessionToken issues a signed token for the current session so the
// presentation layer can restore it after a restart.
func (s *AuthService) SessionToken() (string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", time.Time{}, util.NewUnauthorized("authentication required")
	}
	return s.tokens.Issue(s.session)
}

// RestoreSession rehydrates the slot from a previously issued token.
// The account must still exist.
func (s *AuthService) RestoreSession(tokenStr string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil, util.NewUnauthorized("invalid session token")
	}
	account, err := s.accounts.GetByID(claims.AccountID)
	if err != nil {
		return nil, util.NewUnauthorized("account no longer exists")
	}

	s.session = account
	s.publish(events.EventSessionStarted, account.ID, account.Username)
	return copyAccount(account), nil
}

func (s *AuthService) publish(eventType events.EventType, entityID, actor string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(events.Event{Type: eventType, EntityID: entityID, Actor: actor})
}

func copyAccount(account *domain.Account) *domain.Account {
	out := *account
	return &out
}
