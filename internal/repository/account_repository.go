package repository

import (
	"sync"

	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/pkg/util"
)

// AccountRepository owns the account collection. Accounts are appended
// by registration or seeding and updated in place; they are never
// deleted by this core.
type AccountRepository interface {
	Append(account *domain.Account) error
	Update(account *domain.Account) error
	GetByID(id string) (*domain.Account, error)
	GetByUsername(username string) (*domain.Account, error)
	GetByEmail(email string) (*domain.Account, error)
	List() []domain.Account
	ReplaceAll(accounts []domain.Account)
}

type accountRepository struct {
	mu       sync.RWMutex
	accounts []domain.Account
}

// NewAccountRepository returns an in-memory implementation.
func NewAccountRepository() AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Append(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == account.ID {
			return util.NewConflict("account id already exists")
		}
	}
	r.accounts = append(r.accounts, *account)
	return nil
}

func (r *accountRepository) Update(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == account.ID {
			r.accounts[i] = *account
			return nil
		}
	}
	return util.NewNotFound("account")
}

func (r *accountRepository) GetByID(id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			account := r.accounts[i]
			return &account, nil
		}
	}
	return nil, util.NewNotFound("account")
}

func (r *accountRepository) GetByUsername(username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].Username == username {
			account := r.accounts[i]
			return &account, nil
		}
	}
	return nil, util.NewNotFound("account")
}

func (r *accountRepository) GetByEmail(email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].Email == email {
			account := r.accounts[i]
			return &account, nil
		}
	}
	return nil, util.NewNotFound("account")
}

func (r *accountRepository) List() []domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

func (r *accountRepository) ReplaceAll(accounts []domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make([]domain.Account, len(accounts))
	copy(r.accounts, accounts)
}
