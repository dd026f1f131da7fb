package repository

import (
	"sync"

	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/pkg/util"
)

// TicketRepository owns the ticket collection. All mutation goes
// through this interface and insertion order is preserved.
type TicketRepository interface {
	Append(ticket *domain.Ticket) error
	Replace(ticket *domain.Ticket) error
	Remove(id string) error
	GetByID(id string) (*domain.Ticket, error)
	List() []domain.Ticket
	ReplaceAll(tickets []domain.Ticket)
}

type ticketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewTicketRepository returns an in-memory implementation.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Append(ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == ticket.ID {
			return util.NewConflict("ticket id already exists")
		}
	}
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *ticketRepository) Replace(ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == ticket.ID {
			r.tickets[i] = *ticket
			return nil
		}
	}
	return util.NewNotFound("ticket")
}

func (r *ticketRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return nil
		}
	}
	return util.NewNotFound("ticket")
}

func (r *ticketRepository) GetByID(id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, util.NewNotFound("ticket")
}

func (r *ticketRepository) List() []domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out
}

func (r *ticketRepository) ReplaceAll(tickets []domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = make([]domain.Ticket, len(tickets))
	copy(r.tickets, tickets)
}
