// Package persistence implements the load-all/save-all extension point
// bounding the in-memory core: a full snapshot is restored at startup
// and written at shutdown. The live collections never touch storage.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/soportek/deskcore/internal/domain"
)

// ErrNoSnapshot reports an empty store; callers fall back to seed data.
var ErrNoSnapshot = errors.New("no snapshot available")

// Snapshot is the serializable image of every collection.
type Snapshot struct {
	Tickets   []domain.Ticket  `json:"tickets"`
	Companies []domain.Company `json:"companies"`
	Advisors  []domain.Advisor `json:"advisors"`
	Clients   []domain.Client  `json:"clients"`
	Accounts  []domain.Account `json:"accounts"`
	SavedAt   time.Time        `json:"saved_at"`
}

// SnapshotStore loads and saves full snapshots.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close()
}
