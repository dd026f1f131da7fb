// Package seed provides the startup fixtures used when no snapshot is
// available. Account secrets come from configuration and are hashed
// before they enter the collection.
package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/soportek/deskcore/internal/auth"
	"github.com/soportek/deskcore/internal/config"
	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/internal/persistence"
)

// Data builds the fixture snapshot.
func Data(cfg config.SeedConfig, bcryptCost int) (*persistence.Snapshot, error) {
	companies := []domain.Company{
		{ID: uuid.NewString(), Name: "TechCorp Solutions", Address: "123 Main St", Phone: "555-1234", Email: "info@techcorp.com", ContactName: "Alice Smith"},
		{ID: uuid.NewString(), Name: "Global Innovations", Address: "456 Oak Ave", Phone: "555-5678", Email: "sales@global.com", ContactName: "Bob Johnson"},
		{ID: uuid.NewString(), Name: "DataSys Systems", Address: "789 Pine Ln", Phone: "555-9012", Email: "support@datasys.com", ContactName: "Charlie Brown"},
	}

	advisors := []domain.Advisor{
		{ID: uuid.NewString(), Name: "Ana García", Phone: "555-2468", Email: "ana.garcia@example.com", WorkerNumber: "12345"},
		{ID: uuid.NewString(), Name: "Luis Martínez", Phone: "555-1357", Email: "luis.martinez@example.com", WorkerNumber: "67890"},
	}

	clients := []domain.Client{
		{ID: uuid.NewString(), Name: "Carlos Pérez", Email: "carlos.perez@client1.com", CompanyID: companies[0].ID},
		{ID: uuid.NewString(), Name: "Laura Rodríguez", Email: "laura.rodriguez@client2.com", CompanyID: companies[1].ID},
	}

	now := time.Now()
	tickets := []domain.Ticket{
		{
			ID:          uuid.NewString(),
			Type:        domain.TicketTypeSupport,
			ReporterID:  clients[0].ID,
			Date:        "2024-07-28",
			Status:      domain.TicketStatusOpen,
			AdvisorID:   advisors[0].ID,
			CompanyID:   companies[0].ID,
			Description: "Login problem",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Type:        domain.TicketTypeIncident,
			ReporterID:  clients[1].ID,
			Date:        "2024-07-27",
			Status:      domain.TicketStatusInProgress,
			AdvisorID:   advisors[1].ID,
			CompanyID:   companies[1].ID,
			Description: "Payment processing error",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Type:        domain.TicketTypeInquiry,
			ReporterID:  clients[0].ID,
			Date:        "2024-07-26",
			Status:      domain.TicketStatusClosed,
			AdvisorID:   advisors[0].ID,
			CompanyID:   companies[0].ID,
			Description: "Question about the API",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	adminHash, err := auth.HashSecret(cfg.AdminSecret, bcryptCost)
	if err != nil {
		return nil, err
	}
	userHash, err := auth.HashSecret(cfg.UserSecret, bcryptCost)
	if err != nil {
		return nil, err
	}

	accounts := []domain.Account{
		{
			ID:         uuid.NewString(),
			Username:   cfg.AdminUsername,
			Email:      cfg.AdminEmail,
			SecretHash: adminHash,
			Role:       domain.RoleAdmin,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.NewString(),
			Username:   cfg.UserUsername,
			Email:      cfg.UserEmail,
			SecretHash: userHash,
			Role:       domain.RoleUser,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	return &persistence.Snapshot{
		Tickets:   tickets,
		Companies: companies,
		Advisors:  advisors,
		Clients:   clients,
		Accounts:  accounts,
	}, nil
}
