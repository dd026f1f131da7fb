package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/pkg/util"
)

func ticket(id, description string) *domain.Ticket {
	return &domain.Ticket{
		ID:          id,
		Type:        domain.TicketTypeSupport,
		Status:      domain.TicketStatusOpen,
		Description: description,
	}
}

func TestTicketRepositoryInsertionOrder(t *testing.T) {
	repo := NewTicketRepository()
	require.NoError(t, repo.Append(ticket("a", "first")))
	require.NoError(t, repo.Append(ticket("b", "second")))
	require.NoError(t, repo.Append(ticket("c", "third")))

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})

	// removal keeps the relative order of the rest
	require.NoError(t, repo.Remove("b"))
	list = repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, []string{"a", "c"}, []string{list[0].ID, list[1].ID})
}

func TestTicketRepositoryDuplicateID(t *testing.T) {
	repo := NewTicketRepository()
	require.NoError(t, repo.Append(ticket("a", "first")))

	err := repo.Append(ticket("a", "again"))
	assert.True(t, util.IsCode(err, util.CodeConflict))
	assert.Len(t, repo.List(), 1)
}

func TestTicketRepositoryReplace(t *testing.T) {
	repo := NewTicketRepository()
	require.NoError(t, repo.Append(ticket("a", "before")))

	updated := ticket("a", "after")
	require.NoError(t, repo.Replace(updated))

	got, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "after", got.Description)

	err = repo.Replace(ticket("missing", "x"))
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestTicketRepositoryGetByIDReturnsCopy(t *testing.T) {
	repo := NewTicketRepository()
	require.NoError(t, repo.Append(ticket("a", "original")))

	got, err := repo.GetByID("a")
	require.NoError(t, err)
	got.Description = "mutated"

	stored, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Description)
}

func TestTicketRepositoryMissing(t *testing.T) {
	repo := NewTicketRepository()

	_, err := repo.GetByID("nope")
	assert.True(t, util.IsCode(err, util.CodeNotFound))
	assert.True(t, util.IsCode(repo.Remove("nope"), util.CodeNotFound))
}

func TestAccountRepositoryLookups(t *testing.T) {
	repo := NewAccountRepository()
	require.NoError(t, repo.Append(&domain.Account{ID: "1", Username: "admin", Email: "admin@desk.io", Role: domain.RoleAdmin}))

	byName, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "1", byName.ID)

	byEmail, err := repo.GetByEmail("admin@desk.io")
	require.NoError(t, err)
	assert.Equal(t, "1", byEmail.ID)

	_, err = repo.GetByUsername("ghost")
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestDirectoryRepositoriesReplaceAll(t *testing.T) {
	companies := NewCompanyRepository()
	companies.ReplaceAll([]domain.Company{{ID: "c1", Name: "TechCorp Solutions"}})

	byName, err := companies.GetByName("TechCorp Solutions")
	require.NoError(t, err)
	assert.Equal(t, "c1", byName.ID)

	advisors := NewAdvisorRepository()
	advisors.ReplaceAll([]domain.Advisor{{ID: "a1", Name: "Ana García"}})
	got, err := advisors.GetByID("a1")
	require.NoError(t, err)
	assert.Equal(t, "Ana García", got.Name)

	clients := NewClientRepository()
	clients.ReplaceAll([]domain.Client{{ID: "k1", Email: "carlos.perez@client1.com", CompanyID: "c1"}})
	assert.Len(t, clients.List(), 1)
}
