package service

import (
	"testing"

	"go.uber.org/zap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/internal/observability"
	"github.com/soportek/deskcore/internal/repository"
	"github.com/soportek/deskcore/internal/validation"
	"github.com/soportek/deskcore/pkg/util"
)

type stubAuthz struct{ admin bool }

func (s stubAuthz) IsAdmin() bool { return s.admin }

type ticketFixture struct {
	service   *TicketService
	companyID string
	advisorID string
	clientID  string
}

func newTicketFixture(t *testing.T, admin bool) *ticketFixture {
	t.Helper()

	companyRepo := repository.NewCompanyRepository()
	companyRepo.ReplaceAll([]domain.Company{{ID: "company-1", Name: "TechCorp Solutions"}})
	advisorRepo := repository.NewAdvisorRepository()
	advisorRepo.ReplaceAll([]domain.Advisor{{ID: "advisor-1", Name: "Ana García"}})
	clientRepo := repository.NewClientRepository()
	clientRepo.ReplaceAll([]domain.Client{{ID: "client-1", Name: "Carlos Pérez", CompanyID: "company-1"}})

	directory := NewDirectoryService(DirectoryDependencies{
		CompanyRepo: companyRepo,
		AdvisorRepo: advisorRepo,
		ClientRepo:  clientRepo,
		Authorizer:  stubAuthz{admin: admin},
	})

	svc := NewTicketService(TicketDependencies{
		TicketRepo: repository.NewTicketRepository(),
		Directory:  directory,
		Authorizer: stubAuthz{admin: admin},
		Logger:     zap.NewNop(),
		Metrics:    observability.NewMetrics(),
	})

	return &ticketFixture{service: svc, companyID: "company-1", advisorID: "advisor-1", clientID: "client-1"}
}

func (f *ticketFixture) validForm() validation.TicketForm {
	return validation.TicketForm{
		Type:        "SUPPORT",
		ReporterID:  f.clientID,
		Date:        "2024-07-28",
		Status:      "OPEN",
		AdvisorID:   f.advisorID,
		CompanyID:   f.companyID,
		Description: "login problem",
	}
}

func TestCreateValidTicket(t *testing.T) {
	f := newTicketFixture(t, true)

	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)

	list := f.service.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	f := newTicketFixture(t, true)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		created, err := f.service.Create(f.validForm())
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "id %s reused", created.ID)
		seen[created.ID] = true
	}
	assert.Len(t, f.service.List(), 10)
}

func TestCreateMissingFieldsMutatesNothing(t *testing.T) {
	f := newTicketFixture(t, true)

	form := f.validForm()
	form.Description = ""
	form.AdvisorID = ""

	_, err := f.service.Create(form)
	require.Error(t, err)
	fields := util.FieldsOf(err)
	require.Len(t, fields, 2)
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "advisor")
	assert.Empty(t, f.service.List())
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	f := newTicketFixture(t, true)

	tests := []struct {
		name      string
		mutate    func(*validation.TicketForm)
		wantField string
		wantMsg   string
	}{
		{"unknown company", func(m *validation.TicketForm) { m.CompanyID = "ghost" }, "company", "unknown company"},
		{"unknown advisor", func(m *validation.TicketForm) { m.AdvisorID = "ghost" }, "advisor", "unknown advisor"},
		{"unknown reporter", func(m *validation.TicketForm) { m.ReporterID = "ghost" }, "reporter", "unknown reporter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := f.validForm()
			tt.mutate(&form)

			_, err := f.service.Create(form)
			require.Error(t, err)
			fields := util.FieldsOf(err)
			assert.Equal(t, tt.wantMsg, fields[tt.wantField])
			assert.Empty(t, f.service.List())
		})
	}
}

func TestCreateResetsDraft(t *testing.T) {
	f := newTicketFixture(t, true)

	staged := f.validForm()
	f.service.StageDraft(staged)
	require.Equal(t, staged, f.service.Draft())

	_, err := f.service.Create(staged)
	require.NoError(t, err)

	draft := f.service.Draft()
	assert.Equal(t, string(domain.TicketStatusOpen), draft.Status)
	assert.NotEmpty(t, draft.Date)
	assert.Empty(t, draft.Description)
	assert.Empty(t, draft.CompanyID)
}

func TestCreateRequiresAdmin(t *testing.T) {
	f := newTicketFixture(t, false)

	_, err := f.service.Create(f.validForm())
	assert.True(t, util.IsCode(err, util.CodeUnauthorized))
	assert.Empty(t, f.service.List())
}

func TestBeginEditUnknownID(t *testing.T) {
	f := newTicketFixture(t, true)

	_, err := f.service.BeginEdit("missing")
	assert.True(t, util.IsCode(err, util.CodeNotFound))

	_, _, editing := f.service.Editing()
	assert.False(t, editing)
}

func TestBeginEditConflictsWithOpenEdit(t *testing.T) {
	f := newTicketFixture(t, true)
	first, err := f.service.Create(f.validForm())
	require.NoError(t, err)
	second, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	_, err = f.service.BeginEdit(first.ID)
	require.NoError(t, err)

	// switching targets without an explicit discard is refused
	_, err = f.service.BeginEdit(second.ID)
	assert.True(t, util.IsCode(err, util.CodeConflict))

	// the same id may be reopened; it reloads the stored record
	_, err = f.service.BeginEdit(first.ID)
	assert.NoError(t, err)

	f.service.CancelEdit()
	_, err = f.service.BeginEdit(second.ID)
	assert.NoError(t, err)
}

func TestCommitEditRoundTripUnchanged(t *testing.T) {
	f := newTicketFixture(t, true)
	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	before, err := f.service.BeginEdit(created.ID)
	require.NoError(t, err)

	_, err = f.service.CommitEdit(before)
	require.NoError(t, err)

	list := f.service.List()
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])

	_, _, editing := f.service.Editing()
	assert.False(t, editing)
}

func TestCommitEditAppliesChanges(t *testing.T) {
	f := newTicketFixture(t, true)
	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	form, err := f.service.BeginEdit(created.ID)
	require.NoError(t, err)
	form.Status = "RESOLVED"
	form.Description = "fixed by resetting the password"

	updated, err := f.service.CommitEdit(form)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)

	list := f.service.List()
	require.Len(t, list, 1)
	assert.Equal(t, "fixed by resetting the password", list[0].Description)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCommitEditValidationFailureLeavesStoredUntouched(t *testing.T) {
	f := newTicketFixture(t, true)
	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	form, err := f.service.BeginEdit(created.ID)
	require.NoError(t, err)
	form.Description = ""

	_, err = f.service.CommitEdit(form)
	require.Error(t, err)
	assert.Contains(t, util.FieldsOf(err), "description")

	list := f.service.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.Description, list[0].Description)

	// the slot stays open for correction
	id, draft, editing := f.service.Editing()
	assert.True(t, editing)
	assert.Equal(t, created.ID, id)
	assert.Empty(t, draft.Description)
}

func TestCommitEditWithoutOpenSlot(t *testing.T) {
	f := newTicketFixture(t, true)

	_, err := f.service.CommitEdit(f.validForm())
	assert.True(t, util.IsCode(err, util.CodeConflict))
}

func TestCancelEditIsIdempotent(t *testing.T) {
	f := newTicketFixture(t, true)
	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	_, err = f.service.BeginEdit(created.ID)
	require.NoError(t, err)

	f.service.CancelEdit()
	f.service.CancelEdit()

	list := f.service.List()
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])
}

func TestDeleteIsTwoPhase(t *testing.T) {
	f := newTicketFixture(t, true)
	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	// confirm without a prior request is a no-op
	require.NoError(t, f.service.ConfirmDelete())
	assert.Len(t, f.service.List(), 1)

	require.NoError(t, f.service.RequestDelete(created.ID))
	id, pending := f.service.PendingDelete()
	assert.True(t, pending)
	assert.Equal(t, created.ID, id)
	assert.Len(t, f.service.List(), 1, "request alone must not mutate")

	require.NoError(t, f.service.ConfirmDelete())
	assert.Empty(t, f.service.List())

	_, pending = f.service.PendingDelete()
	assert.False(t, pending)
}

func TestCancelDeleteClearsMark(t *testing.T) {
	f := newTicketFixture(t, true)
	created, err := f.service.Create(f.validForm())
	require.NoError(t, err)

	require.NoError(t, f.service.RequestDelete(created.ID))
	f.service.CancelDelete()

	require.NoError(t, f.service.ConfirmDelete())
	assert.Len(t, f.service.List(), 1)
}

func TestRequestDeleteUnknownID(t *testing.T) {
	f := newTicketFixture(t, true)

	err := f.service.RequestDelete("missing")
	assert.True(t, util.IsCode(err, util.CodeNotFound))

	_, pending := f.service.PendingDelete()
	assert.False(t, pending)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	f := newTicketFixture(t, true)

	var ids []string
	for _, desc := range []string{"first", "second", "third"} {
		form := f.validForm()
		form.Description = desc
		created, err := f.service.Create(form)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	list := f.service.List()
	require.Len(t, list, 3)
	for i, ticket := range list {
		assert.Equal(t, ids[i], ticket.ID)
	}
}
