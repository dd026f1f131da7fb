package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soportek/deskcore/internal/domain"
	"github.com/soportek/deskcore/internal/events"
	"github.com/soportek/deskcore/internal/observability"
	"github.com/soportek/deskcore/internal/repository"
	"github.com/soportek/deskcore/internal/validation"
	"github.com/soportek/deskcore/pkg/util"
)

// TicketService owns the ticket lifecycle: a creation draft with
// defaults, validated create, one explicit edit slot, two-phase delete
// and the insertion-ordered listing. Each operation is check-then-act,
// so every entry point holds the service mutex end to end.
type TicketService struct {
	mu         sync.Mutex
	tickets    repository.TicketRepository
	directory  *DirectoryService
	authz      Authorizer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	draft         validation.TicketForm
	editing       *editSlot
	pendingDelete string
	creating      bool
}

// editSlot is the explicit edit state: which ticket, and the draft the
// caller is working on. At most one exists.
type editSlot struct {
	id    string
	draft validation.TicketForm
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Directory  *DirectoryService
	Authorizer Authorizer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		directory:  deps.Directory,
		authz:      deps.Authorizer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		draft:      NewTicketDraft(),
	}
}

// NewTicketDraft returns the default creation form: status open, dated
// today, everything else blank.
func NewTicketDraft() validation.TicketForm {
	return validation.TicketForm{
		Status: string(domain.TicketStatusOpen),
		Date:   time.Now().Format(domain.DateLayout),
	}
}

// Draft returns the current creation form.
func (s *TicketService) Draft() validation.TicketForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// StageDraft stores the caller's in-progress creation form.
func (s *TicketService) StageDraft(form validation.TicketForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = form
}

// Create validates the form and appends a new ticket. On validation or
// referential failure the collection is untouched and the error carries
// the field→message map. On success the draft resets to its defaults.
func (s *TicketService) Create(form validation.TicketForm) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authz.IsAdmin() {
		return nil, util.NewUnauthorized("admin role required")
	}
	if s.creating {
		return nil, util.NewConflict("a ticket creation is already in flight")
	}
	s.creating = true
	defer func() { s.creating = false }()

	if fields := s.checkForm(form); !fields.Valid() {
		s.metrics.RecordOperation("ticket_create", "validation_failed")
		return nil, util.NewValidationFailed(fields)
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Type:        domain.TicketType(form.Type),
		ReporterID:  form.ReporterID,
		Date:        form.Date,
		Status:      domain.TicketStatus(form.Status),
		AdvisorID:   form.AdvisorID,
		CompanyID:   form.CompanyID,
		Description: form.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tickets.Append(ticket); err != nil {
		return nil, err
	}

	s.draft = NewTicketDraft()
	s.metrics.RecordOperation("ticket_create", "ok")
	s.logger.Info("ticket created", zap.String("ticket_id", ticket.ID))
	s.publish(events.EventTicketCreated, ticket.ID)
	return ticket, nil
}

// BeginEdit loads a mutable copy of the ticket into the edit slot and
// clears prior validation state. Opening an edit while a different
// ticket's draft is unsaved is a conflict; the caller must cancel
// first. Reopening the same id reloads the stored record.
func (s *TicketService) BeginEdit(id string) (validation.TicketForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authz.IsAdmin() {
		return validation.TicketForm{}, util.NewUnauthorized("admin role required")
	}
	if s.editing != nil && s.editing.id != id {
		return validation.TicketForm{}, util.NewConflict("another ticket edit is in progress")
	}

	ticket, err := s.tickets.GetByID(id)
	if err != nil {
		return validation.TicketForm{}, err
	}
	form := formFromTicket(ticket)
	s.editing = &editSlot{id: id, draft: form}
	return form, nil
}

// Editing reports the open edit slot, if any.
func (s *TicketService) Editing() (string, validation.TicketForm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return "", validation.TicketForm{}, false
	}
	return s.editing.id, s.editing.draft, true
}

// CommitEdit validates the edited form and replaces the stored record.
// On failure the stored record is untouched and the slot stays open so
// the caller can correct and resubmit. An unchanged form commits as a
// no-op, leaving the stored record identical to its pre-edit value.
func (s *TicketService) CommitEdit(form validation.TicketForm) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authz.IsAdmin() {
		return nil, util.NewUnauthorized("admin role required")
	}
	if s.editing == nil {
		return nil, util.NewConflict("no ticket edit in progress")
	}

	if fields := s.checkForm(form); !fields.Valid() {
		s.editing.draft = form
		s.metrics.RecordOperation("ticket_edit", "validation_failed")
		return nil, util.NewValidationFailed(fields)
	}

	stored, err := s.tickets.GetByID(s.editing.id)
	if err != nil {
		return nil, err
	}
	if form == formFromTicket(stored) {
		s.editing = nil
		return stored, nil
	}

	updated := *stored
	updated.Type = domain.TicketType(form.Type)
	updated.ReporterID = form.ReporterID
	updated.Date = form.Date
	updated.Status = domain.TicketStatus(form.Status)
	updated.AdvisorID = form.AdvisorID
	updated.CompanyID = form.CompanyID
	updated.Description = form.Description
	updated.UpdatedAt = time.Now()

	if err := s.tickets.Replace(&updated); err != nil {
		return nil, err
	}
	s.editing = nil
	s.metrics.RecordOperation("ticket_edit", "ok")
	s.logger.Info("ticket updated", zap.String("ticket_id", updated.ID))
	s.publish(events.EventTicketUpdated, updated.ID)
	return &updated, nil
}

// CancelEdit discards the draft without touching the stored record.
// Idempotent.
func (s *TicketService) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// RequestDelete marks a ticket for deletion. Nothing is removed until
// ConfirmDelete.
func (s *TicketService) RequestDelete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authz.IsAdmin() {
		return util.NewUnauthorized("admin role required")
	}
	if _, err := s.tickets.GetByID(id); err != nil {
		return err
	}
	s.pendingDelete = id
	return nil
}

// PendingDelete reports the ticket currently marked for deletion.
func (s *TicketService) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete, s.pendingDelete != ""
}

// ConfirmDelete removes the marked ticket if still present and clears
// the mark. Without a prior RequestDelete it is a no-op.
func (s *TicketService) ConfirmDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingDelete == "" {
		return nil
	}
	if !s.authz.IsAdmin() {
		return util.NewUnauthorized("admin role required")
	}

	id := s.pendingDelete
	s.pendingDelete = ""
	if err := s.tickets.Remove(id); err != nil {
		if util.IsCode(err, util.CodeNotFound) {
			return nil
		}
		return err
	}
	s.metrics.RecordOperation("ticket_delete", "ok")
	s.logger.Info("ticket deleted", zap.String("ticket_id", id))
	s.publish(events.EventTicketDeleted, id)
	return nil
}

// CancelDelete clears the deletion mark without removing anything.
func (s *TicketService) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = ""
}

// List returns the collection in insertion order.
func (s *TicketService) List() []domain.Ticket {
	return s.tickets.List()
}

// checkForm runs field validation and, for fields that passed it, the
// referential checks against the directory. Failures share the same
// field keys so the caller renders them uniformly.
func (s *TicketService) checkForm(form validation.TicketForm) validation.FieldErrors {
	fields := validation.ValidateTicket(form)
	if _, failed := fields["reporter"]; !failed && !s.directory.ClientExists(form.ReporterID) {
		fields["reporter"] = "unknown reporter"
	}
	if _, failed := fields["advisor"]; !failed && !s.directory.AdvisorExists(form.AdvisorID) {
		fields["advisor"] = "unknown advisor"
	}
	if _, failed := fields["company"]; !failed && !s.directory.CompanyExists(form.CompanyID) {
		fields["company"] = "unknown company"
	}
	return fields
}

func (s *TicketService) publish(eventType events.EventType, ticketID string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(events.Event{Type: eventType, EntityID: ticketID})
}

func formFromTicket(ticket *domain.Ticket) validation.TicketForm {
	return validation.TicketForm{
		Type:        string(ticket.Type),
		ReporterID:  ticket.ReporterID,
		Date:        ticket.Date,
		Status:      string(ticket.Status),
		AdvisorID:   ticket.AdvisorID,
		CompanyID:   ticket.CompanyID,
		Description: ticket.Description,
	}
}
