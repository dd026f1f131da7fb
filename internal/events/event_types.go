package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketUpdated     EventType = "ticket_updated"
	EventTicketDeleted     EventType = "ticket_deleted"
	EventAccountRegistered EventType = "account_registered"
	EventSessionStarted    EventType = "session_started"
	EventSessionEnded      EventType = "session_ended"
)

// AllTypes lists every event type, for subscribers that want the full
// stream (e.g. the audit logger).
func AllTypes() []EventType {
	return []EventType{
		EventTicketCreated,
		EventTicketUpdated,
		EventTicketDeleted,
		EventAccountRegistered,
		EventSessionStarted,
		EventSessionEnded,
	}
}

// Event is emitted by services after a successful mutation.
type Event struct {
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
