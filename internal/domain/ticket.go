package domain

import "time"

// TicketType enumerates the kinds of reported work.
type TicketType string

const (
	TicketTypeSupport  TicketType = "SUPPORT"
	TicketTypeIncident TicketType = "INCIDENT"
	TicketTypeInquiry  TicketType = "INQUIRY"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// DateLayout is the calendar-date format carried by Ticket.Date.
const DateLayout = "2006-01-02"

// Ticket is the aggregate for reported work items. Reporter, advisor
// and company are held as stable ids, never display names.
type Ticket struct {
	ID          string
	Type        TicketType
	ReporterID  string
	Date        string
	Status      TicketStatus
	AdvisorID   string
	CompanyID   string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
