package events

import (
	"time"

	"github.com/ticketwiz/ticketwiz/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventAnalysisDefaulted   EventType = "analysis_defaulted"
)

// Source identifies which intake path produced a ticket.
type Source string

const (
	SourceAuthenticated Source = "authenticated"
	SourcePublic        Source = "public"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	OrganizationID int64       `json:"organization_id"`
	TicketID       int64       `json:"ticket_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Source   Source                `json:"source"`
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	NewStatus domain.TicketStatus `json:"new_status"`
}

// AnalysisDefaultedPayload records why a ticket fell back to the default
// analysis record.
type AnalysisDefaultedPayload struct {
	Reason string `json:"reason"`
}
