package domain

import "time"

// TicketStatus enumerates ticket lifecycle states. The lifecycle is
// one-directional: open tickets become resolved, never the reverse.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TicketStatus) bool {
	return s == TicketStatusOpen || s == TicketStatusResolved
}

// TicketPriority enumerates urgency as classified by the analysis step.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityLow    TicketPriority = "low"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityHigh, TicketPriorityMedium, TicketPriorityLow:
		return true
	}
	return false
}

// Ticket is a support request annotated by the analysis pipeline.
// UserID is nil exactly when the ticket arrived through the public,
// unauthenticated intake path.
type Ticket struct {
	ID                  int64
	OrganizationID      int64
	UserID              *int64
	Title               string
	Description         string
	Status              TicketStatus
	Priority            TicketPriority
	SentimentScore      float64
	AISuggestedSolution string
	CreatedAt           time.Time
}
