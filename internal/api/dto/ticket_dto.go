package dto

import (
	"time"

	"github.com/ticketwiz/ticketwiz/internal/domain"
)

// CreateTicketRequest payload for the authenticated intake path.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PublicTicketRequest payload for the unauthenticated intake path.
type PublicTicketRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CustomerEmail string `json:"customer_email"`
}

// UpdateStatusRequest payload for status transitions.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the full ticket row as exposed to agents.
type TicketResponse struct {
	ID                  int64                 `json:"id"`
	OrganizationID      int64                 `json:"organization_id"`
	UserID              *int64                `json:"user_id"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Status              domain.TicketStatus   `json:"status"`
	Priority            domain.TicketPriority `json:"priority"`
	SentimentScore      float64               `json:"sentiment_score"`
	AISuggestedSolution string                `json:"ai_suggested_solution"`
	CreatedAt           time.Time             `json:"created_at"`
}

// TicketFromDomain maps a ticket for API responses.
func TicketFromDomain(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                  ticket.ID,
		OrganizationID:      ticket.OrganizationID,
		UserID:              ticket.UserID,
		Title:               ticket.Title,
		Description:         ticket.Description,
		Status:              ticket.Status,
		Priority:            ticket.Priority,
		SentimentScore:      ticket.SentimentScore,
		AISuggestedSolution: ticket.AISuggestedSolution,
		CreatedAt:           ticket.CreatedAt,
	}
}
