package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketwiz/ticketwiz/internal/domain"
)

// TicketRepository encapsulates ticket persistence, always scoped by
// organization on reads and updates.
type TicketRepository interface {
	// Create inserts a new row. Status is forced to open regardless of the
	// value on the ticket; the seven supplied columns commit atomically.
	Create(ctx context.Context, ticket *domain.Ticket) error
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.Ticket, error)
	// UpdateStatus updates by primary key within the caller's organization;
	// pgx.ErrNoRows signals an id outside that tenant.
	UpdateStatus(ctx context.Context, orgID, id int64, status domain.TicketStatus) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (organization_id, user_id, title, description, status, priority, sentiment_score, ai_suggested_solution)
        VALUES ($1, $2, $3, $4, 'open', $5, $6, $7)
        RETURNING id, status, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.OrganizationID,
		ticket.UserID,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
		ticket.SentimentScore,
		ticket.AISuggestedSolution,
	).Scan(&ticket.ID, &ticket.Status, &ticket.CreatedAt)
}

func (r *ticketRepository) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Ticket, error) {
	const query = `
        SELECT id, organization_id, user_id, title, description, status, priority, sentiment_score, ai_suggested_solution, created_at
        FROM tickets WHERE organization_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, orgID, id int64, status domain.TicketStatus) error {
	const query = `
        UPDATE tickets SET status=$1 WHERE id=$2 AND organization_id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, id, orgID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.OrganizationID,
			&ticket.UserID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.SentimentScore,
			&ticket.AISuggestedSolution,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
