package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketwiz/ticketwiz/internal/domain"
)

// OrganizationRepository defines persistence access for tenants.
type OrganizationRepository interface {
	// CreateWithAdmin inserts the organization and its admin user in one
	// transaction; either both rows commit or neither does.
	CreateWithAdmin(ctx context.Context, org *domain.Organization, admin *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository returns a Postgres-backed implementation.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

func (r *organizationRepository) CreateWithAdmin(ctx context.Context, org *domain.Organization, admin *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const orgQuery = `
        INSERT INTO organizations (name, domain, api_key)
        VALUES ($1, $2, $3)
        RETURNING id`
	if err := tx.QueryRow(ctx, orgQuery, org.Name, org.Domain, org.APIKey).Scan(&org.ID); err != nil {
		return err
	}

	const userQuery = `
        INSERT INTO users (organization_id, name, email, password_hash, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	admin.OrganizationID = org.ID
	if err := tx.QueryRow(ctx, userQuery,
		admin.OrganizationID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
	).Scan(&admin.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	const query = `
        SELECT id, name, domain, api_key
        FROM organizations WHERE id=$1`

	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Domain,
		&org.APIKey,
	); err != nil {
		return nil, err
	}
	return &org, nil
}
