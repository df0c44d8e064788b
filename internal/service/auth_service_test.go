package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketwiz/ticketwiz/internal/auth"
	"github.com/ticketwiz/ticketwiz/internal/config"
	"github.com/ticketwiz/ticketwiz/internal/domain"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

type mockUserRepo struct {
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

type mockOrgRepo struct {
	createFn  func(ctx context.Context, org *domain.Organization, admin *domain.User) error
	getByIDFn func(ctx context.Context, id int64) (*domain.Organization, error)
}

func (m *mockOrgRepo) CreateWithAdmin(ctx context.Context, org *domain.Organization, admin *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, org, admin)
	}
	org.ID = 42
	admin.ID = 7
	admin.OrganizationID = org.ID
	return nil
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 24, BcryptCost: 4}
}

func TestRegisterSaaSProvisionsOrgAndAdmin(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), &mockUserRepo{}, &mockOrgRepo{})

	org, admin, token, err := svc.RegisterSaaS(context.Background(), "Acme Rocket Co", "Ada", "ada@acme.test", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "Acme Rocket Co", org.Name)
	assert.Equal(t, "acme-rocket-co", org.Domain)
	assert.Len(t, org.APIKey, 64)

	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, org.ID, admin.OrganizationID)
	assert.NotEqual(t, "s3cret", admin.PasswordHash)

	claims, err := auth.NewTokenManager("test-secret", 24*time.Hour).ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, org.ID, claims.OrganizationID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRegisterSaaSRejectsDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 1, Email: email}, nil
	}}
	orgs := &mockOrgRepo{createFn: func(context.Context, *domain.Organization, *domain.User) error {
		t.Fatal("no rows may be written for a duplicate email")
		return nil
	}}
	svc := NewAuthService(testAuthConfig(), users, orgs)

	_, _, _, err := svc.RegisterSaaS(context.Background(), "Acme", "Ada", "taken@acme.test", "pw")
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterSaaSMapsUniqueViolationToConflict(t *testing.T) {
	// Two concurrent registrations can both pass the email pre-check; the
	// loser hits the unique index inside CreateWithAdmin.
	orgs := &mockOrgRepo{createFn: func(context.Context, *domain.Organization, *domain.User) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}}
	svc := NewAuthService(testAuthConfig(), &mockUserRepo{}, orgs)

	_, _, _, err := svc.RegisterSaaS(context.Background(), "Acme", "Ada", "taken@acme.test", "pw")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)

	users := &mockUserRepo{getByEmailFn: func(context.Context, string) (*domain.User, error) {
		return &domain.User{ID: 7, OrganizationID: 42, Email: "ada@acme.test", PasswordHash: hash, Role: domain.RoleAgent}, nil
	}}
	svc := NewAuthService(testAuthConfig(), users, &mockOrgRepo{})

	user, token, exp, err := svc.Login(context.Background(), "ada@acme.test", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)

	users := &mockUserRepo{getByEmailFn: func(context.Context, string) (*domain.User, error) {
		return &domain.User{ID: 7, PasswordHash: hash}, nil
	}}
	svc := NewAuthService(testAuthConfig(), users, &mockOrgRepo{})

	_, _, _, err = svc.Login(context.Background(), "ada@acme.test", "wrong")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "BAD_CREDENTIALS", domainErr.Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), &mockUserRepo{}, &mockOrgRepo{})

	_, _, _, err := svc.Login(context.Background(), "ghost@acme.test", "pw")
	require.Error(t, err)
	assert.Equal(t, "BAD_CREDENTIALS", apperrors.ToDomainError(err).Code)
}
