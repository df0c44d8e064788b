package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ticketwiz/ticketwiz/internal/auth"
	"github.com/ticketwiz/ticketwiz/internal/config"
	"github.com/ticketwiz/ticketwiz/internal/domain"
	"github.com/ticketwiz/ticketwiz/internal/repository"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

// Postgres error code for a unique-constraint violation.
const uniqueViolation = "23505"

// AuthService coordinates tenant registration and login.
type AuthService struct {
	users      repository.UserRepository
	orgs       repository.OrganizationRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, orgs repository.OrganizationRepository) *AuthService {
	return &AuthService{
		users:      users,
		orgs:       orgs,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterSaaS provisions a new organization with its admin user and mints
// the admin's first token. The organization and user rows commit together.
func (s *AuthService) RegisterSaaS(ctx context.Context, companyName, adminName, email, password string) (*domain.Organization, *domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, "", apperrors.NewConflict("email already exists", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, "", err
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return nil, nil, "", err
	}

	org := &domain.Organization{
		Name:   companyName,
		Domain: slugify(companyName),
		APIKey: apiKey,
	}
	admin := &domain.User{
		Name:         adminName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.orgs.CreateWithAdmin(ctx, org, admin); err != nil {
		// The pre-check above races with concurrent registrations; the
		// unique index on users.email is the authority.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, nil, "", apperrors.NewConflict("email already exists", nil)
		}
		return nil, nil, "", err
	}

	token, _, err := s.tokenMgr.IssueToken(admin)
	if err != nil {
		return nil, nil, "", err
	}
	return org, admin, token, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewBadCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewBadCredentials()
	}

	token, exp, err := s.tokenMgr.IssueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// slugify derives the routing slug from the company name: lowercased, with
// whitespace runs collapsed to single hyphens.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func generateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
