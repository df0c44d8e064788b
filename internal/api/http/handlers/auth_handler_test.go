package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ticketwiz/ticketwiz/internal/auth"
	"github.com/ticketwiz/ticketwiz/internal/domain"
)

func TestRegisterSaaS(t *testing.T) {
	f := newFixture(t, &mockTicketRepo{}, &stubAnalyzer{}, &mockUserRepo{})

	req := jsonRequest("POST", "/api/auth/register-saas", fiber.Map{
		"company_name": "Acme Rocket Co",
		"admin_name":   "Ada",
		"email":        "ada@acme.test",
		"password":     "s3cret",
	})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Organization struct {
			Name   string `json:"name"`
			Domain string `json:"domain"`
		} `json:"organization"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Organization registered successfully", body.Message)
	assert.Equal(t, "ada@acme.test", body.User.Email)
	assert.Equal(t, "admin", body.User.Role)
	assert.Equal(t, "acme-rocket-co", body.Organization.Domain)

	claims, err := f.authService.TokenManager().ParseToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.OrganizationID)
}

func TestRegisterSaaSRejectsIncompletePayload(t *testing.T) {
	f := newFixture(t, &mockTicketRepo{}, &stubAnalyzer{}, &mockUserRepo{})

	req := jsonRequest("POST", "/api/auth/register-saas", fiber.Map{
		"company_name": "Acme",
		"email":        "ada@acme.test",
	})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockUserRepo{getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{
			ID:             7,
			OrganizationID: 42,
			Name:           "Ada",
			Email:          email,
			PasswordHash:   hash,
			Role:           domain.RoleAdmin,
		}, nil
	}}
	f := newFixture(t, &mockTicketRepo{}, &stubAnalyzer{}, users)

	req := jsonRequest("POST", "/api/auth/login", fiber.Map{
		"email":    "ada@acme.test",
		"password": "s3cret",
	})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)

	// The issued token must be accepted by the protected routes.
	listReq := jsonRequest("GET", "/api/tickets", nil)
	listReq.Header.Set("Authorization", "Bearer "+body.Token)
	listResp, err := f.app.Test(listReq)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockUserRepo{getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: 7, OrganizationID: 42, Email: email, PasswordHash: hash}, nil
	}}
	f := newFixture(t, &mockTicketRepo{}, &stubAnalyzer{}, users)

	req := jsonRequest("POST", "/api/auth/login", fiber.Map{
		"email":    "ada@acme.test",
		"password": "wrong",
	})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "BAD_CREDENTIALS", body.Error.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t, &mockTicketRepo{}, &stubAnalyzer{}, &mockUserRepo{})

	req := jsonRequest("POST", "/api/auth/login", fiber.Map{
		"email":    "nobody@acme.test",
		"password": "s3cret",
	})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
