package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketwiz/ticketwiz/internal/observability"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens and attaches the verified claims to the
// request. The claims themselves are the identity; no principal is loaded
// from storage.
type Middleware struct {
	tokens  *TokenManager
	metrics *observability.Metrics
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, metrics *observability.Metrics) *Middleware {
	return &Middleware{tokens: tokens, metrics: metrics}
}

// Handle enforces authentication for protected routes. An absent or
// malformed header yields MISSING_TOKEN; a bad signature or expired token
// yields INVALID_TOKEN. Both are terminal 401s.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		m.metrics.RecordAuthFailure("missing_token")
		return apperrors.NewMissingToken("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		m.metrics.RecordAuthFailure("missing_token")
		return apperrors.NewMissingToken("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		m.metrics.RecordAuthFailure("invalid_token")
		return apperrors.NewInvalidToken("invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified claims for the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
