package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketwiz/ticketwiz/internal/api/dto"
	"github.com/ticketwiz/ticketwiz/internal/service"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// RegisterSaaS handles POST /api/auth/register-saas.
func (h *AuthHandler) RegisterSaaS(c *fiber.Ctx) error {
	var req dto.RegisterSaaSRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CompanyName == "" || req.AdminName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("company_name, admin_name, email, password required", nil)
	}

	org, admin, token, err := h.auth.RegisterSaaS(c.UserContext(), req.CompanyName, req.AdminName, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":      "Organization registered successfully",
		"token":        token,
		"user":         dto.UserFromDomain(admin),
		"organization": dto.OrganizationFromDomain(org),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, _, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  dto.UserFromDomain(user),
	})
}
