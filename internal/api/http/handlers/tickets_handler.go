package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketwiz/ticketwiz/internal/api/dto"
	"github.com/ticketwiz/ticketwiz/internal/auth"
	"github.com/ticketwiz/ticketwiz/internal/domain"
	"github.com/ticketwiz/ticketwiz/internal/service"
	apperrors "github.com/ticketwiz/ticketwiz/pkg/util/errorutil"
)

// TicketsHandler manages ticket intake and agent endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create handles POST /api/tickets/create. Organization and user ids come
// from the verified claims only.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewMissingToken("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}

	result, err := h.service.CreateForUser(c.UserContext(), claims.OrganizationID, claims.UserID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Ticket created",
		"ticketId":    result.Ticket.ID,
		"ai_analysis": result.Analysis,
	})
}

// List handles GET /api/tickets, scoped to the caller's organization.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewMissingToken("authentication required")
	}

	tickets, err := h.service.ListForOrganization(c.UserContext(), claims.OrganizationID)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.TicketFromDomain(&tickets[i]))
	}
	return c.JSON(items)
}

// UpdateStatus handles PUT /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewMissingToken("authentication required")
	}
	ticketID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdateStatus(c.UserContext(), claims.OrganizationID, ticketID, domain.TicketStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Updated"})
}

// CreatePublic handles POST /api/tickets/public/:orgId. No identity proof is
// required; the organization id is trusted from the path. The analysis
// record is deliberately not echoed to an anonymous caller.
func (h *TicketsHandler) CreatePublic(c *fiber.Ctx) error {
	orgID, err := strconv.ParseInt(c.Params("orgId"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid organization id", nil)
	}
	var req dto.PublicTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}

	if _, err := h.service.CreatePublic(c.UserContext(), orgID, req.Title, req.Description, req.CustomerEmail); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Ticket submitted successfully!",
	})
}
