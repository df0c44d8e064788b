package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketwiz/ticketwiz/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName        string
	version            string
	postgres           *persistence.Postgres
	redis              *persistence.Redis
	analysisConfigured bool
}

// NewHealthHandler returns a new handler instance. analysisConfigured
// reports whether the text-analysis provider has credentials.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, analysisConfigured bool) *HealthHandler {
	return &HealthHandler{
		serviceName:        serviceName,
		version:            version,
		postgres:           postgres,
		redis:              redis,
		analysisConfigured: analysisConfigured,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. Postgres and Redis gate readiness; the
// analysis provider does not, since ticket intake proceeds with the default
// record when the provider is down. Its state is still surfaced so operators
// can tell a degraded pipeline from an unconfigured one.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.postgres.Ping(ctx); err != nil {
		depStatus["postgres"] = err.Error()
		ready = false
	} else {
		depStatus["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		ready = false
	} else {
		depStatus["redis"] = "ok"
	}

	if h.analysisConfigured {
		depStatus["analysis"] = "configured"
	} else {
		depStatus["analysis"] = "unconfigured"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
