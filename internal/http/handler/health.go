package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"querybridge/internal/service"
)

// HealthCheck checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// BackendHealth probes both backends and reports healthy, degraded or unhealthy.
func BackendHealth(svc service.HealthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := svc.Check(c.UserContext())
		status := fiber.StatusOK
		if report.Status == service.HealthUnhealthy {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(report)
	}
}
