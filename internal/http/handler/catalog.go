package handler

import (
	"github.com/gofiber/fiber/v2"

	"querybridge/internal/model"
	"querybridge/internal/service"
)

func Tools(cat service.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(model.NewSuccess("available backend tools", map[string]any{
			"tools": cat.Tools(),
		}))
	}
}

func Examples(cat service.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(model.NewSuccess("example queries", map[string]any{
			"examples": cat.Examples(),
		}))
	}
}
