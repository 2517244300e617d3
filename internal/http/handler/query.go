package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"querybridge/internal/command"
	"querybridge/internal/model"
	"querybridge/internal/service"
)

type queryRequest struct {
	Query string `json:"query" validate:"notblank"`
}

type commandRequest struct {
	Command string `json:"command" validate:"notblank"`
}

// queryResponse is the envelope echoed with the original text.
type queryResponse struct {
	model.QueryResult
	Query string `json:"query"`
}

// Commander runs operator commands. It is implemented by command.Interpreter.
type Commander interface {
	Run(ctx context.Context, text string) (*model.QueryResult, error)
}

// Query handles POST /api/query. It always answers with the envelope; the HTTP status
// separates malformed requests (400) and internal failures (500) from everything else.
func Query(svc service.QueryService, v *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(queryResponse{
				QueryResult: *model.NewFailure("invalid request body", nil),
			})
		}
		if err := v.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(queryResponse{
				QueryResult: *model.NewFailure("query is required and cannot be empty", nil),
				Query:       req.Query,
			})
		}

		res, err := svc.Execute(c.UserContext(), req.Query)
		status := fiber.StatusOK
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			status = fiber.StatusBadRequest
		case errors.Is(err, service.ErrInternal):
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(queryResponse{QueryResult: *res, Query: req.Query})
	}
}

// Analyze handles POST /api/analyze: classification only, no backend is contacted.
func Analyze(svc service.QueryService, v *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(model.NewFailure("invalid request body", nil))
		}
		if err := v.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(model.NewFailure("query is required and cannot be empty", nil))
		}

		a := svc.Analyze(req.Query)
		return c.JSON(model.NewSuccess("query analyzed", map[string]any{"analysis": a}))
	}
}

// Command handles POST /api/command.
func Command(cmd Commander, v *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commandRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(model.NewFailure("invalid request body", nil))
		}
		if err := v.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(model.NewFailure("command is required and cannot be empty", nil))
		}

		res, err := cmd.Run(c.UserContext(), req.Command)
		status := fiber.StatusOK
		switch {
		case err == nil:
		case errors.Is(err, command.ErrEmptyCommand), errors.Is(err, command.ErrUnknownCommand):
			status = fiber.StatusBadRequest
		default:
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(res)
	}
}
