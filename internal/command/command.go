// Package command interprets the short operator commands accepted by the command endpoint.
// It matches one keyword group per branch and does not use the intent analyzer.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"querybridge/internal/model"
	"querybridge/internal/service"
)

var (
	ErrEmptyCommand   = errors.New("command is required")
	ErrUnknownCommand = errors.New("unknown command")
)

// AvailableCommands is returned to callers that send an unrecognized command.
var AvailableCommands = []string{
	"backup postgres to mongodb",
	"sync databases",
	"analyze with available tools",
	"backup status",
}

type branch struct {
	keywords []string
	run      func(ctx context.Context, text string) (*model.QueryResult, error)
}

// Interpreter dispatches a command to the backup flow, an informational echo or the capability listing.
type Interpreter struct {
	branches []branch
}

// New creates an Interpreter.
func New(backups service.BackupService, catalog service.Catalog) *Interpreter {
	in := &Interpreter{}
	in.branches = []branch{
		{keywords: []string{"backup", "sync"}, run: func(ctx context.Context, _ string) (*model.QueryResult, error) {
			m, err := backups.Run(ctx)
			if err != nil {
				return model.NewFailure(fmt.Sprintf("backup failed: %v", err), nil), err
			}
			return model.NewSuccess(fmt.Sprintf("backup %s completed with status %s", m.ID, m.Status), map[string]any{
				"backup": m,
			}), nil
		}},
		{keywords: []string{"analyze", "check"}, run: func(_ context.Context, text string) (*model.QueryResult, error) {
			return model.NewSuccess("analysis command received", map[string]any{
				"command": text,
				"mode":    "analysis",
				"hint":    "send a natural-language request to the query endpoint for live analysis",
			}), nil
		}},
		{keywords: []string{"mcp", "tool"}, run: func(_ context.Context, _ string) (*model.QueryResult, error) {
			return model.NewSuccess("available backend tools", map[string]any{
				"tools": catalog.Tools(),
			}), nil
		}},
	}
	return in
}

// Run interprets text. The envelope is never nil.
func (in *Interpreter) Run(ctx context.Context, text string) (*model.QueryResult, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return model.NewFailure("command is required and cannot be empty", nil), ErrEmptyCommand
	}

	for _, b := range in.branches {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.run(ctx, text)
			}
		}
	}

	return model.NewFailure(fmt.Sprintf("unknown command: %s", text), map[string]any{
		"availableCommands": AvailableCommands,
	}), ErrUnknownCommand
}
