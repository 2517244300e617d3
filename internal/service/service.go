// Package service holds the use cases behind the HTTP and CLI surfaces: natural-language queries,
// health probing, the static catalog and the backup flow.
package service

import (
	"context"
	"errors"

	"querybridge/internal/adapter"
	"querybridge/internal/model"
)

var (
	ErrEmptyQuery = errors.New("query is required")
	ErrInternal   = errors.New("internal error")
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("backup not found")
)

// Dispatcher routes a classified request to the backend adapters.
// It is implemented by router.Router.
type Dispatcher interface {
	Route(ctx context.Context, analysis *model.QueryAnalysis) (*model.QueryResult, error)
	Adapters() []adapter.Adapter
}
