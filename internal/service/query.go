package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"querybridge/internal/intent"
	"querybridge/internal/model"
)

// QueryService is the outer boundary for free-text requests.
type QueryService interface {
	// Analyze classifies text without touching any backend.
	Analyze(text string) model.QueryAnalysis

	// Execute validates, classifies and dispatches text. The envelope is never nil.
	// ErrEmptyQuery and ErrInternal mark failures of the request itself; any other error
	// (for example a dispatch timeout) is already described by the envelope.
	Execute(ctx context.Context, text string) (*model.QueryResult, error)
}

type queryService struct {
	analyzer   *intent.Analyzer
	dispatcher Dispatcher
	log        *zap.Logger
}

// NewQueryService constructs a new QueryService.
func NewQueryService(analyzer *intent.Analyzer, dispatcher Dispatcher, log *zap.Logger) QueryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &queryService{analyzer: analyzer, dispatcher: dispatcher, log: log.With(zap.String("component", "query"))}
}

func (s *queryService) Analyze(text string) model.QueryAnalysis {
	return s.analyzer.Analyze(text)
}

func (s *queryService) Execute(ctx context.Context, text string) (res *model.QueryResult, err error) {
	if strings.TrimSpace(text) == "" {
		return model.NewFailure("query is required and cannot be empty", nil), ErrEmptyQuery
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("query processing panicked",
				zap.String("event", "query_panic"),
				zap.Any("panic", r),
			)
			res = model.NewFailure("internal error while processing query", nil)
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	analysis := s.analyzer.Analyze(text)
	s.log.Info("query classified",
		zap.String("event", "query_analyzed"),
		zap.String("backend", string(analysis.TargetBackend)),
		zap.String("operation", string(analysis.Operation)),
		zap.String("target", analysis.SpecificTarget),
	)

	res, err = s.dispatcher.Route(ctx, &analysis)
	if res == nil {
		if err == nil {
			err = errors.New("dispatcher returned no result")
		}
		return model.NewFailure("internal error while processing query", nil), fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return res, err
}
