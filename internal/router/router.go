// Package router implements the dispatch coordinator: it sends a classified request to one
// backend adapter, or to both concurrently under a deadline, and wraps the outcome in an envelope.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"querybridge/internal/adapter"
	"querybridge/internal/model"
)

// DefaultTimeout bounds the join of a dual dispatch.
const DefaultTimeout = 30 * time.Second

var (
	ErrNilAnalysis = errors.New("nil analysis")
	ErrTimeout     = errors.New("dispatch timeout")
)

// Router is safe for concurrent use; it holds only read-only configuration.
type Router struct {
	relational adapter.Adapter
	document   adapter.Adapter
	timeout    time.Duration
	log        *zap.Logger
	metrics    *Metrics
	tracer     trace.Tracer
}

// Option configures a Router.
type Option func(*Router)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// New creates a Router over the relational and document adapters.
func New(relational, document adapter.Adapter, opts ...Option) *Router {
	r := &Router{
		relational: relational,
		document:   document,
		timeout:    DefaultTimeout,
		log:        zap.NewNop(),
		tracer:     otel.Tracer("querybridge/router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(zap.String("component", "router"))
	return r
}

// Adapters returns the relational and document adapters, in that order.
func (r *Router) Adapters() []adapter.Adapter {
	return []adapter.Adapter{r.relational, r.document}
}

// Route dispatches analysis and always returns a well-formed envelope. The error is non-nil
// only when the request itself failed (ErrNilAnalysis, ErrTimeout or a canceled context);
// per-backend failures are nested in the envelope data instead.
func (r *Router) Route(ctx context.Context, analysis *model.QueryAnalysis) (*model.QueryResult, error) {
	if analysis == nil {
		return model.NewFailure("internal error: missing query analysis", nil), ErrNilAnalysis
	}

	ctx, span := r.tracer.Start(ctx, "router.Route", trace.WithAttributes(
		attribute.String("querybridge.backend", string(analysis.TargetBackend)),
		attribute.String("querybridge.operation", string(analysis.Operation)),
		attribute.String("querybridge.target", analysis.SpecificTarget),
	))
	defer span.End()

	var (
		res *model.QueryResult
		err error
	)
	switch analysis.TargetBackend {
	case model.BackendRelational:
		res = r.single(ctx, r.relational, analysis)
	case model.BackendDocument:
		res = r.single(ctx, r.document, analysis)
	default:
		res, err = r.both(ctx, analysis)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (r *Router) single(ctx context.Context, a adapter.Adapter, analysis *model.QueryAnalysis) *model.QueryResult {
	p := r.call(ctx, a, analysis)
	return &model.QueryResult{
		Success:   p.Success,
		Message:   p.Message,
		Data:      p.Map(),
		Timestamp: model.Now(),
	}
}

func (r *Router) both(ctx context.Context, analysis *model.QueryAnalysis) (*model.QueryResult, error) {
	// Canceled once the join returns; an abandoned adapter call sees its context end.
	dctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var rel, doc *adapter.Payload
	var g errgroup.Group
	g.Go(func() error {
		rel = r.call(dctx, r.relational, analysis)
		return nil
	})
	g.Go(func() error {
		doc = r.call(dctx, r.document, analysis)
		return nil
	})

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		if r.metrics != nil {
			r.metrics.timeoutCount.Inc()
		}
		r.log.Warn("dual dispatch timed out",
			zap.String("event", "dispatch_timeout"),
			zap.String("operation", string(analysis.Operation)),
			zap.Duration("timeout", r.timeout),
		)
		msg := fmt.Sprintf("timeout: backends did not respond within %s", r.timeout)
		return model.NewFailure(msg, nil), ErrTimeout
	case <-ctx.Done():
		return model.NewFailure("request canceled before both backends responded", nil), ctx.Err()
	}

	return model.NewSuccess(
		fmt.Sprintf("%s; %s", rel.Message, doc.Message),
		map[string]any{
			string(model.BackendRelational): rel.Map(),
			string(model.BackendDocument):   doc.Map(),
		},
	), nil
}

// call runs one adapter call. It never panics and never returns nil.
func (r *Router) call(ctx context.Context, a adapter.Adapter, analysis *model.QueryAnalysis) *adapter.Payload {
	backend := a.Backend()
	ctx, span := r.tracer.Start(ctx, "adapter.Execute", trace.WithAttributes(
		attribute.String("querybridge.backend", string(backend)),
	))
	defer span.End()

	start := time.Now()
	p, err := adapter.Safe(ctx, a, analysis.Operation, analysis.SpecificTarget)
	elapsed := time.Since(start)

	outcome := "success"
	switch {
	case err != nil || !p.Success:
		outcome = "failure"
	case p.Degraded:
		outcome = "degraded"
	}

	if r.metrics != nil {
		r.metrics.dispatchCount.WithLabelValues(string(backend), string(analysis.Operation), outcome).Inc()
		r.metrics.adapterDuration.WithLabelValues(string(backend)).Observe(elapsed.Seconds())
	}

	fields := []zap.Field{
		zap.String("event", "adapter_call"),
		zap.String("backend", string(backend)),
		zap.String("operation", string(analysis.Operation)),
		zap.String("target", analysis.SpecificTarget),
		zap.String("status", outcome),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.log.Warn("adapter call failed", append(fields, zap.Error(err))...)
	} else {
		r.log.Info("adapter call completed", fields...)
	}
	return p
}
