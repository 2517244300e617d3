package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"querybridge/internal/config"
	"querybridge/internal/model"
)

var errDegraded = errors.New("degraded response")

// breakerAdapter trips after repeated backend failures and then fails calls fast
// until the open interval elapses.
type breakerAdapter struct {
	next Adapter
	cb   *gobreaker.CircuitBreaker
	log  *zap.Logger
}

// WithBreaker wraps next in a circuit breaker. It returns next unchanged when the breaker is disabled.
func WithBreaker(next Adapter, cfg config.BreakerConfig, log *zap.Logger) Adapter {
	if !cfg.Enabled {
		return next
	}
	if log == nil {
		log = zap.NewNop()
	}
	minReq := uint32(5)
	if cfg.MinRequests > 0 {
		minReq = uint32(cfg.MinRequests)
	}
	ratio := cfg.FailureRatio
	if ratio <= 0 {
		ratio = 0.8
	}
	open := time.Duration(cfg.OpenSec) * time.Second
	if open <= 0 {
		open = 30 * time.Second
	}

	name := fmt.Sprintf("%s-adapter", next.Backend())
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    open,
		Timeout:     open,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minReq {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Caller mistakes say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTargetRequired) || errors.Is(err, ErrTargetNotFound)
		},
	})

	return &breakerAdapter{next: next, cb: cb, log: log}
}

func (b *breakerAdapter) Backend() model.Backend {
	return b.next.Backend()
}

func (b *breakerAdapter) Capability() Capability {
	return b.next.Capability()
}

func (b *breakerAdapter) Execute(ctx context.Context, op model.Operation, target string) (*Payload, error) {
	var p *Payload
	var callErr error
	_, err := b.cb.Execute(func() (any, error) {
		p, callErr = Safe(ctx, b.next, op, target)
		if callErr == nil && p.Degraded {
			return nil, errDegraded
		}
		return nil, callErr
	})

	if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
		return p, callErr
	}

	b.log.Warn("backend call rejected by circuit breaker",
		zap.String("backend", string(b.Backend())),
		zap.String("operation", string(op)),
		zap.Error(err),
	)
	msg := fmt.Sprintf("%s backend temporarily unavailable", b.Backend())
	// Status keeps its never-fail contract while the breaker is open.
	if op == model.OpStatus {
		return degraded(b.Backend(), op, msg, map[string]any{}, err), nil
	}
	return Failure(b.Backend(), op, msg, err), err
}
