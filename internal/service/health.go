package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"querybridge/internal/adapter"
	"querybridge/internal/model"
)

// Health states.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// BackendHealth is the probe result for one backend.
type BackendHealth struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthReport aggregates the probes of every backend.
type HealthReport struct {
	Status    string                   `json:"status"`
	Backends  map[string]BackendHealth `json:"backends"`
	Timestamp int64                    `json:"timestamp"`
}

// HealthService probes each adapter's Status operation independently of the analyzer.
type HealthService interface {
	Check(ctx context.Context) *HealthReport
}

type healthService struct {
	adapters []adapter.Adapter
}

// NewHealthService constructs a HealthService over the dispatcher's adapters.
func NewHealthService(d Dispatcher) HealthService {
	return &healthService{adapters: d.Adapters()}
}

func (s *healthService) Check(ctx context.Context) *HealthReport {
	results := make([]BackendHealth, len(s.adapters))

	var g errgroup.Group
	for i, a := range s.adapters {
		g.Go(func() error {
			p, err := adapter.Safe(ctx, a, model.OpStatus, "")
			results[i] = probe(p, err)
			return nil
		})
	}
	_ = g.Wait()

	report := &HealthReport{Backends: make(map[string]BackendHealth, len(s.adapters))}
	healthy, degraded := 0, 0
	for i, a := range s.adapters {
		report.Backends[string(a.Backend())] = results[i]
		switch results[i].Status {
		case HealthHealthy:
			healthy++
		case HealthDegraded:
			degraded++
		}
	}

	switch {
	case healthy == len(s.adapters):
		report.Status = HealthHealthy
	case healthy == 0 && degraded == 0:
		report.Status = HealthUnhealthy
	default:
		report.Status = HealthDegraded
	}
	report.Timestamp = model.Now()
	return report
}

func probe(p *adapter.Payload, err error) BackendHealth {
	h := BackendHealth{Message: p.Message, Error: p.Err()}
	switch {
	case err != nil || !p.Success:
		h.Status = HealthUnhealthy
	case p.Degraded:
		h.Status = HealthDegraded
	default:
		h.Status = HealthHealthy
		h.Details = p.Data
	}
	return h
}
