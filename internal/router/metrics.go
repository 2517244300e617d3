package router

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatch collectors.
type Metrics struct {
	dispatchCount   *prometheus.CounterVec
	timeoutCount    prometheus.Counter
	adapterDuration *prometheus.HistogramVec
}

// NewMetrics creates the dispatch collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatchCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querybridge_dispatch_total",
				Help: "Total number of adapter calls made by the dispatch coordinator.",
			},
			[]string{"backend", "operation", "outcome"},
		),
		timeoutCount: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "querybridge_dispatch_timeouts_total",
				Help: "Total number of dual dispatches that exceeded the join deadline.",
			},
		),
		adapterDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "querybridge_adapter_duration_seconds",
				Help:    "Latency of a single adapter call.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
	}

	for _, c := range []prometheus.Collector{m.dispatchCount, m.timeoutCount, m.adapterDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
