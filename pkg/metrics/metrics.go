// Package metrics defines the Prometheus counters and histograms that
// mockforge-chaosd registers and serves. The engine, orchestrator and
// behavioral packages do not update them; only a caller holding the
// Registry does.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles every metric mockforge-chaosd exports, so a caller
// can record into one Registry and serve it from an HTTP handler.
type Registry struct {
	DecisionsTotal       *prometheus.CounterVec
	SampledDelayMs       prometheus.Histogram
	AmplificationApplied prometheus.Counter
	FallbackTotal        prometheus.Counter
}

// NewRegistry registers every metric against reg and returns the
// bundle. Pass prometheus.NewRegistry() for an isolated registry in
// tests, or prometheus.DefaultRegisterer-backed promauto factory for
// the process-wide one.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		DecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mockforge_chaos_decisions_total",
			Help: "Count of fault-decision engine outcomes, labeled by outcome.",
		}, []string{"outcome"}),
		SampledDelayMs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mockforge_chaos_sampled_delay_ms",
			Help:    "Distribution of sampled injected delays in milliseconds.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384},
		}),
		AmplificationApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "mockforge_chaos_amplification_applied_total",
			Help: "Count of edge-amplification transforms applied to a learned distribution.",
		}),
		FallbackTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "mockforge_chaos_fallback_total",
			Help: "Count of decisions that fell back to a default because no model or config was available.",
		}),
	}
}

// Handler returns the HTTP handler to mount at the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
