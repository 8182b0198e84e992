package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistryRegistersDistinctMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistry(reg)

	m.DecisionsTotal.WithLabelValues("pass").Inc()
	m.SampledDelayMs.Observe(42)
	m.AmplificationApplied.Inc()
	m.FallbackTotal.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatalf("expected at least one metric family after recording")
	}

	var found bool
	for _, f := range families {
		if f.GetName() == "mockforge_chaos_decisions_total" {
			found = true
			for _, metric := range f.Metric {
				if metric.Counter == nil || metric.Counter.GetValue() != 1 {
					t.Fatalf("expected counter value 1, got %v", metric.Counter)
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected mockforge_chaos_decisions_total in gathered families")
	}
}
