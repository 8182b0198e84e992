package engine

import (
	"math/rand"
	"testing"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/behavioral"
	"github.com/mockforge/mockforge-chaos/pkg/chaos/primitives"
	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

func TestDecideNilConfigIsPass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := Decide(Request{Method: "GET", Path: "/x"}, nil, nil, nil, rng)
	if d.Outcome != primitives.OutcomePass {
		t.Fatalf("expected pass for nil config, got %v", d.Outcome)
	}
	if d.DelayMs != 0 {
		t.Fatalf("expected zero delay for nil config, got %d", d.DelayMs)
	}
}

func TestDecideDisabledConfigIsPass(t *testing.T) {
	cfg := &scenario.ChaosConfig{Enabled: false}
	rng := rand.New(rand.NewSource(1))
	d := Decide(Request{Method: "GET", Path: "/x"}, cfg, nil, nil, rng)
	if d.Outcome != primitives.OutcomePass {
		t.Fatalf("expected pass for disabled config, got %v", d.Outcome)
	}
}

func TestDecideStatisticalLadderSplit(t *testing.T) {
	cfg := &scenario.ChaosConfig{
		Enabled: true,
		FaultInjection: &scenario.FaultInjectionConfig{
			Enabled:                    true,
			TimeoutErrors:              true,
			TimeoutProbability:         0.6,
			HTTPErrors:                 []uint16{500},
			HTTPErrorProbability:       0.4,
		},
	}

	const trials = 10000
	counts := map[primitives.Outcome]int{}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < trials; i++ {
		d := Decide(Request{Method: "GET", Path: "/x"}, cfg, nil, nil, rng)
		counts[d.Outcome]++
	}

	timeoutFrac := float64(counts[primitives.OutcomeTimeout]) / trials
	httpErrFrac := float64(counts[primitives.OutcomeHTTPError]) / trials
	passFrac := float64(counts[primitives.OutcomePass]) / trials

	if diff := timeoutFrac - 0.6; diff > 0.03 || diff < -0.03 {
		t.Fatalf("expected timeout fraction near 0.6, got %v", timeoutFrac)
	}
	if diff := httpErrFrac - 0.16; diff > 0.03 || diff < -0.03 {
		t.Fatalf("expected http_error fraction near 0.16, got %v", httpErrFrac)
	}
	if diff := passFrac - 0.24; diff > 0.03 || diff < -0.03 {
		t.Fatalf("expected pass fraction near 0.24, got %v", passFrac)
	}
}

func TestDecideHTTPErrorWithoutConfiguredCodesFallsBackToModel(t *testing.T) {
	cfg := &scenario.ChaosConfig{
		Enabled: true,
		FaultInjection: &scenario.FaultInjectionConfig{
			Enabled:              true,
			HTTPErrors:           nil,
			HTTPErrorProbability: 1.0,
		},
	}
	model := &behavioral.EndpointProbabilityModel{
		StatusDistribution: map[uint16]float64{503: 1.0},
		ErrorBodyTemplates: []behavioral.ErrorBodyTemplate{
			{Status: 503, Body: map[string]interface{}{"error": "unavailable"}},
		},
	}
	rng := rand.New(rand.NewSource(7))
	d := Decide(Request{Method: "GET", Path: "/x"}, cfg, model, nil, rng)
	if d.Outcome != primitives.OutcomeHTTPError {
		t.Fatalf("expected http_error, got %v", d.Outcome)
	}
	if d.StatusOverride != 503 {
		t.Fatalf("expected status override from model, got %d", d.StatusOverride)
	}
	if d.BodyOverride == nil {
		t.Fatalf("expected body override from model")
	}
}

func TestDecideHTTPErrorWithConfiguredCodesAndNoModelUsesConfig(t *testing.T) {
	cfg := &scenario.ChaosConfig{
		Enabled: true,
		FaultInjection: &scenario.FaultInjectionConfig{
			Enabled:              true,
			HTTPErrors:           []uint16{418},
			HTTPErrorProbability: 1.0,
		},
	}
	rng := rand.New(rand.NewSource(3))
	d := Decide(Request{Method: "GET", Path: "/x"}, cfg, nil, nil, rng)
	if d.StatusOverride != 418 {
		t.Fatalf("expected configured status override 418, got %d", d.StatusOverride)
	}
}

// TestDecideHTTPErrorWithBothConfiguredCodesAndModelModelWins covers
// the §4.9 step-3 priority: when a probability model is supplied, it
// always overrides the fault ladder's own configured HTTPErrors list,
// even though that list is non-empty.
func TestDecideHTTPErrorWithBothConfiguredCodesAndModelModelWins(t *testing.T) {
	cfg := &scenario.ChaosConfig{
		Enabled: true,
		FaultInjection: &scenario.FaultInjectionConfig{
			Enabled:              true,
			HTTPErrors:           []uint16{418},
			HTTPErrorProbability: 1.0,
		},
	}
	model := &behavioral.EndpointProbabilityModel{
		StatusDistribution: map[uint16]float64{503: 1.0},
		ErrorBodyTemplates: []behavioral.ErrorBodyTemplate{
			{Status: 503, Body: map[string]interface{}{"error": "unavailable"}},
		},
	}
	rng := rand.New(rand.NewSource(3))
	d := Decide(Request{Method: "GET", Path: "/x"}, cfg, model, nil, rng)
	if d.StatusOverride != 503 {
		t.Fatalf("expected model's status override 503 to win over configured 418, got %d", d.StatusOverride)
	}
	if d.BodyOverride == nil {
		t.Fatalf("expected body override sampled from model")
	}
}

func TestDecideRoundRobinCursorAdvancesAcrossCalls(t *testing.T) {
	cfg := &scenario.ChaosConfig{
		Enabled: true,
		FaultInjection: &scenario.FaultInjectionConfig{
			Enabled:              true,
			HTTPErrors:           []uint16{500, 502, 503},
			HTTPErrorProbability: 1.0,
			ErrorPattern:         scenario.ErrorPatternRoundRobin,
		},
	}
	rng := rand.New(rand.NewSource(1))
	cursor := 0
	var got []uint16
	for i := 0; i < 3; i++ {
		d := Decide(Request{Method: "GET", Path: "/x"}, cfg, nil, &cursor, rng)
		got = append(got, d.StatusOverride)
	}
	want := []uint16{500, 502, 503}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("round robin mismatch at %d: got %v want %v", i, got, want)
		}
	}
}
