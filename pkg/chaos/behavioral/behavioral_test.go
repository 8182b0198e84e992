package behavioral

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestAmplifyLiteralExample(t *testing.T) {
	dist := map[int]float64{200: 0.95, 500: 0.03, 503: 0.02}
	cfg := EdgeAmplificationConfig{
		Enabled:       true,
		Scope:         GlobalScope(),
		RareThreshold: 0.05,
		BoostFactor:   3,
		TargetMass:    0.4,
	}
	out := Amplify(dist, cfg)

	if !almostEqual(out[500], 0.09, 1e-9) {
		t.Fatalf("expected 500 -> 0.09, got %v", out[500])
	}
	if !almostEqual(out[503], 0.06, 1e-9) {
		t.Fatalf("expected 503 -> 0.06, got %v", out[503])
	}
	if !almostEqual(out[200], 0.85, 1e-9) {
		t.Fatalf("expected 200 -> 0.85, got %v", out[200])
	}

	var sum float64
	for _, v := range out {
		sum += v
	}
	if !almostEqual(sum, 1.0, 1e-9) {
		t.Fatalf("expected output distribution to sum to 1, got %v", sum)
	}
}

func TestAmplifyNoRareIsNoOp(t *testing.T) {
	dist := map[int]float64{200: 0.9, 500: 0.1}
	cfg := EdgeAmplificationConfig{Enabled: true, RareThreshold: 0.05, BoostFactor: 2, TargetMass: 0.3}
	out := Amplify(dist, cfg)
	if out[200] != dist[200] || out[500] != dist[500] {
		t.Fatalf("expected no-op when nothing is rare, got %+v", out)
	}
}

func TestAmplifyBoostFactorOneIsIdentity(t *testing.T) {
	dist := map[int]float64{200: 0.95, 500: 0.05}
	cfg := EdgeAmplificationConfig{Enabled: true, RareThreshold: 0.1, BoostFactor: 1, TargetMass: 0.5}
	out := Amplify(dist, cfg)
	if !almostEqual(out[500], dist[500], 1e-9) {
		t.Fatalf("expected identity at boost_factor=1, got %+v", out)
	}
}

func TestMineSequencesLiteralExample(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	traces := []Trace{
		{
			{Endpoint: "/a", Method: "GET", Timestamp: base},
			{Endpoint: "/b", Method: "POST", Timestamp: base.Add(1 * time.Second)},
		},
		{
			{Endpoint: "/a", Method: "GET", Timestamp: base},
			{Endpoint: "/b", Method: "POST", Timestamp: base.Add(1 * time.Second)},
			{Endpoint: "/c", Method: "GET", Timestamp: base.Add(2 * time.Second)},
		},
		{
			{Endpoint: "/a", Method: "GET", Timestamp: base},
			{Endpoint: "/b", Method: "POST", Timestamp: base.Add(1 * time.Second)},
		},
	}

	seqs, err := MineSequences(traces, 0.6)
	if err != nil {
		t.Fatalf("MineSequences: %v", err)
	}

	var found bool
	for _, s := range seqs {
		if s.Length == 2 {
			found = true
			if !almostEqual(s.Support, 1.0, 1e-9) {
				t.Fatalf("expected support=1.0 for [a,b], got %v", s.Support)
			}
			if !almostEqual(s.Confidence, 1.0, 1e-9) {
				t.Fatalf("expected confidence=1.0 for length-2 pattern, got %v", s.Confidence)
			}
		}
		if s.Length == 3 {
			t.Fatalf("expected length-3 pattern [a,b,c] (support~0.33) to be discarded at min_frequency=0.6")
		}
	}
	if !found {
		t.Fatalf("expected to find the [GET /a -> POST /b] pattern")
	}
}

func TestBuildProbabilityModelStatusDistributionSumsToOne(t *testing.T) {
	exchanges := []RecordedExchange{
		{StatusCode: 200}, {StatusCode: 200}, {StatusCode: 500},
	}
	model, err := BuildProbabilityModel("/widgets", "GET", exchanges)
	if err != nil {
		t.Fatalf("BuildProbabilityModel: %v", err)
	}
	var sum float64
	for _, p := range model.StatusDistribution {
		sum += p
	}
	if !almostEqual(sum, 1.0, 1e-9) {
		t.Fatalf("expected status distribution to sum to 1, got %v", sum)
	}
	if model.SampleCount != 3 {
		t.Fatalf("expected sample_count=3, got %d", model.SampleCount)
	}
}

func TestSampleStatusCodeStaysWithinDistribution(t *testing.T) {
	model := &EndpointProbabilityModel{
		StatusDistribution: map[uint16]float64{200: 0.7, 404: 0.2, 500: 0.1},
	}
	rng := rand.New(rand.NewSource(11))
	seen := make(map[uint16]bool)
	for i := 0; i < 200; i++ {
		seen[SampleStatusCode(model, rng)] = true
	}
	for code := range seen {
		if _, ok := model.StatusDistribution[code]; !ok {
			t.Fatalf("sampled code %d not in distribution", code)
		}
	}
}

func TestSampleErrorBodyFallsBackWhenNoTemplate(t *testing.T) {
	model := &EndpointProbabilityModel{}
	rng := rand.New(rand.NewSource(1))
	body := SampleErrorBody(model, 503, rng)
	m, ok := body.(map[string]interface{})
	if !ok {
		t.Fatalf("expected synthesized map body, got %T", body)
	}
	if m["code"] != uint16(503) {
		t.Fatalf("expected code=503, got %v", m["code"])
	}
}
