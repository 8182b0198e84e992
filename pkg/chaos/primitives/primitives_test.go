package primitives

import (
	"math/rand"
	"testing"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

func TestSampleDelayDisabledIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := scenario.LatencyConfig{Enabled: false, Probability: 1.0}
	if d := SampleDelay(cfg, rng); d != 0 {
		t.Fatalf("expected 0 delay for disabled config, got %d", d)
	}
}

func TestSampleDelayZeroProbabilityIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := int64(500)
	cfg := scenario.LatencyConfig{Enabled: true, FixedDelayMs: &fixed, Probability: 0}
	for i := 0; i < 100; i++ {
		if d := SampleDelay(cfg, rng); d != 0 {
			t.Fatalf("expected 0 delay with probability 0, got %d", d)
		}
	}
}

func TestSampleDelayAlwaysNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lo, hi := int64(10), int64(20)
	cfg := scenario.LatencyConfig{
		Enabled:            true,
		RandomDelayRangeMs: &scenario.DelayRange{Lo: lo, Hi: hi},
		JitterPercent:      0.5,
		Probability:        1.0,
	}
	for i := 0; i < 1000; i++ {
		d := SampleDelay(cfg, rng)
		if d < 0 {
			t.Fatalf("negative delay sampled: %d", d)
		}
	}
}

func TestSampleDelayFixedAlwaysFires(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fixed := int64(100)
	cfg := scenario.LatencyConfig{Enabled: true, FixedDelayMs: &fixed, Probability: 1.0}
	for i := 0; i < 50; i++ {
		if d := SampleDelay(cfg, rng); d == 0 {
			t.Fatalf("expected nonzero delay with probability 1.0")
		}
	}
}

func TestDecideOutcomeDisabledIsPass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := scenario.FaultInjectionConfig{Enabled: false}
	for i := 0; i < 10; i++ {
		if o := DecideOutcome(cfg, rng); o != OutcomePass {
			t.Fatalf("expected Pass for disabled config, got %s", o)
		}
	}
}

func TestDecideOutcomeLadderOrder(t *testing.T) {
	// Timeout outranks HttpError: with both at probability 1, Timeout
	// always wins.
	rng := rand.New(rand.NewSource(3))
	cfg := scenario.FaultInjectionConfig{
		Enabled:             true,
		TimeoutErrors:       true,
		TimeoutProbability:  1.0,
		HTTPErrors:          []uint16{500},
		HTTPErrorProbability: 1.0,
	}
	for i := 0; i < 20; i++ {
		if o := DecideOutcome(cfg, rng); o != OutcomeTimeout {
			t.Fatalf("expected Timeout to win the ladder, got %s", o)
		}
	}
}

func TestDecideOutcomeStatisticalTolerance(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	cfg := scenario.FaultInjectionConfig{
		Enabled:              true,
		TimeoutErrors:        true,
		TimeoutProbability:   0.6,
		HTTPErrors:           []uint16{500},
		HTTPErrorProbability: 0.4,
	}
	const n = 10000
	var timeout, httpErr, pass int
	for i := 0; i < n; i++ {
		switch DecideOutcome(cfg, rng) {
		case OutcomeTimeout:
			timeout++
		case OutcomeHTTPError:
			httpErr++
		case OutcomePass:
			pass++
		}
	}
	pTimeout := float64(timeout) / n
	pHTTP := float64(httpErr) / n
	pPass := float64(pass) / n

	// Timeout is evaluated first in the ladder: P(Timeout) = 0.6.
	// HttpError only fires when Timeout didn't: P(HttpError) = 0.4*(1-0.6) = 0.16.
	// Pass is the remainder: P(Pass) = 1 - 0.6 - 0.16 = 0.24.
	if diff := pTimeout - 0.6; diff < -0.02 || diff > 0.02 {
		t.Fatalf("P(Timeout)=%.3f out of tolerance", pTimeout)
	}
	if diff := pHTTP - 0.16; diff < -0.02 || diff > 0.02 {
		t.Fatalf("P(HttpError)=%.3f out of tolerance", pHTTP)
	}
	if diff := pPass - 0.24; diff < -0.02 || diff > 0.02 {
		t.Fatalf("P(Pass)=%.3f out of tolerance", pPass)
	}
}

func TestCorruptBytesTruncateLength(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := make([]byte, 1000)
	out := CorruptBytes(data, VariantTruncate, rng)
	if len(out) < 100 || len(out) > 900 {
		t.Fatalf("truncate out of [0.1L,0.9L] bounds: got %d", len(out))
	}
}

func TestCorruptBytesInvalidTailOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := make([]byte, 1000)
	out := CorruptBytes(data, VariantInvalid, rng)
	if len(out) != len(data) {
		t.Fatalf("invalidate must preserve length, got %d", len(out))
	}
	ffCount := 0
	for _, b := range out {
		if b == 0xFF {
			ffCount++
		}
	}
	if ffCount == 0 {
		t.Fatalf("expected some 0xFF bytes after invalidate")
	}
	if ffCount > 50 {
		t.Fatalf("invalidate touched too many bytes: %d of %d", ffCount, len(out))
	}
}

func TestCorruptJSONArrayPreservesLength(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	arr := []interface{}{1, 2, 3, 4, 5}
	out := CorruptJSON(arr, rng)
	shuffled, ok := out.([]interface{})
	if !ok || len(shuffled) != len(arr) {
		t.Fatalf("expected shuffled array of same length")
	}
}
