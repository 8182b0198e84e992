// Package primitives implements the pure, stateless fault primitives:
// sampling a delay, deciding a fault outcome from the decision ladder,
// and corrupting a payload. None of it performs I/O; every function
// takes its PRNG by reference so callers get deterministic tests.
package primitives

import (
	"math/rand"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

// SampleDelay draws a delay in milliseconds from cfg. With probability
// cfg.Probability it returns a nonzero delay (fixed or uniform over the
// configured range), jittered by +/-cfg.JitterPercent and clamped to be
// non-negative; otherwise it returns 0. A disabled config always
// returns 0.
func SampleDelay(cfg scenario.LatencyConfig, rng *rand.Rand) int64 {
	if !cfg.Enabled || cfg.Probability <= 0 {
		return 0
	}
	if cfg.Probability < 1.0 && rng.Float64() >= cfg.Probability {
		return 0
	}

	var delay float64
	switch {
	case cfg.FixedDelayMs != nil:
		delay = float64(*cfg.FixedDelayMs)
	case cfg.RandomDelayRangeMs != nil:
		r := cfg.RandomDelayRangeMs
		if r.Hi <= r.Lo {
			delay = float64(r.Lo)
		} else {
			delay = float64(r.Lo) + rng.Float64()*float64(r.Hi-r.Lo)
		}
	default:
		return 0
	}

	if cfg.JitterPercent > 0 {
		jitter := (rng.Float64()*2 - 1) * cfg.JitterPercent
		delay *= 1 + jitter
	}
	if delay < 0 {
		delay = 0
	}
	return int64(delay)
}
