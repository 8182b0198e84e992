package primitives

import (
	"math/rand"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

// Outcome is the fault variant chosen by DecideOutcome.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeConnectionError
	OutcomeTimeout
	OutcomeHTTPError
	OutcomePartialResponse
	OutcomeCorruption
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeConnectionError:
		return "connection_error"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomePartialResponse:
		return "partial_response"
	case OutcomeCorruption:
		return "corruption"
	default:
		return "unknown"
	}
}

// DecideOutcome evaluates the ordered decision ladder --
// ConnectionError -> Timeout -> HttpError -> PartialResponse ->
// PayloadCorruption -> Pass -- and returns the first gate that fires.
// Each gate is an independent Bernoulli trial conditioned on every
// earlier gate not having fired, so the unconditional probability of a
// later gate firing shrinks as earlier gates consume probability mass.
// A disabled config always returns Pass.
func DecideOutcome(cfg scenario.FaultInjectionConfig, rng *rand.Rand) Outcome {
	if !cfg.Enabled {
		return OutcomePass
	}
	if cfg.ConnectionErrors && fires(rng, cfg.ConnectionErrorProbability) {
		return OutcomeConnectionError
	}
	if cfg.TimeoutErrors && fires(rng, cfg.TimeoutProbability) {
		return OutcomeTimeout
	}
	if len(cfg.HTTPErrors) > 0 && fires(rng, cfg.HTTPErrorProbability) {
		return OutcomeHTTPError
	}
	if cfg.PartialResponses && fires(rng, cfg.PartialResponseProbability) {
		return OutcomePartialResponse
	}
	if cfg.PayloadCorruption && cfg.CorruptionType != scenario.CorruptionNone && fires(rng, cfg.PayloadCorruptionProbability) {
		return OutcomeCorruption
	}
	return OutcomePass
}

func fires(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// SampleHTTPErrorStatus picks a status code from cfg.HTTPErrors once
// DecideOutcome has returned OutcomeHTTPError. With ErrorPatternRandom
// (the default) it picks uniformly; RoundRobin advances a caller-owned
// cursor; Sequence walks the list in order and clamps at the last
// entry; Weighted falls back to uniform since no per-code weight is
// carried in FaultInjectionConfig.
func SampleHTTPErrorStatus(cfg scenario.FaultInjectionConfig, cursor *int, rng *rand.Rand) uint16 {
	codes := cfg.HTTPErrors
	if len(codes) == 0 {
		return 500
	}
	switch cfg.ErrorPattern {
	case scenario.ErrorPatternRoundRobin:
		if cursor == nil {
			return codes[0]
		}
		code := codes[*cursor%len(codes)]
		*cursor++
		return code
	case scenario.ErrorPatternSequence:
		if cursor == nil {
			return codes[0]
		}
		idx := *cursor
		if idx >= len(codes) {
			idx = len(codes) - 1
		} else {
			*cursor++
		}
		return codes[idx]
	default:
		return codes[rng.Intn(len(codes))]
	}
}
