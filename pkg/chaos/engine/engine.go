// Package engine implements the fault-decision hot path: given an
// active chaos config and an optional learned probability model, it
// decides what should happen to one request. It performs no I/O and
// never blocks; callers own sleeping for the returned delay.
package engine

import (
	"math/rand"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/behavioral"
	"github.com/mockforge/mockforge-chaos/pkg/chaos/primitives"
	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

// Request is the minimal shape the engine needs to make a decision.
// Transports populate it from whatever request representation they own.
type Request struct {
	Method string
	Path   string
}

// Decision is the engine's verdict for one request.
type Decision struct {
	DelayMs        int64
	Outcome        primitives.Outcome
	StatusOverride uint16
	BodyOverride   interface{}
}

// Decide evaluates cfg (and, if present, model) against one request
// using rng. A nil cfg, or a disabled cfg, always decides Pass with no
// delay -- per the error-handling policy, the engine defaults to
// passing the request through rather than failing closed on missing or
// malformed state. cursor threads an ErrorPatternRoundRobin/Sequence
// cursor across calls for the same active config; callers that don't
// care about those patterns may pass nil. When the fault ladder
// chooses HttpError, a supplied model always wins over
// cfg.FaultInjection.HTTPErrors for both the sampled status code and
// its body -- the model is the learned distribution, the configured
// list is only a fallback for when no model is available.
func Decide(req Request, cfg *scenario.ChaosConfig, model *behavioral.EndpointProbabilityModel, cursor *int, rng *rand.Rand) Decision {
	if cfg == nil || !cfg.Enabled {
		return Decision{Outcome: primitives.OutcomePass}
	}

	var delay int64
	if cfg.Latency != nil {
		delay = primitives.SampleDelay(*cfg.Latency, rng)
	}

	var outcome primitives.Outcome
	if cfg.FaultInjection != nil {
		outcome = primitives.DecideOutcome(*cfg.FaultInjection, rng)
	} else {
		outcome = primitives.OutcomePass
	}

	decision := Decision{DelayMs: delay, Outcome: outcome}

	if outcome != primitives.OutcomeHTTPError {
		return decision
	}

	switch {
	case model != nil:
		decision.StatusOverride = behavioral.SampleStatusCode(model, rng)
	case cfg.FaultInjection != nil && len(cfg.FaultInjection.HTTPErrors) > 0:
		decision.StatusOverride = primitives.SampleHTTPErrorStatus(*cfg.FaultInjection, cursor, rng)
	default:
		decision.StatusOverride = 500
	}

	if model != nil {
		decision.BodyOverride = behavioral.SampleErrorBody(model, decision.StatusOverride, rng)
	}

	return decision
}
