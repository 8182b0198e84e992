package behavioral

import (
	"fmt"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

// DerivedScenario turns a mined sequence into a schedule, not a
// fault: each step wraps a minimal enabled-but-empty ChaosConfig, and
// delay_before_secs carries the step's own inter-step delay, truncated
// to whole seconds. The orchestrator measures every delay_before_secs
// from scenario start, so a step is scheduled at its own inter-step
// delay from the start, not at the sum of the delays before it.
func DerivedScenario(seq BehavioralSequence) (scenario.OrchestratedScenario, error) {
	out := scenario.NewOrchestratedScenario(fmt.Sprintf("sequence_%s", seq.ID)).
		WithDescription("schedule derived from a mined behavioral sequence").
		WithTags("behavioral-sequence", seq.ID)

	for i, step := range seq.Steps {
		cs, err := scenario.NewChaosScenario(fmt.Sprintf("%s %s", step.Method, step.Endpoint), scenario.ChaosConfig{Enabled: true})
		if err != nil {
			return scenario.OrchestratedScenario{}, err
		}
		var delaySecs uint64
		if step.InterStepDelayMs != nil {
			delaySecs = *step.InterStepDelayMs / 1000
		}
		s := scenario.NewScenarioStep(fmt.Sprintf("step_%d", i), cs).WithDelayBefore(delaySecs)
		out = out.AddStep(s)
	}

	return out, nil
}
