package scenario

import "fmt"

// Validator accumulates warnings and errors while checking a
// ChaosConfig or an OrchestratedScenario, following the same
// accumulate-then-report idiom as the scenario-file validator it
// replaces: collect everything wrong, then let the caller decide
// whether warnings are fatal.
type Validator struct {
	Warnings []string
	Errors   []string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{
		Warnings: []string{},
		Errors:   []string{},
	}
}

// HasErrors reports whether any error was recorded.
func (v *Validator) HasErrors() bool {
	return len(v.Errors) > 0
}

// HasWarnings reports whether any warning was recorded.
func (v *Validator) HasWarnings() bool {
	return len(v.Warnings) > 0
}

// GetReport renders a human-readable summary of errors and warnings.
func (v *Validator) GetReport() string {
	report := ""
	if len(v.Errors) > 0 {
		report += fmt.Sprintf("Errors (%d):\n", len(v.Errors))
		for _, e := range v.Errors {
			report += fmt.Sprintf("  - %s\n", e)
		}
	}
	if len(v.Warnings) > 0 {
		report += fmt.Sprintf("Warnings (%d):\n", len(v.Warnings))
		for _, w := range v.Warnings {
			report += fmt.Sprintf("  - %s\n", w)
		}
	}
	return report
}

// ValidateConfig checks a ChaosConfig's structural invariants and flags
// suspicious-but-legal configurations as warnings.
func (v *Validator) ValidateConfig(c ChaosConfig) {
	if err := c.Validate(); err != nil {
		v.Errors = append(v.Errors, err.Error())
		return
	}
	v.checkOutcomeOverlap(c)
	v.checkDegenerateLatency(c)
}

// checkOutcomeOverlap warns when the mutually exclusive outcome
// probabilities (error, timeout, partial) sum above 1 -- not an error,
// since the decision ladder evaluates each gate conditioned on every
// earlier gate not firing, so the configured numbers stop reading as
// the actual observed split once they sum past 1.
func (v *Validator) checkOutcomeOverlap(c ChaosConfig) {
	fi := c.FaultInjection
	if fi == nil || !fi.Enabled {
		return
	}
	sum := fi.HTTPErrorProbability + fi.TimeoutProbability + fi.PartialResponseProbability
	if sum > 1.0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"fault_injection: http_error_probability + timeout_probability + partial_response_probability = %.3f > 1.0, the decision ladder's conditional evaluation means these won't be observed at their face values", sum))
	}
}

// checkDegenerateLatency warns about a latency config that is enabled
// but will never actually fire.
func (v *Validator) checkDegenerateLatency(c ChaosConfig) {
	l := c.Latency
	if l == nil || !l.Enabled {
		return
	}
	if l.Probability == 0 {
		v.Warnings = append(v.Warnings, "latency: enabled with probability 0, will never fire")
	}
}

// ValidateOrchestrated checks every step's scenario config and warns on
// a scenario with zero steps.
func (v *Validator) ValidateOrchestrated(o OrchestratedScenario) {
	if len(o.Steps) == 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("orchestrated scenario %q: has zero steps", o.ID))
		return
	}
	for _, step := range o.Steps {
		v.ValidateConfig(step.Scenario.Config)
	}
}
