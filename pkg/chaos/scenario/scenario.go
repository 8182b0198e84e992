package scenario

import (
	"fmt"

	"github.com/google/uuid"
)

// ChaosScenario is a named, immutable (config, optional duration) pair.
type ChaosScenario struct {
	Name          string       `yaml:"name" json:"name"`
	Config        ChaosConfig  `yaml:"config" json:"config"`
	DurationSecs  *uint64      `yaml:"duration_secs,omitempty" json:"duration_secs,omitempty"`
}

// NewChaosScenario validates config and returns an immutable scenario.
func NewChaosScenario(name string, config ChaosConfig) (ChaosScenario, error) {
	if name == "" {
		return ChaosScenario{}, fmt.Errorf("chaos scenario: name must not be empty")
	}
	if err := config.Validate(); err != nil {
		return ChaosScenario{}, fmt.Errorf("chaos scenario %q: %w", name, err)
	}
	return ChaosScenario{Name: name, Config: config}, nil
}

// WithDuration returns a copy of the scenario with DurationSecs set.
func (s ChaosScenario) WithDuration(secs uint64) ChaosScenario {
	s.DurationSecs = &secs
	return s
}

// ScenarioStep is one timed entry in an OrchestratedScenario. Its
// effective wall-clock window is
// [t0+delay_before, t0+delay_before+scenario.duration].
type ScenarioStep struct {
	Name            string        `yaml:"name" json:"name"`
	Scenario        ChaosScenario `yaml:"scenario" json:"scenario"`
	DelayBeforeSecs uint64        `yaml:"delay_before_secs" json:"delay_before_secs"`
}

// NewScenarioStep constructs a step with no delay.
func NewScenarioStep(name string, s ChaosScenario) ScenarioStep {
	return ScenarioStep{Name: name, Scenario: s}
}

// WithDelayBefore returns a copy of the step with DelayBeforeSecs set.
func (s ScenarioStep) WithDelayBefore(secs uint64) ScenarioStep {
	s.DelayBeforeSecs = secs
	return s
}

// OrchestratedScenario is the enclosing named chaos program: an ordered
// list of steps, a tenant scope, and free-form tags. DelayBeforeSecs on
// each step is relative to the scenario's own start time, not the
// previous step -- steps may overlap, in which case the orchestrator
// observes last-writer-wins on the active config slot.
type OrchestratedScenario struct {
	ID          string         `yaml:"id" json:"id"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	TenantID    string         `yaml:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	Steps       []ScenarioStep `yaml:"steps" json:"steps"`
}

// NewOrchestratedScenario generates a fresh UUID-backed ID.
func NewOrchestratedScenario(name string) OrchestratedScenario {
	return OrchestratedScenario{
		ID:   fmt.Sprintf("%s-%s", name, uuid.NewString()),
		Tags: []string{},
	}
}

// WithDescription returns a copy with Description set.
func (o OrchestratedScenario) WithDescription(d string) OrchestratedScenario {
	o.Description = d
	return o
}

// WithTags returns a copy with Tags set.
func (o OrchestratedScenario) WithTags(tags ...string) OrchestratedScenario {
	o.Tags = tags
	return o
}

// WithTenant returns a copy scoped to the given tenant ID.
func (o OrchestratedScenario) WithTenant(id string) OrchestratedScenario {
	o.TenantID = id
	return o
}

// AddStep appends a step, preserving insertion order.
func (o OrchestratedScenario) AddStep(step ScenarioStep) OrchestratedScenario {
	o.Steps = append(o.Steps, step)
	return o
}
