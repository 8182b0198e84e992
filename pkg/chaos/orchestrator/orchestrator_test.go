package orchestrator

import (
	"testing"
	"time"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

func buildScenario(t *testing.T, durationSecs uint64) scenario.OrchestratedScenario {
	t.Helper()
	cfg := scenario.ChaosConfig{Enabled: true}
	cs, err := scenario.NewChaosScenario("step-0", cfg)
	if err != nil {
		t.Fatalf("NewChaosScenario: %v", err)
	}
	cs = cs.WithDuration(durationSecs)
	step := scenario.NewScenarioStep("step-0", cs)
	return scenario.NewOrchestratedScenario("test").AddStep(step)
}

func TestOrchestratorRunsToCompletion(t *testing.T) {
	s := buildScenario(t, 0)
	o := New(s, nil, nil)
	state := o.Run()
	if state != StateCompleted {
		t.Fatalf("expected Completed, got %s", state)
	}
	if _, ok := o.slot.Load(); ok {
		t.Fatalf("expected active config slot to be cleared after completion")
	}
}

func TestOrchestratorCancellationObservedQuickly(t *testing.T) {
	s := buildScenario(t, 60)
	o := New(s, nil, nil)

	done := make(chan State, 1)
	go func() { done <- o.Run() }()

	time.Sleep(1 * time.Second)
	o.Cancel()

	select {
	case state := <-done:
		if state != StateCancelled {
			t.Fatalf("expected Cancelled, got %s", state)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancellation was not observed in time")
	}

	if _, ok := o.slot.Load(); ok {
		t.Fatalf("expected active config slot to be cleared after cancellation")
	}
}

func TestOrchestratorZeroStepsCompletesImmediately(t *testing.T) {
	s := scenario.NewOrchestratedScenario("empty")
	o := New(s, nil, nil)
	if state := o.Run(); state != StateCompleted {
		t.Fatalf("expected Completed for zero-step scenario, got %s", state)
	}
}

// TestOrchestratorOverlappingStepsLastWriterWins builds a scenario
// with two steps whose windows overlap: step-0 starts at t0 and runs
// long, step-1 starts shortly after t0 while step-0 is still active
// and is shorter-lived. Both delays are relative to scenario start,
// not to each other, so step-1's install is not gated on step-0's
// window ending. While both are active the slot must reflect step-1
// (the last writer); once step-1's window closes, the slot must be
// empty rather than reverting to step-0.
func TestOrchestratorOverlappingStepsLastWriterWins(t *testing.T) {
	cfg0 := scenario.ChaosConfig{Enabled: true}
	cs0, err := scenario.NewChaosScenario("step-0", cfg0)
	if err != nil {
		t.Fatalf("NewChaosScenario step-0: %v", err)
	}
	cs0 = cs0.WithDuration(2)
	step0 := scenario.NewScenarioStep("step-0", cs0)

	cfg1 := scenario.ChaosConfig{Enabled: true, FaultInjection: &scenario.FaultInjectionConfig{Enabled: true}}
	cs1, err := scenario.NewChaosScenario("step-1", cfg1)
	if err != nil {
		t.Fatalf("NewChaosScenario step-1: %v", err)
	}
	cs1 = cs1.WithDuration(1)
	step1 := scenario.NewScenarioStep("step-1", cs1).WithDelayBefore(1)

	s := scenario.NewOrchestratedScenario("overlap").AddStep(step0).AddStep(step1)
	o := New(s, nil, nil)

	done := make(chan State, 1)
	go func() { done <- o.Run() }()

	time.Sleep(1500 * time.Millisecond)
	active, ok := o.slot.Load()
	if !ok {
		t.Fatalf("expected a config installed while both steps overlap")
	}
	if active.FaultInjection == nil {
		t.Fatalf("expected step-1's config (last writer) active during overlap, got %+v", active)
	}

	time.Sleep(1 * time.Second)
	if active, ok := o.slot.Load(); ok {
		t.Fatalf("expected slot cleared once step-1's window closed, not restored to step-0, got %+v", active)
	}

	select {
	case state := <-done:
		if state != StateCompleted {
			t.Fatalf("expected Completed, got %s", state)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("orchestrator did not complete in time")
	}
}
