// Package orchestrator runs an OrchestratedScenario to completion,
// publishing the currently active ChaosConfig into a slot the
// Fault-Decision Engine reads from.
package orchestrator

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
	"github.com/mockforge/mockforge-chaos/pkg/reporting"
)

// State is one of the orchestrator's run states.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// cancellationPollInterval bounds how long cancellation can take to
// observe: at most this long between checks of the stop flag.
const cancellationPollInterval = 100 * time.Millisecond

// Orchestrator runs one OrchestratedScenario. It is not safe for
// concurrent Run calls on the same instance; create one Orchestrator
// per run.
type Orchestrator struct {
	scenario scenario.OrchestratedScenario
	slot     *ActiveConfigSlot
	logger   *reporting.Logger
	state    State
	stopCh   chan struct{}
	stopped  int32

	// stepIndex tracks the highest step index installed so far, for
	// StepIndex() reporting. Steps install concurrently relative to a
	// shared start time, so this only ever moves forward.
	stepIndex int64

	// owner is the index+1 of whichever step currently holds the
	// active config slot, or 0 if none. A step may only clear the slot
	// itself installed into -- if a later step has already overwritten
	// owner, an earlier step's uninstall is a no-op. This is what
	// makes overlapping windows resolve last-writer-wins instead of an
	// early-ending step wiping out a still-active later one.
	owner int64
}

// New constructs an Orchestrator for s, publishing into slot. If
// logger is nil a no-op logger is used.
func New(s scenario.OrchestratedScenario, slot *ActiveConfigSlot, logger *reporting.Logger) *Orchestrator {
	if slot == nil {
		slot = &ActiveConfigSlot{}
	}
	if logger == nil {
		logger = reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelInfo, Format: reporting.LogFormatText})
	}
	return &Orchestrator{
		scenario: s,
		slot:     slot,
		logger:   logger.WithField("orchestrated_scenario_id", s.ID),
		state:    StateIdle,
	}
}

// State returns the orchestrator's current state.
func (o *Orchestrator) State() State {
	return o.state
}

// StepIndex returns the highest step index installed so far, or the
// last step executed once terminal.
func (o *Orchestrator) StepIndex() int {
	return int(atomic.LoadInt64(&o.stepIndex))
}

// Cancel requests cooperative cancellation. Safe to call once; a
// second call is a no-op. Observed within cancellationPollInterval.
func (o *Orchestrator) Cancel() {
	if !atomic.CompareAndSwapInt32(&o.stopped, 0, 1) {
		return
	}
	if o.stopCh != nil {
		close(o.stopCh)
	}
}

// Run drives the state machine to completion: Idle -> Running(0) ->
// ... -> {Completed, Cancelled, Failed}. It blocks for the duration of
// the scenario unless cancelled. Every step's delay_before_secs and
// duration are scheduled relative to the single instant Run is
// entered, not to any other step's completion, so step windows can
// genuinely overlap in wall-clock time; where they do, the
// active config slot reflects whichever step installed most recently
// (last-writer-wins) -- an earlier step's window ending never
// restores a still-active later step. A panic inside effect sampling
// by the caller is not this package's concern -- this package only
// sequences config windows, the decision engine does the sampling,
// and the engine itself never panics on valid input (see
// pkg/chaos/engine).
func (o *Orchestrator) Run() State {
	o.stopCh = make(chan struct{})
	o.transitionState(StateRunning)

	if len(o.scenario.Steps) == 0 {
		o.slot.Clear()
		o.transitionState(StateCompleted)
		return o.state
	}

	t0 := time.Now()
	var wg sync.WaitGroup
	for i, step := range o.scenario.Steps {
		wg.Add(1)
		go o.runStep(&wg, t0, i, step)
	}
	wg.Wait()

	o.slot.Clear()
	if atomic.LoadInt32(&o.stopped) == 1 {
		o.transitionState(StateCancelled)
	} else {
		o.transitionState(StateCompleted)
	}
	return o.state
}

// runStep waits until step's install window opens relative to t0,
// installs it, waits until the window closes, then releases it --
// unless cancellation is observed first, or a later step has already
// taken over the slot by the time this step's window closes.
func (o *Orchestrator) runStep(wg *sync.WaitGroup, t0 time.Time, index int, step scenario.ScenarioStep) {
	defer wg.Done()

	installAt := t0.Add(time.Duration(step.DelayBeforeSecs) * time.Second)
	if !o.sleepUntil(installAt) {
		return
	}

	o.advanceStepIndex(index)
	o.slot.Install(step.Scenario.Config)
	atomic.StoreInt64(&o.owner, int64(index)+1)
	o.logger.Debug("installed step config", "step", step.Name, "index", index)

	uninstallAt := installAt.Add(stepDuration(step))
	o.sleepUntil(uninstallAt)

	if atomic.CompareAndSwapInt64(&o.owner, int64(index)+1, 0) {
		o.slot.Clear()
		o.logger.Debug("uninstalled step config", "step", step.Name, "index", index)
	}
}

// advanceStepIndex records index as the latest installed step;
// StepIndex() only ever moves forward.
func (o *Orchestrator) advanceStepIndex(index int) {
	for {
		cur := atomic.LoadInt64(&o.stepIndex)
		if int64(index) <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&o.stepIndex, cur, int64(index)) {
			return
		}
	}
}

// stepDuration returns the step's scenario duration, or a sentinel
// "forever" duration of ~146 years if unset -- sleepUntil still polls
// the stop flag every cancellationPollInterval, so an unset duration
// in practice just means "until cancelled".
func stepDuration(step scenario.ScenarioStep) time.Duration {
	if step.Scenario.DurationSecs == nil {
		return time.Duration(1<<62 - 1)
	}
	return time.Duration(*step.Scenario.DurationSecs) * time.Second
}

// sleepUntil waits until deadline, checking the stop flag at least
// every cancellationPollInterval. Returns false if cancellation was
// observed before the deadline.
func (o *Orchestrator) sleepUntil(deadline time.Time) bool {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			select {
			case <-o.stopCh:
				return false
			default:
				return true
			}
		}

		wait := remaining
		if wait > cancellationPollInterval {
			wait = cancellationPollInterval
		}
		select {
		case <-o.stopCh:
			return false
		case <-time.After(wait):
		}
	}
}

func (o *Orchestrator) transitionState(next State) {
	o.logger.Info(fmt.Sprintf("state transition: %s -> %s", o.state, next), "step", atomic.LoadInt64(&o.stepIndex))
	o.state = next
}
