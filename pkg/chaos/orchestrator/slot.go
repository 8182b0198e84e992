package orchestrator

import (
	"sync/atomic"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

// ActiveConfigSlot is a multi-writer, multi-reader pointer to the
// ChaosConfig currently in force. Reads never block writes and always
// observe a complete config -- no torn reads -- because the
// underlying pointer swap is atomic and configs are never mutated
// after construction. An Orchestrator may run several overlapping
// scenario steps concurrently against the same slot; whichever
// Install call lands last wins, which is what gives overlapping
// windows their last-writer-wins semantics.
type ActiveConfigSlot struct {
	ptr atomic.Pointer[scenario.ChaosConfig]
}

// Install publishes cfg as the active config, replacing whatever was
// there. Safe for concurrent callers.
func (s *ActiveConfigSlot) Install(cfg scenario.ChaosConfig) {
	c := cfg
	s.ptr.Store(&c)
}

// Clear removes the active config, leaving the slot empty.
func (s *ActiveConfigSlot) Clear() {
	s.ptr.Store(nil)
}

// Load returns a snapshot of the current config and whether one is
// installed. Safe for concurrent use by any number of readers.
func (s *ActiveConfigSlot) Load() (scenario.ChaosConfig, bool) {
	p := s.ptr.Load()
	if p == nil {
		return scenario.ChaosConfig{}, false
	}
	return *p, true
}
