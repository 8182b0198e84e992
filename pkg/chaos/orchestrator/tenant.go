package orchestrator

import (
	"fmt"
	"sync"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
	"github.com/mockforge/mockforge-chaos/pkg/reporting"
)

// TenantScopedOrchestrator keeps one Orchestrator (and one
// ActiveConfigSlot) per tenant ID, so multiple tenants can run
// independent orchestrated scenarios concurrently without their
// active-config slots interfering. The empty tenant ID is the global
// scope used when multi-tenancy isn't in play.
type TenantScopedOrchestrator struct {
	mu      sync.Mutex
	logger  *reporting.Logger
	runners map[string]*Orchestrator
	slots   map[string]*ActiveConfigSlot
}

// NewTenantScopedOrchestrator returns an empty registry.
func NewTenantScopedOrchestrator(logger *reporting.Logger) *TenantScopedOrchestrator {
	return &TenantScopedOrchestrator{
		logger:  logger,
		runners: make(map[string]*Orchestrator),
		slots:   make(map[string]*ActiveConfigSlot),
	}
}

// Start begins running s under its TenantID (empty string for
// global), returning the Orchestrator instance so the caller can
// Cancel it later. It is an error to start a second run for a tenant
// whose previous run is still active.
func (t *TenantScopedOrchestrator) Start(s scenario.OrchestratedScenario) (*Orchestrator, error) {
	t.mu.Lock()
	if existing, ok := t.runners[s.TenantID]; ok && existing.State() == StateRunning {
		t.mu.Unlock()
		return nil, fmt.Errorf("tenant %q already has an active orchestrated scenario", s.TenantID)
	}
	slot := &ActiveConfigSlot{}
	t.slots[s.TenantID] = slot
	o := New(s, slot, t.logger)
	t.runners[s.TenantID] = o
	t.mu.Unlock()

	go o.Run()
	return o, nil
}

// SlotFor returns the active-config slot for tenant (empty string for
// global), or nil if no run has ever been started for it.
func (t *TenantScopedOrchestrator) SlotFor(tenantID string) *ActiveConfigSlot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[tenantID]
}

// CancelTenant cancels the active run for tenant, if any.
func (t *TenantScopedOrchestrator) CancelTenant(tenantID string) {
	t.mu.Lock()
	o, ok := t.runners[tenantID]
	t.mu.Unlock()
	if ok {
		o.Cancel()
	}
}
