package emergency

// Canceller is the subset of orchestrator.Orchestrator the killswitch
// needs: something that can be told to stop.
type Canceller interface {
	Cancel()
}

// WireKillswitch registers target for cancellation when c's emergency
// stop triggers. Safe to call multiple times on the same controller
// with different targets; every registered target is cancelled.
func WireKillswitch(c *Controller, target Canceller) {
	c.OnStop(func() {
		target.Cancel()
	})
}
