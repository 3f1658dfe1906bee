package internal

// EventPoster is the boundary the timeout supervisor (and any other
// side-effect-free observer) uses to get an event back into the state
// manager. It mirrors StateManager.ReceiveIgnoreClosed so the supervisor
// never needs a concrete *StateManager, only this interface.
type EventPoster interface {
	ReceiveIgnoreClosed(instance WorkflowInstance, event Event, expectedCounter int64) error
}

// TimeoutSupervisor is a stateless policy: given a current RunState, a
// workflow-configuration lookup, and a clock, it decides whether to inject
// a timeout event. It is side-effect-free except for the one post it makes
// through poster; it never mutates RunState directly.
type TimeoutSupervisor struct {
	Config TimeoutConfig
	Lookup WorkflowLookup
}

// NewTimeoutSupervisor builds a supervisor over the given TTL table and
// workflow lookup.
func NewTimeoutSupervisor(config TimeoutConfig, lookup WorkflowLookup) TimeoutSupervisor {
	return TimeoutSupervisor{Config: config, Lookup: lookup}
}

// Evaluate computes ttl = config.ttlOf(state, workflow); if now - timestamp
// >= ttl, it posts a timeout event carrying the observed counter so the
// state manager can ignore the post if the instance has since moved on.
func (s TimeoutSupervisor) Evaluate(run RunState, clk Clock, poster EventPoster) error {
	if run.State.Terminal() {
		return nil
	}

	wf, known := Workflow{}, false
	if s.Lookup != nil {
		wf, known = s.Lookup(run.Instance.WorkflowID)
	}

	ttl := s.Config.TTLOf(run.State, wf, known)
	elapsed := nowMillis(clk) - run.TimestampMillis
	if elapsed < ttl.Milliseconds() {
		return nil
	}

	event := NewTimeoutEvent(run.Instance)
	return poster.ReceiveIgnoreClosed(run.Instance, event, run.Counter)
}
