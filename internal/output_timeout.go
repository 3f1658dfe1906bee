package internal

// TimeoutHandler is the one OutputHandler that ships with this core: after
// every transition it re-evaluates the instance's timeout policy against
// the clock it was built with, so an instance that lands in a state whose
// TTL has already elapsed (a short RunningTimeout, a clock skipped forward
// in tests) is swept immediately rather than waiting for the next
// TimeoutSweeper tick.
type TimeoutHandler struct {
	supervisor TimeoutSupervisor
	poster     EventPoster
	clock      Clock
}

// NewTimeoutHandler builds a TimeoutHandler.
func NewTimeoutHandler(supervisor TimeoutSupervisor, poster EventPoster, clk Clock) *TimeoutHandler {
	return &TimeoutHandler{supervisor: supervisor, poster: poster, clock: clk}
}

// TransitionInto implements OutputHandler.
func (h *TimeoutHandler) TransitionInto(run RunState) error {
	if err := h.supervisor.Evaluate(run, h.clock, h.poster); err != nil {
		if _, stale := err.(*StaleEventError); stale {
			return nil
		}
		return err
	}
	return nil
}
