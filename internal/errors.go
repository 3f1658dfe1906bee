package internal

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IllegalTransitionError is raised by RunState.Transition when the current
// state does not admit the event. It is a structural bug in the caller
// (stale event, or event posted after the instance moved on) and is never
// recovered internally.
//
// ApplicationFailure is deliberately not modeled as an error type here: an
// activity/executor failure is a legitimate runError event that transitions
// the instance to FAILED, not a core error.
type IllegalTransitionError struct {
	Instance WorkflowInstance
	State    State
	Event    Event
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: instance=%s state=%s event=%s",
		e.Instance, e.State, eventKindOf(e.Event))
}

// GRPCStatus lets a remote state-manager boundary translate this error
// without extra glue (the RPC surface itself is out of this core's scope).
func (e *IllegalTransitionError) GRPCStatus() *status.Status {
	return status.New(codes.FailedPrecondition, e.Error())
}

// StaleEventError is raised by StateManager.ReceiveIgnoreClosed when the
// caller-supplied counter does not match the instance's current counter.
// The caller may drop or retry; the timeout supervisor uses this to
// tolerate races with other event producers.
type StaleEventError struct {
	Instance WorkflowInstance
	Expected int64
	Actual   int64
}

func (e *StaleEventError) Error() string {
	return fmt.Sprintf("stale event: instance=%s expectedCounter=%d actualCounter=%d",
		e.Instance, e.Expected, e.Actual)
}

func (e *StaleEventError) GRPCStatus() *status.Status {
	return status.New(codes.Aborted, e.Error())
}

func eventKindOf(event Event) string {
	if event == nil {
		return "<nil>"
	}
	return event.Kind().String()
}
