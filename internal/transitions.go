package internal

// transitionRelation is the dispatch table: given the current state and an
// event, it yields the successor state and the data delta, or ok=false when
// the pair is not listed in the table (an illegal transition).
func transitionRelation(state State, data StateData, event Event) (State, StateData, bool) {
	switch e := event.(type) {
	case TriggerExecutionEvent:
		if state != StateNew {
			return state, data, false
		}
		return StateQueued, data.withTrigger(e.Trigger, e.Parameters), true

	case TimeTriggerEvent:
		if state != StateNew {
			return state, data, false
		}
		return StateSubmitted, data.withTrigger(UnknownTrigger(), data.TriggerParameters), true

	case InfoEvent:
		if state != StateQueued {
			return state, data, false
		}
		return StateQueued, data.withMessage(MessageInfo, e.Message), true

	case DequeueEvent:
		if state != StateQueued {
			return state, data, false
		}
		return StatePrepare, data.withDequeue(e.ResourceIDs), true

	case SubmitEvent:
		if state != StateQueued && state != StatePrepare {
			return state, data, false
		}
		return StateSubmitting, data.withSubmit(e.Description, e.ExecutionID), true

	case SubmittedEvent:
		if state != StateSubmitting {
			return state, data, false
		}
		return StateSubmitted, data.withSubmitted(e.ExecutionID, e.RunnerID), true

	case CreatedEvent:
		if state != StatePrepare && state != StateQueued {
			return state, data, false
		}
		return StateSubmitted, data.withCreated(e.ExecutionID, e.DockerImage), true

	case StartedEvent:
		if state != StateSubmitted && state != StatePrepare {
			return state, data, false
		}
		return StateRunning, data, true

	case TerminateEvent:
		if state != StateRunning {
			return state, data, false
		}
		return StateTerminated, data.withTerminate(e.ExitCode), true

	case RunErrorEvent:
		switch state {
		case StateQueued, StatePrepare, StateSubmitting, StateSubmitted, StateRunning:
		default:
			return state, data, false
		}
		return StateFailed, data.withRunError(e.Message), true

	case SuccessEvent:
		if state != StateTerminated {
			return state, data, false
		}
		return StateDone, data, true

	case RetryAfterEvent:
		switch state {
		case StateTerminated, StateFailed, StateQueued:
		default:
			return state, data, false
		}
		return StateQueued, data.withRetryAfter(e.DelayMillis), true

	case RetryEvent:
		switch state {
		case StateTerminated, StateFailed, StateQueued:
		default:
			return state, data, false
		}
		return StatePrepare, data, true

	case StopEvent:
		switch state {
		case StateTerminated, StateFailed:
		default:
			return state, data, false
		}
		return StateError, data, true

	case TimeoutEvent:
		// Admin-level intervention: bypasses predecessor checks entirely.
		return StateFailed, data, true

	case HaltEvent:
		// Admin-level intervention: bypasses predecessor checks entirely.
		return StateError, data, true

	default:
		return state, data, false
	}
}
