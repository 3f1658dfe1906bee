package internal

// EventKind tags the variant of an Event, mirroring the visitor-dispatched
// event hierarchy of systems that model this the same way Temporal models
// decision events: the type switch in transitionRelation plays the role the
// visitor's double dispatch used to.
type EventKind int

const (
	EventTriggerExecution EventKind = iota
	EventTimeTrigger      // legacy
	EventInfo
	EventDequeue
	EventSubmit
	EventSubmitted
	EventCreated // legacy
	EventStarted
	EventTerminate
	EventRunError
	EventSuccess
	EventRetryAfter
	EventRetry // legacy
	EventStop
	EventTimeout
	EventHalt
)

func (k EventKind) String() string {
	switch k {
	case EventTriggerExecution:
		return "triggerExecution"
	case EventTimeTrigger:
		return "timeTrigger"
	case EventInfo:
		return "info"
	case EventDequeue:
		return "dequeue"
	case EventSubmit:
		return "submit"
	case EventSubmitted:
		return "submitted"
	case EventCreated:
		return "created"
	case EventStarted:
		return "started"
	case EventTerminate:
		return "terminate"
	case EventRunError:
		return "runError"
	case EventSuccess:
		return "success"
	case EventRetryAfter:
		return "retryAfter"
	case EventRetry:
		return "retry"
	case EventStop:
		return "stop"
	case EventTimeout:
		return "timeout"
	case EventHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// Event is the tagged-variant alphabet transition accepts. Every concrete
// event type carries the WorkflowInstance it targets plus its own payload.
type Event interface {
	Kind() EventKind
	Instance() WorkflowInstance
}

type eventBase struct {
	instance WorkflowInstance
}

func (e eventBase) Instance() WorkflowInstance { return e.instance }

// TriggerExecutionEvent fires the first real event of an instance's life.
type TriggerExecutionEvent struct {
	eventBase
	Trigger    Trigger
	Parameters TriggerParameters
}

func NewTriggerExecutionEvent(instance WorkflowInstance, trigger Trigger, params TriggerParameters) TriggerExecutionEvent {
	return TriggerExecutionEvent{eventBase{instance}, trigger, params}
}
func (TriggerExecutionEvent) Kind() EventKind { return EventTriggerExecution }

// TimeTriggerEvent is the legacy event retained to replay historical logs.
type TimeTriggerEvent struct{ eventBase }

func NewTimeTriggerEvent(instance WorkflowInstance) TimeTriggerEvent {
	return TimeTriggerEvent{eventBase{instance}}
}
func (TimeTriggerEvent) Kind() EventKind { return EventTimeTrigger }

// InfoEvent appends an informational message without changing state.
type InfoEvent struct {
	eventBase
	Message string
}

func NewInfoEvent(instance WorkflowInstance, message string) InfoEvent {
	return InfoEvent{eventBase{instance}, message}
}
func (InfoEvent) Kind() EventKind { return EventInfo }

// DequeueEvent claims resource holds and moves the instance into PREPARE.
type DequeueEvent struct {
	eventBase
	ResourceIDs []string
}

func NewDequeueEvent(instance WorkflowInstance, resourceIDs []string) DequeueEvent {
	return DequeueEvent{eventBase{instance}, resourceIDs}
}
func (DequeueEvent) Kind() EventKind { return EventDequeue }

// SubmitEvent records the execution description committed at submission time.
type SubmitEvent struct {
	eventBase
	Description *ExecutionDescription
	ExecutionID string
}

func NewSubmitEvent(instance WorkflowInstance, desc *ExecutionDescription, executionID string) SubmitEvent {
	return SubmitEvent{eventBase{instance}, desc, executionID}
}
func (SubmitEvent) Kind() EventKind { return EventSubmit }

// SubmittedEvent is posted once the executor accepts the submission.
type SubmittedEvent struct {
	eventBase
	ExecutionID string
	RunnerID    string
}

func NewSubmittedEvent(instance WorkflowInstance, executionID, runnerID string) SubmittedEvent {
	return SubmittedEvent{eventBase{instance}, executionID, runnerID}
}
func (SubmittedEvent) Kind() EventKind { return EventSubmitted }

// CreatedEvent is the legacy event retained to replay historical logs.
type CreatedEvent struct {
	eventBase
	ExecutionID string
	DockerImage string
}

func NewCreatedEvent(instance WorkflowInstance, executionID, dockerImage string) CreatedEvent {
	return CreatedEvent{eventBase{instance}, executionID, dockerImage}
}
func (CreatedEvent) Kind() EventKind { return EventCreated }

// StartedEvent marks the executor has begun running the submission.
type StartedEvent struct{ eventBase }

func NewStartedEvent(instance WorkflowInstance) StartedEvent {
	return StartedEvent{eventBase{instance}}
}
func (StartedEvent) Kind() EventKind { return EventStarted }

// TerminateEvent reports the executor has exited, optionally with a code.
type TerminateEvent struct {
	eventBase
	ExitCode *int32
}

func NewTerminateEvent(instance WorkflowInstance, exitCode *int32) TerminateEvent {
	return TerminateEvent{eventBase{instance}, exitCode}
}
func (TerminateEvent) Kind() EventKind { return EventTerminate }

// RunErrorEvent records an application failure from the executor.
type RunErrorEvent struct {
	eventBase
	Message string
}

func NewRunErrorEvent(instance WorkflowInstance, message string) RunErrorEvent {
	return RunErrorEvent{eventBase{instance}, message}
}
func (RunErrorEvent) Kind() EventKind { return EventRunError }

// SuccessEvent closes out a TERMINATED run as DONE.
type SuccessEvent struct{ eventBase }

func NewSuccessEvent(instance WorkflowInstance) SuccessEvent {
	return SuccessEvent{eventBase{instance}}
}
func (SuccessEvent) Kind() EventKind { return EventSuccess }

// RetryAfterEvent schedules a future dequeue attempt and clears submission state.
type RetryAfterEvent struct {
	eventBase
	DelayMillis int64
}

func NewRetryAfterEvent(instance WorkflowInstance, delayMillis int64) RetryAfterEvent {
	return RetryAfterEvent{eventBase{instance}, delayMillis}
}
func (RetryAfterEvent) Kind() EventKind { return EventRetryAfter }

// RetryEvent is the legacy event retained to replay historical logs. Unlike
// RetryAfterEvent it mutates no data field; new code should prefer
// RetryAfterEvent (spec open question, preserved as-is).
type RetryEvent struct{ eventBase }

func NewRetryEvent(instance WorkflowInstance) RetryEvent {
	return RetryEvent{eventBase{instance}}
}
func (RetryEvent) Kind() EventKind { return EventRetry }

// StopEvent is an admin-level intervention moving a terminated/failed run to ERROR.
type StopEvent struct{ eventBase }

func NewStopEvent(instance WorkflowInstance) StopEvent {
	return StopEvent{eventBase{instance}}
}
func (StopEvent) Kind() EventKind { return EventStop }

// TimeoutEvent is injected by TimeoutSupervisor when an instance has dwelt
// too long in its current state. Legal from any non-terminal state.
type TimeoutEvent struct{ eventBase }

func NewTimeoutEvent(instance WorkflowInstance) TimeoutEvent {
	return TimeoutEvent{eventBase{instance}}
}
func (TimeoutEvent) Kind() EventKind { return EventTimeout }

// HaltEvent is an admin-level intervention legal from any non-terminal state.
type HaltEvent struct{ eventBase }

func NewHaltEvent(instance WorkflowInstance) HaltEvent {
	return HaltEvent{eventBase{instance}}
}
func (HaltEvent) Kind() EventKind { return EventHalt }
