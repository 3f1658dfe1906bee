package internal

import "github.com/pborman/uuid"

// TriggerKind tags what caused a run.
type TriggerKind int

const (
	// TriggerNone is the zero value: no trigger has fired yet (StateData.zero()).
	TriggerNone TriggerKind = iota
	TriggerNatural
	TriggerBackfill
	TriggerAdHoc
	TriggerUnknown
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerNone:
		return ""
	case TriggerNatural:
		return "NATURAL"
	case TriggerBackfill:
		return "BACKFILL"
	case TriggerAdHoc:
		return "ADHOC"
	case TriggerUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

// Trigger is the tagged variant identifying what caused a run.
type Trigger struct {
	Kind TriggerKind
	// ID is populated for Backfill/AdHoc triggers; empty for Natural/Unknown.
	ID string
}

// Flatten produces the legacy flat string form retained for backward
// compatibility with consumers that only understand StateData.TriggerID.
func (t Trigger) Flatten() string {
	if t.ID == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + ":" + t.ID
}

// UnknownTrigger is the trigger value used by the legacy timeTrigger event.
func UnknownTrigger() Trigger {
	return Trigger{Kind: TriggerUnknown}
}

// NewAdHocTrigger mints a Trigger for an operator-initiated run with no
// natural schedule or backfill window to key off of, tagging it with a
// generated identifier the way the teacher tags an ad-hoc sticky task list
// (stickyUUID) when nothing externally supplied identifies the request.
func NewAdHocTrigger() Trigger {
	return Trigger{Kind: TriggerAdHoc, ID: uuid.New()}
}

// TriggerParameters is the opaque parameter bag supplied with a trigger.
type TriggerParameters map[string]interface{}

// ExecutionDescription records what was committed to the executor at submit
// time: the image, its arguments, and the commit the image was built from.
type ExecutionDescription struct {
	Image  string
	Args   []string
	Commit string
}

// ForImage builds the minimal ExecutionDescription the legacy created event
// carries: just a docker image, no args or commit metadata.
func ForImage(image string) *ExecutionDescription {
	return &ExecutionDescription{Image: image}
}

// Message is one entry of StateData.Messages.
type Message struct {
	Level MessageLevel
	Text  string
}

// StateData is the immutable, accumulated per-instance bookkeeping that
// travels alongside a RunState. Every mutation method here returns a new
// value; none mutate the receiver.
type StateData struct {
	Trigger              Trigger
	TriggerID             string
	TriggerParameters     TriggerParameters
	ExecutionID           string
	ExecutionDescription  *ExecutionDescription
	RunnerID              string
	ResourceIDs           []string
	RetryDelayMillis      *int64
	Tries                 int
	ConsecutiveFailures   int
	RetryCost             float64
	LastExit              *int32
	Messages              []Message
}

// ZeroStateData is StateData.zero(): all optionals absent, sequences empty,
// counters at zero.
func ZeroStateData() StateData {
	return StateData{}
}

func (d StateData) withTrigger(t Trigger, params TriggerParameters) StateData {
	d.Trigger = t
	d.TriggerID = t.Flatten()
	d.TriggerParameters = params
	return d
}

func (d StateData) withMessage(level MessageLevel, text string) StateData {
	messages := make([]Message, len(d.Messages), len(d.Messages)+1)
	copy(messages, d.Messages)
	d.Messages = append(messages, Message{Level: level, Text: text})
	return d
}

func (d StateData) withDequeue(resourceIDs []string) StateData {
	d.RetryDelayMillis = nil
	if len(resourceIDs) == 0 {
		d.ResourceIDs = nil
	} else {
		d.ResourceIDs = append([]string(nil), resourceIDs...)
	}
	return d
}

func (d StateData) withSubmit(desc *ExecutionDescription, executionID string) StateData {
	d.ExecutionDescription = desc
	d.ExecutionID = executionID
	return d
}

func (d StateData) withSubmitted(executionID, runnerID string) StateData {
	d.Tries++
	if d.ExecutionID == "" {
		d.ExecutionID = executionID
	}
	d.RunnerID = runnerID
	return d
}

func (d StateData) withCreated(executionID, dockerImage string) StateData {
	d.ExecutionID = executionID
	d.ExecutionDescription = ForImage(dockerImage)
	d.Tries++
	return d
}

func (d StateData) withTerminate(exitCode *int32) StateData {
	d.RetryCost += exitCost(exitCode)
	d.LastExit = exitCode
	d.ConsecutiveFailures = nextConsecutiveFailures(exitCode, d.ConsecutiveFailures)
	return d.withMessage(messageLevelForExit(exitCode), "Exit code: "+exitCodeString(exitCode))
}

func (d StateData) withRunError(message string) StateData {
	d.RetryCost += 1.0
	d.LastExit = nil
	d.ConsecutiveFailures++
	return d.withMessage(MessageError, message)
}

func (d StateData) withRetryAfter(delayMillis int64) StateData {
	delay := delayMillis
	d.RetryDelayMillis = &delay
	d.ExecutionID = ""
	d.ExecutionDescription = nil
	d.ResourceIDs = nil
	return d
}
