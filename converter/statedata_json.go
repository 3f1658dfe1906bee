package converter

import (
	"encoding/json"
	"fmt"

	"github.com/flowforge/runstate/internal"
)

// runStateDocument mirrors internal.RunState field-for-field. encoding/json
// already preserves the absence-vs-zero distinction this package's spec
// requires: a nil *int32/*int64 marshals to JSON null and unmarshals back
// to nil, and a nil []string stays nil (vs. an empty, non-nil slice).
type runStateDocument struct {
	Instance        instanceDocument  `json:"instance"`
	State           int32             `json:"state"`
	Data            stateDataDocument `json:"data"`
	TimestampMillis int64             `json:"timestampMillis"`
	Counter         int64             `json:"counter"`
}

type instanceDocument struct {
	WorkflowID string `json:"workflowId"`
	Parameter  string `json:"parameter"`
}

type triggerDocument struct {
	Kind int32  `json:"kind"`
	ID   string `json:"id"`
}

type executionDescriptionDocument struct {
	Image  string   `json:"image"`
	Args   []string `json:"args"`
	Commit string   `json:"commit"`
}

type messageDocument struct {
	Level int32  `json:"level"`
	Text  string `json:"text"`
}

type stateDataDocument struct {
	Trigger              triggerDocument               `json:"trigger"`
	TriggerID            string                        `json:"triggerId"`
	TriggerParameters    map[string]interface{}        `json:"triggerParameters"`
	ExecutionID          string                        `json:"executionId"`
	ExecutionDescription *executionDescriptionDocument `json:"executionDescription"`
	RunnerID             string                        `json:"runnerId"`
	ResourceIDs          []string                      `json:"resourceIds"`
	RetryDelayMillis     *int64                        `json:"retryDelayMillis"`
	Tries                int                           `json:"tries"`
	ConsecutiveFailures  int                           `json:"consecutiveFailures"`
	RetryCost            float64                       `json:"retryCost"`
	LastExit             *int32                        `json:"lastExit"`
	Messages             []messageDocument             `json:"messages"`
}

// RunStateConverter round-trips internal.RunState to and from its JSON
// persisted shape via a Payload, satisfying the "persisted shape" round-trip
// requirement: every RunState and StateData field, including
// absence-vs-zero distinctions for LastExit and RetryDelayMillis.
type RunStateConverter struct{}

// NewRunStateConverter builds a RunStateConverter.
func NewRunStateConverter() RunStateConverter { return RunStateConverter{} }

// ToPayload serializes run to its wire Payload.
func (RunStateConverter) ToPayload(run internal.RunState) (Payload, error) {
	doc := toDocument(run)
	data, err := json.Marshal(doc)
	if err != nil {
		return Payload{}, fmt.Errorf("marshal run state: %w", err)
	}
	return Payload{
		Metadata: map[string][]byte{metadataEncoding: []byte(metadataEncodingJSON)},
		Data:     data,
	}, nil
}

// FromPayload deserializes a RunState previously produced by ToPayload.
func (RunStateConverter) FromPayload(payload Payload) (internal.RunState, error) {
	var doc runStateDocument
	if err := json.Unmarshal(payload.Data, &doc); err != nil {
		return internal.RunState{}, fmt.Errorf("unmarshal run state: %w", err)
	}
	return fromDocument(doc), nil
}

func toDocument(run internal.RunState) runStateDocument {
	data := run.Data

	var desc *executionDescriptionDocument
	if data.ExecutionDescription != nil {
		desc = &executionDescriptionDocument{
			Image:  data.ExecutionDescription.Image,
			Args:   data.ExecutionDescription.Args,
			Commit: data.ExecutionDescription.Commit,
		}
	}

	var messages []messageDocument
	if data.Messages != nil {
		messages = make([]messageDocument, len(data.Messages))
		for i, m := range data.Messages {
			messages[i] = messageDocument{Level: int32(m.Level), Text: m.Text}
		}
	}

	var triggerParams map[string]interface{}
	if data.TriggerParameters != nil {
		triggerParams = map[string]interface{}(data.TriggerParameters)
	}

	return runStateDocument{
		Instance: instanceDocument{
			WorkflowID: run.Instance.WorkflowID,
			Parameter:  run.Instance.Parameter,
		},
		State: int32(run.State),
		Data: stateDataDocument{
			Trigger:              triggerDocument{Kind: int32(data.Trigger.Kind), ID: data.Trigger.ID},
			TriggerID:            data.TriggerID,
			TriggerParameters:    triggerParams,
			ExecutionID:          data.ExecutionID,
			ExecutionDescription: desc,
			RunnerID:             data.RunnerID,
			ResourceIDs:          data.ResourceIDs,
			RetryDelayMillis:     data.RetryDelayMillis,
			Tries:                data.Tries,
			ConsecutiveFailures:  data.ConsecutiveFailures,
			RetryCost:            data.RetryCost,
			LastExit:             data.LastExit,
			Messages:             messages,
		},
		TimestampMillis: run.TimestampMillis,
		Counter:         run.Counter,
	}
}

func fromDocument(doc runStateDocument) internal.RunState {
	var desc *internal.ExecutionDescription
	if doc.Data.ExecutionDescription != nil {
		desc = &internal.ExecutionDescription{
			Image:  doc.Data.ExecutionDescription.Image,
			Args:   doc.Data.ExecutionDescription.Args,
			Commit: doc.Data.ExecutionDescription.Commit,
		}
	}

	var messages []internal.Message
	if doc.Data.Messages != nil {
		messages = make([]internal.Message, len(doc.Data.Messages))
		for i, m := range doc.Data.Messages {
			messages[i] = internal.Message{Level: internal.MessageLevel(m.Level), Text: m.Text}
		}
	}

	var triggerParams internal.TriggerParameters
	if doc.Data.TriggerParameters != nil {
		triggerParams = internal.TriggerParameters(doc.Data.TriggerParameters)
	}

	data := internal.StateData{
		Trigger:             internal.Trigger{Kind: internal.TriggerKind(doc.Data.Trigger.Kind), ID: doc.Data.Trigger.ID},
		TriggerID:           doc.Data.TriggerID,
		TriggerParameters:   triggerParams,
		ExecutionID:         doc.Data.ExecutionID,
		ExecutionDescription: desc,
		RunnerID:            doc.Data.RunnerID,
		ResourceIDs:         doc.Data.ResourceIDs,
		RetryDelayMillis:    doc.Data.RetryDelayMillis,
		Tries:               doc.Data.Tries,
		ConsecutiveFailures: doc.Data.ConsecutiveFailures,
		RetryCost:           doc.Data.RetryCost,
		LastExit:            doc.Data.LastExit,
		Messages:            messages,
	}

	instance := internal.NewWorkflowInstance(doc.Instance.WorkflowID, doc.Instance.Parameter)
	return internal.Create(instance, internal.State(doc.State), data, doc.TimestampMillis, doc.Counter)
}
