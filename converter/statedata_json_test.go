package converter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/runstate/internal"
)

func int32Ptr(v int32) *int32 { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestRunStateConverterRoundTrip(t *testing.T) {
	instance := internal.NewWorkflowInstance("etl-daily", "2026-07-31")
	data := internal.StateData{
		Trigger:             internal.Trigger{Kind: internal.TriggerBackfill, ID: "bf-1"},
		TriggerID:           "BACKFILL:bf-1",
		TriggerParameters:   internal.TriggerParameters{"window": "2026-07-30"},
		ExecutionID:         "exec-1",
		ExecutionDescription: &internal.ExecutionDescription{Image: "worker:latest", Args: []string{"--flag"}, Commit: "abc123"},
		RunnerID:            "runner-A",
		ResourceIDs:         []string{"r1", "r2"},
		RetryDelayMillis:    int64Ptr(30000),
		Tries:               3,
		ConsecutiveFailures: 1,
		RetryCost:           1.1,
		LastExit:            int32Ptr(internal.ExitCodeUnknownError),
		Messages: []internal.Message{
			{Level: internal.MessageInfo, Text: "started"},
			{Level: internal.MessageError, Text: "boom"},
		},
	}
	run := internal.Create(instance, internal.StateFailed, data, 1690000000000, 7)

	conv := NewRunStateConverter()
	payload, err := conv.ToPayload(run)
	require.NoError(t, err)

	restored, err := conv.FromPayload(payload)
	require.NoError(t, err)

	require.Equal(t, run, restored)
}

func TestRunStateConverterPreservesAbsentOptionals(t *testing.T) {
	instance := internal.NewWorkflowInstance("etl-daily", "2026-07-31")
	run := internal.Create(instance, internal.StateQueued, internal.ZeroStateData(), 0, internal.CounterNone)

	conv := NewRunStateConverter()
	payload, err := conv.ToPayload(run)
	require.NoError(t, err)

	restored, err := conv.FromPayload(payload)
	require.NoError(t, err)

	require.Nil(t, restored.Data.LastExit)
	require.Nil(t, restored.Data.RetryDelayMillis)
	require.Nil(t, restored.Data.ExecutionDescription)
	require.Equal(t, run, restored)
}

func TestDefaultPayloadConverterRawBytes(t *testing.T) {
	var out []byte
	payload, err := DefaultPayloadConverter.ToPayload([]byte("raw-bytes"))
	require.NoError(t, err)
	require.NoError(t, DefaultPayloadConverter.FromPayload(payload, &out))
	require.Equal(t, "raw-bytes", string(out))
}

func TestDefaultPayloadConverterJSON(t *testing.T) {
	type value struct {
		A int
		B string
	}
	in := value{A: 1, B: "x"}
	payload, err := DefaultPayloadConverter.ToPayload(in)
	require.NoError(t, err)

	var out value
	require.NoError(t, DefaultPayloadConverter.FromPayload(payload, &out))
	require.Equal(t, in, out)
}
