package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
)

type stateStub string

func (s stateStub) String() string { return string(s) }

func TestRecordTransitionIncrementsCounterAndHistogram(t *testing.T) {
	scope := tally.NewTestScope("runstate", nil)
	r := NewRecorder(scope)

	r.RecordTransition(stateStub("QUEUED"), stateStub("PREPARE"), 1500)
	r.RecordTransition(stateStub("QUEUED"), stateStub("PREPARE"), 500)

	snapshot := scope.Snapshot()
	require.NotEmpty(t, snapshot.Counters())
	// At two significant figures 1500 falls in the 1496..1503 bucket, and the
	// histogram reports a bucket's highest equivalent value.
	require.Equal(t, int64(1503), r.DwellPercentile(100))
}

func TestIncIllegalTransition(t *testing.T) {
	scope := tally.NewTestScope("runstate", nil)
	r := NewRecorder(scope)

	r.IncIllegalTransition()

	snapshot := scope.Snapshot()
	require.NotEmpty(t, snapshot.Counters())
}

func TestNewRecorderAcceptsNilScope(t *testing.T) {
	r := NewRecorder(nil)
	r.RecordTransition(stateStub("A"), stateStub("B"), 10)
	require.Equal(t, int64(10), r.DwellPercentile(100))
}
