package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/runstate/internal/common/backoff"
)

type flakySnapshotStore struct {
	failuresLeft int
	loaded       RunState
	saved        []RunState
}

func (s *flakySnapshotStore) Load(instance WorkflowInstance) (RunState, error) {
	if s.failuresLeft > 0 {
		s.failuresLeft--
		return RunState{}, errors.New("transient load failure")
	}
	return s.loaded, nil
}

func (s *flakySnapshotStore) Save(run RunState) error {
	if s.failuresLeft > 0 {
		s.failuresLeft--
		return errors.New("transient save failure")
	}
	s.saved = append(s.saved, run)
	return nil
}

func testRetryPolicy() backoff.RetryPolicy {
	return backoff.RetryPolicy{
		InitialInterval:    time.Microsecond,
		BackoffCoefficient: 1.0,
		MaximumAttempts:    5,
	}
}

func TestRetryingSnapshotStoreLoadRetriesUntilSuccess(t *testing.T) {
	inner := &flakySnapshotStore{failuresLeft: 2, loaded: Fresh(testInstance(), clock.NewMock())}
	store := NewRetryingSnapshotStore(inner, testRetryPolicy(), nil)

	run, err := store.Load(testInstance())
	require.NoError(t, err)
	require.Equal(t, inner.loaded, run)
	require.Equal(t, 0, inner.failuresLeft)
}

func TestRetryingSnapshotStoreSaveGivesUpAfterMaximumAttempts(t *testing.T) {
	inner := &flakySnapshotStore{failuresLeft: 100}
	store := NewRetryingSnapshotStore(inner, testRetryPolicy(), nil)

	err := store.Save(Fresh(testInstance(), clock.NewMock()))
	require.Error(t, err)
	require.Empty(t, inner.saved)
}

func TestRetryingSnapshotStoreHonorsIsRetryable(t *testing.T) {
	fatal := errors.New("fatal, do not retry")
	isRetryable := func(err error) bool { return false }

	failingInner := &alwaysFailingStore{err: fatal}
	store := NewRetryingSnapshotStore(failingInner, testRetryPolicy(), isRetryable)

	_, err := store.Load(testInstance())
	require.ErrorIs(t, err, fatal)
	require.Equal(t, 1, failingInner.loadCalls)
}

type alwaysFailingStore struct {
	err       error
	loadCalls int
}

func (s *alwaysFailingStore) Load(instance WorkflowInstance) (RunState, error) {
	s.loadCalls++
	return RunState{}, s.err
}

func (s *alwaysFailingStore) Save(run RunState) error {
	return s.err
}
