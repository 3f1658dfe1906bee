package internal

import (
	"context"

	"github.com/flowforge/runstate/internal/common/backoff"
)

// RetryingSnapshotStore wraps a SnapshotStore with exponential-backoff
// retries for the transient failures a real persistence layer (a database
// connection blip, a throttled storage API) produces. The state machine
// itself stays retry-free; this lives entirely on the host side of the
// SnapshotStore boundary.
type RetryingSnapshotStore struct {
	inner       SnapshotStore
	policy      backoff.RetryPolicy
	isRetryable backoff.IsRetryable
}

// NewRetryingSnapshotStore wraps inner with policy. A nil isRetryable
// retries every error.
func NewRetryingSnapshotStore(inner SnapshotStore, policy backoff.RetryPolicy, isRetryable backoff.IsRetryable) *RetryingSnapshotStore {
	return &RetryingSnapshotStore{inner: inner, policy: policy, isRetryable: isRetryable}
}

// Load implements SnapshotStore.
func (s *RetryingSnapshotStore) Load(instance WorkflowInstance) (RunState, error) {
	var run RunState
	err := backoff.Retry(context.Background(), func() error {
		var loadErr error
		run, loadErr = s.inner.Load(instance)
		return loadErr
	}, s.policy, s.isRetryable)
	return run, err
}

// Save implements SnapshotStore.
func (s *RetryingSnapshotStore) Save(run RunState) error {
	return backoff.Retry(context.Background(), func() error {
		return s.inner.Save(run)
	}, s.policy, s.isRetryable)
}
