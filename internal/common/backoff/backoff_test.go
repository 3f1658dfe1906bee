package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestRetrierRespectsMaximumAttempts(t *testing.T) {
	policy := RetryPolicy{
		InitialInterval:    time.Millisecond,
		BackoffCoefficient: 2.0,
		MaximumAttempts:    3,
	}
	clk := &fakeClock{now: time.Unix(0, 0)}
	r := NewRetrier(policy, clk)

	require.NotEqual(t, done, r.NextBackOff())
	require.NotEqual(t, done, r.NextBackOff())
	require.NotEqual(t, done, r.NextBackOff())
	require.Equal(t, done, r.NextBackOff())
}

func TestRetrierExpirationInterval(t *testing.T) {
	policy := RetryPolicy{
		InitialInterval:    time.Millisecond,
		BackoffCoefficient: 2.0,
		ExpirationInterval: time.Second,
	}
	clk := &fakeClock{now: time.Unix(0, 0)}
	r := NewRetrier(policy, clk)

	clk.now = clk.now.Add(2 * time.Second)
	require.Equal(t, done, r.NextBackOff())
}

func TestRetrierResetRestartsBudget(t *testing.T) {
	policy := RetryPolicy{InitialInterval: time.Millisecond, BackoffCoefficient: 2.0, MaximumAttempts: 1}
	clk := &fakeClock{now: time.Unix(0, 0)}
	r := NewRetrier(policy, clk)

	require.NotEqual(t, done, r.NextBackOff())
	require.Equal(t, done, r.NextBackOff())

	r.Reset()
	require.NotEqual(t, done, r.NextBackOff())
}

func TestRetrySucceedsWithoutRetrying(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func() error {
		calls++
		return nil
	}, NewExponentialRetryPolicy(time.Millisecond), nil)

	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryGivesUpAfterMaximumAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	policy := RetryPolicy{InitialInterval: time.Microsecond, BackoffCoefficient: 1.0, MaximumAttempts: 2}

	err := Retry(context.Background(), func() error {
		calls++
		return boom
	}, policy, nil)

	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls) // initial attempt + 2 retries
}

func TestRetryHonorsIsRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	policy := NewExponentialRetryPolicy(time.Microsecond)

	err := Retry(context.Background(), func() error {
		calls++
		return fatal
	}, policy, IgnoreErrors([]error{fatal}))

	require.ErrorIs(t, err, fatal)
	require.Equal(t, 1, calls)
}
