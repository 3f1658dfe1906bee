package internal

import (
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"
)

type capturingPoster struct {
	events []Event
}

func (p *capturingPoster) ReceiveIgnoreClosed(instance WorkflowInstance, event Event, expectedCounter int64) error {
	p.events = append(p.events, event)
	return nil
}

func TestTimeoutSupervisorPostsExactlyOneTimeout(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(time.Hour)

	ttl := 10 * time.Minute
	cfg := TimeoutConfig{Defaults: map[State]time.Duration{StateRunning: ttl}}
	supervisor := NewTimeoutSupervisor(cfg, nil)

	instance := testInstance()
	run := Create(instance, StateRunning, ZeroStateData(), nowMillis(clk)-ttl.Milliseconds()-1, 3)

	poster := &capturingPoster{}
	require.NoError(t, supervisor.Evaluate(run, clk, poster))
	require.Len(t, poster.events, 1)
	require.Equal(t, EventTimeout, poster.events[0].Kind())
}

func TestTimeoutSupervisorDoesNothingBeforeTTL(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(time.Hour)

	ttl := 10 * time.Minute
	cfg := TimeoutConfig{Defaults: map[State]time.Duration{StateRunning: ttl}}
	supervisor := NewTimeoutSupervisor(cfg, nil)

	instance := testInstance()
	run := Create(instance, StateRunning, ZeroStateData(), nowMillis(clk)-1000, 3)

	poster := &capturingPoster{}
	require.NoError(t, supervisor.Evaluate(run, clk, poster))
	require.Empty(t, poster.events)
}

func TestTimeoutSupervisorSkipsTerminalStates(t *testing.T) {
	clk := clock.NewMock()
	cfg := TimeoutConfig{}
	supervisor := NewTimeoutSupervisor(cfg, nil)

	instance := testInstance()
	run := Create(instance, StateDone, ZeroStateData(), 0, 0)

	poster := &capturingPoster{}
	require.NoError(t, supervisor.Evaluate(run, clk, poster))
	require.Empty(t, poster.events)
}

// staleStateManager simulates an instance that has already moved on by the
// time the supervisor's post arrives: ReceiveIgnoreClosed reports the
// counter mismatch instead of applying the event.
type staleStateManager struct{}

func (staleStateManager) ReceiveIgnoreClosed(instance WorkflowInstance, event Event, expectedCounter int64) error {
	return &StaleEventError{Instance: instance, Expected: expectedCounter, Actual: expectedCounter + 1}
}

func TestTimeoutSupervisorPostIsDroppedWhenStale(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(time.Hour)

	ttl := time.Minute
	cfg := TimeoutConfig{Defaults: map[State]time.Duration{StateRunning: ttl}}
	supervisor := NewTimeoutSupervisor(cfg, nil)

	instance := testInstance()
	run := Create(instance, StateRunning, ZeroStateData(), nowMillis(clk)-ttl.Milliseconds()-1, 3)

	err := supervisor.Evaluate(run, clk, staleStateManager{})
	require.Error(t, err)
	require.IsType(t, &StaleEventError{}, err)
}
