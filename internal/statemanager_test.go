package internal

import (
	"errors"
	"sync"
	"testing"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotStore struct {
	mu   sync.Mutex
	runs map[WorkflowInstance]RunState
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{runs: make(map[WorkflowInstance]RunState)}
}

func (s *fakeSnapshotStore) seed(run RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.Instance] = run
}

func (s *fakeSnapshotStore) Load(instance WorkflowInstance) (RunState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[instance]
	if !ok {
		return RunState{}, errors.New("not found")
	}
	return run, nil
}

func (s *fakeSnapshotStore) Save(run RunState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.Instance] = run
	return nil
}

type fakeOutputHandler struct {
	mu   sync.Mutex
	seen []RunState
	err  error
}

func (h *fakeOutputHandler) TransitionInto(run RunState) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, run)
	return h.err
}

func TestStateManagerApplyPersistsAndFansOutToHandlers(t *testing.T) {
	clk := clock.NewMock()
	instance := testInstance()
	store := newFakeSnapshotStore()
	store.seed(Fresh(instance, clk))

	handler := &fakeOutputHandler{}
	manager := NewStateManager(store, WithOutputHandlers(handler))

	next, err := manager.Apply(instance, NewTriggerExecutionEvent(instance, Trigger{Kind: TriggerNatural}, nil), clk)
	require.NoError(t, err)
	require.Equal(t, StateQueued, next.State)

	persisted, err := store.Load(instance)
	require.NoError(t, err)
	require.Equal(t, next, persisted)

	require.Len(t, handler.seen, 1)
	require.Equal(t, next, handler.seen[0])
}

func TestStateManagerApplyRejectsIllegalTransition(t *testing.T) {
	clk := clock.NewMock()
	instance := testInstance()
	store := newFakeSnapshotStore()
	store.seed(Create(instance, StateDone, ZeroStateData(), 0, 0))

	manager := NewStateManager(store)

	_, err := manager.Apply(instance, NewSuccessEvent(instance), clk)
	require.Error(t, err)
	require.IsType(t, &IllegalTransitionError{}, err)
}

func TestStateManagerApplyDoesNotFailOnOutputHandlerError(t *testing.T) {
	clk := clock.NewMock()
	instance := testInstance()
	store := newFakeSnapshotStore()
	store.seed(Fresh(instance, clk))

	handler := &fakeOutputHandler{err: errors.New("handler boom")}
	manager := NewStateManager(store, WithOutputHandlers(handler))

	_, err := manager.Apply(instance, NewTriggerExecutionEvent(instance, Trigger{Kind: TriggerNatural}, nil), clk)
	require.NoError(t, err)
	require.Len(t, handler.seen, 1)
}

func TestStateManagerReceiveIgnoreClosedAppliesOnMatchingCounter(t *testing.T) {
	clk := clock.NewMock()
	instance := testInstance()
	store := newFakeSnapshotStore()
	store.seed(Fresh(instance, clk))

	manager := NewStateManager(store)
	err := manager.ReceiveIgnoreClosed(instance, NewTriggerExecutionEvent(instance, Trigger{Kind: TriggerNatural}, nil), CounterNone)
	require.NoError(t, err)

	persisted, err := store.Load(instance)
	require.NoError(t, err)
	require.Equal(t, StateQueued, persisted.State)
}

func TestStateManagerReceiveIgnoreClosedDropsStaleCounter(t *testing.T) {
	clk := clock.NewMock()
	instance := testInstance()
	store := newFakeSnapshotStore()
	store.seed(Fresh(instance, clk))

	manager := NewStateManager(store)
	_, applyErr := manager.Apply(instance, NewTriggerExecutionEvent(instance, Trigger{Kind: TriggerNatural}, nil), clk)
	require.NoError(t, applyErr)

	err := manager.ReceiveIgnoreClosed(instance, NewDequeueEvent(instance, nil), CounterNone)
	require.Error(t, err)
	require.IsType(t, &StaleEventError{}, err)

	persisted, loadErr := store.Load(instance)
	require.NoError(t, loadErr)
	require.Equal(t, StateQueued, persisted.State)
}
