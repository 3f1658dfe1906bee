package internal

import (
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/flowforge/runstate/internal/common/metrics"
)

// SnapshotStore is the external, out-of-core persistence boundary. The
// state machine performs no I/O itself; this interface is the seam a real
// storage layer plugs into.
type SnapshotStore interface {
	Load(instance WorkflowInstance) (RunState, error)
	Save(run RunState) error
}

// OutputHandler is invoked with the post-transition RunState after every
// successful transition. Implementations outside this core do the real
// work (dockerizing, logging, metrics emission); TimeoutHandler is the one
// OutputHandler that lives in this core.
type OutputHandler interface {
	TransitionInto(run RunState) error
}

// StateManagerOption configures a StateManager at construction time.
type StateManagerOption func(*StateManager)

// WithLogger sets the structured logger used for output-handler failures.
func WithLogger(logger *zap.Logger) StateManagerOption {
	return func(m *StateManager) { m.logger = logger }
}

// WithMetricsRecorder sets the metrics recorder transitions are reported to.
func WithMetricsRecorder(recorder *metrics.Recorder) StateManagerOption {
	return func(m *StateManager) { m.metrics = recorder }
}

// WithTracer sets the opentracing tracer spans are recorded against.
func WithTracer(tracer opentracing.Tracer) StateManagerOption {
	return func(m *StateManager) { m.tracer = tracer }
}

// WithOutputHandlers registers the output handlers invoked after every
// successful transition, in the order given.
func WithOutputHandlers(handlers ...OutputHandler) StateManagerOption {
	return func(m *StateManager) { m.handlers = append(m.handlers, handlers...) }
}

type instanceGuard struct {
	mu      sync.Mutex
	counter atomic.Int64
}

// StateManager is the minimal host required to exercise RunState.Transition
// with a single writer per instance, linearizable ordering per instance, and
// optimistic-concurrency posting via ReceiveIgnoreClosed. It persists
// nothing itself; store does.
type StateManager struct {
	store    SnapshotStore
	handlers []OutputHandler
	logger   *zap.Logger
	tracer   opentracing.Tracer
	metrics  *metrics.Recorder

	guardsMu sync.Mutex
	guards   map[WorkflowInstance]*instanceGuard
}

// NewStateManager builds a StateManager backed by store.
func NewStateManager(store SnapshotStore, opts ...StateManagerOption) *StateManager {
	m := &StateManager{
		store:   store,
		logger:  zap.NewNop(),
		tracer:  opentracing.NoopTracer{},
		metrics: metrics.NewRecorder(nil),
		guards:  make(map[WorkflowInstance]*instanceGuard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterOutputHandler appends handler to the set invoked after every
// successful transition. Safe to call after construction, before Apply is
// first used concurrently.
func (m *StateManager) RegisterOutputHandler(handler OutputHandler) {
	m.guardsMu.Lock()
	defer m.guardsMu.Unlock()
	m.handlers = append(m.handlers, handler)
}

func (m *StateManager) guardFor(instance WorkflowInstance) *instanceGuard {
	m.guardsMu.Lock()
	defer m.guardsMu.Unlock()
	g, ok := m.guards[instance]
	if !ok {
		g = &instanceGuard{}
		g.counter.Store(CounterNone)
		m.guards[instance] = g
	}
	return g
}

// Apply loads the current RunState for instance, transitions it with event,
// persists the result, and fans it out to every registered OutputHandler.
// Single-writer per instance is enforced by locking the instance's guard
// for the duration of the call.
func (m *StateManager) Apply(instance WorkflowInstance, event Event, clk Clock) (RunState, error) {
	g := m.guardFor(instance)
	g.mu.Lock()
	defer g.mu.Unlock()
	return m.applyLocked(g, instance, event, clk)
}

func (m *StateManager) applyLocked(g *instanceGuard, instance WorkflowInstance, event Event, clk Clock) (RunState, error) {
	span := m.tracer.StartSpan("runstate.transition")
	span.SetTag("workflow.instance", instance.String())
	span.SetTag("event.kind", event.Kind().String())
	defer span.Finish()

	current, err := m.store.Load(instance)
	if err != nil {
		return RunState{}, errors.Wrap(err, "load run state")
	}

	next, err := current.Transition(event, clk)
	if err != nil {
		m.metrics.IncIllegalTransition()
		span.SetTag("error", true)
		return RunState{}, err
	}

	if err := m.store.Save(next); err != nil {
		return RunState{}, errors.Wrap(err, "save run state")
	}
	g.counter.Store(next.Counter)

	m.metrics.RecordTransition(current.State, next.State, next.TimestampMillis-current.TimestampMillis)
	span.SetTag("state.to", next.State.String())

	for _, handler := range m.handlers {
		if err := handler.TransitionInto(next); err != nil {
			m.logger.Error("output handler failed",
				zap.String("instance", instance.String()),
				zap.String("state", next.State.String()),
				zap.Error(err))
		}
	}

	return next, nil
}

// ReceiveIgnoreClosed posts event guarded by optimistic concurrency on
// expectedCounter: if the instance's observed counter has moved past
// expectedCounter, the post is silently dropped by returning a
// *StaleEventError the caller may ignore. This is the mechanism
// TimeoutSupervisor uses to tolerate races with other event producers.
func (m *StateManager) ReceiveIgnoreClosed(instance WorkflowInstance, event Event, expectedCounter int64) error {
	g := m.guardFor(instance)
	g.mu.Lock()
	defer g.mu.Unlock()

	actual := g.counter.Load()
	if actual == CounterNone {
		// No transition of this instance has gone through this manager yet;
		// the store holds its current counter.
		current, err := m.store.Load(instance)
		if err != nil {
			return errors.Wrap(err, "load run state")
		}
		actual = current.Counter
	}
	if actual != expectedCounter {
		return &StaleEventError{Instance: instance, Expected: expectedCounter, Actual: actual}
	}

	_, err := m.applyLocked(g, instance, event, SystemClockFor(m))
	return err
}

// SystemClockFor exists so ReceiveIgnoreClosed can be called without
// threading a clock through every caller. Every event posted through
// ReceiveIgnoreClosed, the timeout supervisor's included, is stamped with
// the real wall clock.
func SystemClockFor(*StateManager) Clock {
	return SystemClock()
}
