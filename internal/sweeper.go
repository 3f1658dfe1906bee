package internal

import (
	"context"
	"sync"

	"github.com/robfig/cron"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// InstanceLister supplies the set of non-terminal instances a TimeoutSweeper
// should sweep on each tick. A real deployment backs this with whatever
// index the snapshot store keeps of live instances; the sweeper itself
// holds no such index.
type InstanceLister interface {
	ListActive() ([]RunState, error)
}

// TimeoutSweeper drives TimeoutSupervisor.Evaluate across every active
// instance on a cron schedule, rate-limited so a large backlog of overdue
// instances can't starve the state manager's single-writer locks.
type TimeoutSweeper struct {
	supervisor TimeoutSupervisor
	lister     InstanceLister
	poster     EventPoster
	clock      Clock
	logger     *zap.Logger
	limiter    *rate.Limiter

	cronSchedule string
	cron         *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewTimeoutSweeper builds a sweeper that evaluates every instance returned
// by lister on every firing of cronSchedule (robfig/cron syntax: a leading
// seconds field, so six fields, or five with the day-of-week omitted, or a
// descriptor such as "@every 1h"), posting at most ratePerSecond timeout
// events per second.
func NewTimeoutSweeper(
	supervisor TimeoutSupervisor,
	lister InstanceLister,
	poster EventPoster,
	clk Clock,
	cronSchedule string,
	ratePerSecond rate.Limit,
	logger *zap.Logger,
) *TimeoutSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeoutSweeper{
		supervisor:   supervisor,
		lister:       lister,
		poster:       poster,
		clock:        clk,
		logger:       logger,
		limiter:      rate.NewLimiter(ratePerSecond, int(ratePerSecond)+1),
		cronSchedule: cronSchedule,
	}
}

// Start begins the cron-driven sweep. It is a no-op if already started.
func (s *TimeoutSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	c := cron.New()
	if err := c.AddFunc(s.cronSchedule, s.sweepOnce); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.running = true
	return nil
}

// Stop halts the cron schedule. Sweeps already in flight run to completion.
func (s *TimeoutSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
}

func (s *TimeoutSweeper) sweepOnce() {
	active, err := s.lister.ListActive()
	if err != nil {
		s.logger.Error("timeout sweep: list active instances failed", zap.Error(err))
		return
	}

	for _, run := range active {
		if err := s.limiter.Wait(context.Background()); err != nil {
			s.logger.Warn("timeout sweep: rate limiter wait failed", zap.Error(err))
			continue
		}
		if err := s.supervisor.Evaluate(run, s.clock, s.poster); err != nil {
			if _, stale := err.(*StaleEventError); stale {
				continue
			}
			s.logger.Error("timeout sweep: evaluate failed",
				zap.String("instance", run.Instance.String()),
				zap.Error(err))
		}
	}
}
