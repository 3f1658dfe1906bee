// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package worker contains functions to manage the lifecycle of a hosted
// run-state machine: the state manager, its output handlers, and the
// background timeout sweeper.
package worker

import (
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/flowforge/runstate/internal"
	"github.com/flowforge/runstate/internal/common/metrics"
)

type (
	// Worker represents a hosted instance of the run-state machine: a
	// state manager plus whatever background drivers (the timeout
	// sweeper) it was configured with.
	Worker interface {
		// Start starts the worker's background drivers in a non-blocking
		// fashion.
		Start() error
		// Stop cleans up any resources opened by Start.
		Stop()
		// Manager exposes the underlying state manager for callers that
		// need to post events directly.
		Manager() *internal.StateManager
	}

	// Options configures a Worker instance.
	Options struct {
		Logger          *zap.Logger
		MetricsScope    tally.Scope
		Tracer          opentracing.Tracer
		OutputHandlers  []internal.OutputHandler
		TimeoutConfig   internal.TimeoutConfig
		WorkflowLookup  internal.WorkflowLookup
		SweepCron       string // e.g. "0 * * * * *" (robfig/cron syntax, seconds field first)
		SweepRatePerSec rate.Limit
	}

	// SnapshotStore is the persistence boundary a Worker is built against.
	SnapshotStore = internal.SnapshotStore
	// InstanceLister supplies the active-instance set a timeout sweep walks.
	InstanceLister = internal.InstanceLister
)

type worker struct {
	manager  *internal.StateManager
	sweeper  *internal.TimeoutSweeper
	hasSweep bool
}

// New builds a Worker over store, wiring a TimeoutHandler and, if
// options.SweepCron is set, a background TimeoutSweeper driven by lister.
func New(store SnapshotStore, lister InstanceLister, options Options) Worker {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Tracer == nil {
		options.Tracer = opentracing.NoopTracer{}
	}

	supervisor := internal.NewTimeoutSupervisor(options.TimeoutConfig, options.WorkflowLookup)

	opts := []internal.StateManagerOption{
		internal.WithLogger(options.Logger),
		internal.WithTracer(options.Tracer),
		internal.WithMetricsRecorder(metrics.NewRecorder(options.MetricsScope)),
	}

	manager := internal.NewStateManager(store, opts...)

	clk := internal.SystemClock()
	manager.RegisterOutputHandler(internal.NewTimeoutHandler(supervisor, manager, clk))
	for _, handler := range options.OutputHandlers {
		manager.RegisterOutputHandler(handler)
	}

	w := &worker{manager: manager}
	if options.SweepCron != "" && lister != nil {
		w.sweeper = internal.NewTimeoutSweeper(supervisor, lister, manager, clk, options.SweepCron, options.SweepRatePerSec, options.Logger)
		w.hasSweep = true
	}
	return w
}

func (w *worker) Start() error {
	if w.hasSweep {
		return w.sweeper.Start()
	}
	return nil
}

func (w *worker) Stop() {
	if w.hasSweep {
		w.sweeper.Stop()
	}
}

func (w *worker) Manager() *internal.StateManager {
	return w.manager
}
