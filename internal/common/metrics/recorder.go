// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
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

// Package metrics wraps tally.Scope with an hdrhistogram-backed dwell-time
// recorder the tally interface alone doesn't give us cheaply.
package metrics

import (
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/uber-go/tally"
)

const (
	transitionsCounter       = "runstate.transitions"
	illegalTransitionCounter = "runstate.illegal_transitions"
	dwellTimer               = "runstate.dwell_ms"
)

// Recorder records the ambient observability signals a StateManager emits
// on every Apply call: how many transitions happened, how many were
// rejected as illegal, and how long instances dwelt in the state they just
// left. It never influences the transition outcome itself.
type Recorder struct {
	scope tally.Scope

	mu   sync.Mutex
	dwell *hdrhistogram.Histogram
}

// NewRecorder wraps scope. A nil scope is replaced with tally.NoopScope so
// callers never need a nil check.
func NewRecorder(scope tally.Scope) *Recorder {
	if scope == nil {
		scope = tally.NoopScope
	}
	return &Recorder{
		scope: scope,
		// 1ms to 24h, two significant figures is plenty for dwell-time alerting.
		dwell: hdrhistogram.New(1, int64(24*time.Hour/time.Millisecond), 2),
	}
}

// RecordTransition counts one successful transition from `from` to `to` and
// folds dwellMillis (how long the instance sat in `from`) into the
// histogram.
func (r *Recorder) RecordTransition(from, to stringer, dwellMillis int64) {
	r.scope.Tagged(map[string]string{
		"from": from.String(),
		"to":   to.String(),
	}).Counter(transitionsCounter).Inc(1)

	if dwellMillis < 0 {
		dwellMillis = 0
	}
	r.mu.Lock()
	_ = r.dwell.RecordValue(dwellMillis)
	r.mu.Unlock()
	r.scope.Timer(dwellTimer).Record(time.Duration(dwellMillis) * time.Millisecond)
}

// IncIllegalTransition counts a rejected transition attempt.
func (r *Recorder) IncIllegalTransition() {
	r.scope.Counter(illegalTransitionCounter).Inc(1)
}

// DwellPercentile returns the recorded dwell-time percentile in
// milliseconds (e.g. 99 for p99). Used by diagnostics/tests; never consulted
// by the core transducer itself.
func (r *Recorder) DwellPercentile(p float64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dwell.ValueAtQuantile(p)
}

// stringer avoids importing internal (which would create an import cycle,
// since internal imports this package) while still accepting internal.State
// values, which satisfy fmt.Stringer.
type stringer interface {
	String() string
}
