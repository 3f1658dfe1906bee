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

package internal

// State is one of the ten positions a RunState can occupy.
type State int32

const (
	StateNew State = iota
	StateQueued
	StatePrepare
	StateSubmitting
	StateSubmitted
	StateRunning
	StateTerminated
	StateFailed
	StateError
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateQueued:
		return "QUEUED"
	case StatePrepare:
		return "PREPARE"
	case StateSubmitting:
		return "SUBMITTING"
	case StateSubmitted:
		return "SUBMITTED"
	case StateRunning:
		return "RUNNING"
	case StateTerminated:
		return "TERMINATED"
	case StateFailed:
		return "FAILED"
	case StateError:
		return "ERROR"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transition is legal from this state.
func (s State) Terminal() bool {
	return s == StateError || s == StateDone
}

// AllStates lists the ten recognized states in declaration order.
var AllStates = []State{
	StateNew, StateQueued, StatePrepare, StateSubmitting, StateSubmitted,
	StateRunning, StateTerminated, StateFailed, StateError, StateDone,
}
