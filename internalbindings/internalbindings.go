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

// Package internalbindings contains low level APIs to be used by non-Go
// hosts embedding this state machine (e.g. a scheduler written in another
// language that drives RunState.Transition over cgo or an RPC shim).
//
// ATTENTION!
// The APIs found in this package should never be referenced from ordinary
// application code. There is absolutely no guarantee of compatibility
// between releases.
package internalbindings

import "github.com/flowforge/runstate/internal"

type (
	// WorkflowInstance identifies a concrete parameterized workflow run.
	WorkflowInstance = internal.WorkflowInstance
	// RunState is the per-instance state machine value.
	RunState = internal.RunState
	// State enumerates the machine's states.
	State = internal.State
	// StateData is the accumulated per-instance bookkeeping.
	StateData = internal.StateData
	// Event is the tagged-variant event alphabet the machine accepts.
	Event = internal.Event
	// Trigger identifies what caused a run.
	Trigger = internal.Trigger
	// ExecutionDescription records what was submitted to the executor.
	ExecutionDescription = internal.ExecutionDescription
	// Message is one entry of StateData.Messages.
	Message = internal.Message
	// MessageLevel tags a Message's severity.
	MessageLevel = internal.MessageLevel
	// IllegalTransitionError is raised when the current state does not
	// admit the attempted event.
	IllegalTransitionError = internal.IllegalTransitionError
	// StaleEventError is raised by ReceiveIgnoreClosed when the caller's
	// expected counter no longer matches the current one.
	StaleEventError = internal.StaleEventError
	// EventPoster is the boundary used to post events back into a state
	// manager under optimistic concurrency.
	EventPoster = internal.EventPoster
	// Clock is the injected time source every transition reads through.
	Clock = internal.Clock
)

var (
	// Fresh creates a new instance in its initial state.
	Fresh = internal.Fresh
	// Create restores a RunState from persistence.
	Create = internal.Create
	// NewWorkflowInstance builds a WorkflowInstance from its identity parts.
	NewWorkflowInstance = internal.NewWorkflowInstance
	// SystemClock is the production Clock.
	SystemClock = internal.SystemClock
)
