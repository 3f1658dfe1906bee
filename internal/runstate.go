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

// CounterNone is the sentinel meaning "no events processed". The first
// successful transition moves the counter to 0.
const CounterNone int64 = -1

// RunState is the immutable value (workflowInstance, state, timestampMillis,
// data, counter) a workflow instance occupies at a point in time. It is a
// pure transducer: the only operation that produces a new RunState is
// Transition, and it never performs I/O or blocks.
type RunState struct {
	Instance        WorkflowInstance
	State           State
	TimestampMillis int64
	Data            StateData
	Counter         int64
}

// Fresh creates a new instance in state NEW with zeroed data and the
// counter at its sentinel.
func Fresh(instance WorkflowInstance, clk Clock) RunState {
	return RunState{
		Instance:        instance,
		State:           StateNew,
		TimestampMillis: nowMillis(clk),
		Data:            ZeroStateData(),
		Counter:         CounterNone,
	}
}

// Create restores a RunState from persistence. It performs no validation
// beyond constructing the value: the persistence layer is trusted to have
// round-tripped a value this package itself produced.
func Create(instance WorkflowInstance, state State, data StateData, timestampMillis int64, counter int64) RunState {
	return RunState{
		Instance:        instance,
		State:           state,
		TimestampMillis: timestampMillis,
		Data:            data,
		Counter:         counter,
	}
}

// Transition applies event to the receiver and returns the successor value.
// It fails with *IllegalTransitionError when the current state does not
// admit the event, including when the current state is terminal.
func (r RunState) Transition(event Event, clk Clock) (RunState, error) {
	if r.State.Terminal() {
		return RunState{}, &IllegalTransitionError{Instance: r.Instance, State: r.State, Event: event}
	}

	nextState, nextData, ok := transitionRelation(r.State, r.Data, event)
	if !ok {
		return RunState{}, &IllegalTransitionError{Instance: r.Instance, State: r.State, Event: event}
	}

	return RunState{
		Instance:        r.Instance,
		State:           nextState,
		TimestampMillis: nowMillis(clk),
		Data:            nextData,
		Counter:         r.Counter + 1,
	}, nil
}
