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

// Package mocks provides hand-written testify/mock doubles for this
// module's host-side interfaces, in the same style the SDK itself ships
// Client/WorkflowRun mocks for.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/flowforge/runstate/internal"
)

// SnapshotStore is a testify/mock double for internal.SnapshotStore.
type SnapshotStore struct {
	mock.Mock
}

// Load implements internal.SnapshotStore.
func (m *SnapshotStore) Load(instance internal.WorkflowInstance) (internal.RunState, error) {
	args := m.Called(instance)
	run, _ := args.Get(0).(internal.RunState)
	return run, args.Error(1)
}

// Save implements internal.SnapshotStore.
func (m *SnapshotStore) Save(run internal.RunState) error {
	args := m.Called(run)
	return args.Error(0)
}

// OutputHandler is a testify/mock double for internal.OutputHandler.
type OutputHandler struct {
	mock.Mock
}

// TransitionInto implements internal.OutputHandler.
func (m *OutputHandler) TransitionInto(run internal.RunState) error {
	args := m.Called(run)
	return args.Error(0)
}

// InstanceLister is a testify/mock double for internal.InstanceLister.
type InstanceLister struct {
	mock.Mock
}

// ListActive implements internal.InstanceLister.
func (m *InstanceLister) ListActive() ([]internal.RunState, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]internal.RunState)
	return runs, args.Error(1)
}
