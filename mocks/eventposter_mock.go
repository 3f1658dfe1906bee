// Code style mirrors mockgen output for golang/mock; hand-maintained here
// since this module has no generated-code step.

package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/flowforge/runstate/internal"
)

// EventPoster is a gomock double for internal.EventPoster.
type EventPoster struct {
	ctrl     *gomock.Controller
	recorder *EventPosterMockRecorder
}

// EventPosterMockRecorder is the recorder for EventPoster.
type EventPosterMockRecorder struct {
	mock *EventPoster
}

// NewEventPoster creates a new gomock EventPoster double.
func NewEventPoster(ctrl *gomock.Controller) *EventPoster {
	m := &EventPoster{ctrl: ctrl}
	m.recorder = &EventPosterMockRecorder{mock: m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *EventPoster) EXPECT() *EventPosterMockRecorder {
	return m.recorder
}

// ReceiveIgnoreClosed mocks base method.
func (m *EventPoster) ReceiveIgnoreClosed(instance internal.WorkflowInstance, event internal.Event, expectedCounter int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReceiveIgnoreClosed", instance, event, expectedCounter)
	ret0, _ := ret[0].(error)
	return ret0
}

// ReceiveIgnoreClosed indicates an expected call of ReceiveIgnoreClosed.
func (mr *EventPosterMockRecorder) ReceiveIgnoreClosed(instance, event, expectedCounter interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReceiveIgnoreClosed",
		reflect.TypeOf((*EventPoster)(nil).ReceiveIgnoreClosed), instance, event, expectedCounter)
}
