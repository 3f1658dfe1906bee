package internal

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTTL is used for any state missing from a TimeoutConfig's table.
const DefaultTTL = 24 * time.Hour

// Workflow carries the per-workflow configuration the timeout supervisor
// needs: currently just the RUNNING override. It is a minimal stand-in for
// the real workflow-definition lookup, which is out of this core's scope.
type Workflow struct {
	ID                 string        `yaml:"id"`
	RunningTimeout     time.Duration `yaml:"runningTimeout"`
}

// WorkflowLookup resolves a workflow id to its configuration. It returns
// ok=false when the workflow is unknown, in which case the supervisor falls
// back to the state-keyed default.
type WorkflowLookup func(workflowID string) (Workflow, bool)

// TimeoutConfig maps each state to its default dwell-time TTL. It is loaded
// from YAML the same way the rest of the pack's ambient config stack loads
// its settings.
type TimeoutConfig struct {
	Defaults map[State]time.Duration
}

type timeoutConfigDocument struct {
	Defaults map[string]time.Duration `yaml:"defaults"`
}

var stateNames = map[string]State{
	"NEW": StateNew, "QUEUED": StateQueued, "PREPARE": StatePrepare,
	"SUBMITTING": StateSubmitting, "SUBMITTED": StateSubmitted, "RUNNING": StateRunning,
	"TERMINATED": StateTerminated, "FAILED": StateFailed, "ERROR": StateError, "DONE": StateDone,
}

// LoadTimeoutConfig parses a YAML document of the shape:
//
//	defaults:
//	  QUEUED: 1h
//	  PREPARE: 5m
//	  RUNNING: 12h
func LoadTimeoutConfig(raw []byte) (TimeoutConfig, error) {
	var doc timeoutConfigDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return TimeoutConfig{}, fmt.Errorf("parse timeout config: %w", err)
	}

	defaults := make(map[State]time.Duration, len(doc.Defaults))
	for name, ttl := range doc.Defaults {
		state, ok := stateNames[name]
		if !ok {
			return TimeoutConfig{}, fmt.Errorf("unknown state %q in timeout config", name)
		}
		defaults[state] = ttl
	}
	return TimeoutConfig{Defaults: defaults}, nil
}

// TTLOf computes the TTL for state, honoring the workflow's RUNNING override
// when applicable.
func (c TimeoutConfig) TTLOf(state State, wf Workflow, known bool) time.Duration {
	if state == StateRunning && known && wf.RunningTimeout > 0 {
		return wf.RunningTimeout
	}
	if ttl, ok := c.Defaults[state]; ok {
		return ttl
	}
	return DefaultTTL
}
