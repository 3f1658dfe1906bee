package internal

import "fmt"

// WorkflowInstance is the opaque identity of a concrete parameterized
// invocation of a workflow definition. It is never mutated once a RunState
// is created.
type WorkflowInstance struct {
	WorkflowID string
	Parameter  string
}

// NewWorkflowInstance builds a WorkflowInstance from its two identity parts.
func NewWorkflowInstance(workflowID, parameter string) WorkflowInstance {
	return WorkflowInstance{WorkflowID: workflowID, Parameter: parameter}
}

func (w WorkflowInstance) String() string {
	return fmt.Sprintf("%s#%s", w.WorkflowID, w.Parameter)
}
