package pipeline

import (
	"fmt"
	"maps"
)

// ExecutionContext stores completed step outputs for one pipeline run,
// keyed by step name. Each name is written exactly once, when its step's
// action completes; later steps read it through references. A context is
// owned by a single Runner and lives for one run only.
type ExecutionContext struct {
	outputs map[string]map[string]any
}

// NewExecutionContext creates an empty execution context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{outputs: make(map[string]map[string]any)}
}

// Commit records a step's output. The output is copied so later action
// code cannot mutate what references observe. Committing the same name
// twice is an error.
func (ec *ExecutionContext) Commit(step string, output map[string]any) error {
	if _, exists := ec.outputs[step]; exists {
		return fmt.Errorf("output for step %q already committed", step)
	}
	committed := make(map[string]any, len(output))
	maps.Copy(committed, output)
	ec.outputs[step] = committed
	return nil
}

// Output returns the committed output of the named step.
func (ec *ExecutionContext) Output(step string) (map[string]any, bool) {
	out, ok := ec.outputs[step]
	return out, ok
}

// Outputs returns a copy of all committed outputs, keyed by step name.
func (ec *ExecutionContext) Outputs() map[string]map[string]any {
	all := make(map[string]map[string]any, len(ec.outputs))
	for step, out := range ec.outputs {
		cp := make(map[string]any, len(out))
		maps.Copy(cp, out)
		all[step] = cp
	}
	return all
}

// Len returns the number of committed steps.
func (ec *ExecutionContext) Len() int {
	return len(ec.outputs)
}
