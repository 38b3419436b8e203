package pipeline

import "fmt"

// Step binds an action to a named slot in a pipeline together with an
// input template. Template values are literals, references (see ref.go),
// or composites mixing both. References are parsed once here; a step is
// immutable after construction.
type Step struct {
	name   string
	action Action
	inputs map[string]any
}

// NewStep creates a step. The input template is compiled (references
// parsed, composites copied) so later mutation of the caller's maps has
// no effect on the step.
func NewStep(name string, action Action, inputs map[string]any) *Step {
	compiled := make(map[string]any, len(inputs))
	for key, value := range inputs {
		compiled[key] = compileValue(value)
	}
	return &Step{name: name, action: action, inputs: compiled}
}

// Name returns the step name, which keys its output in the execution
// context and appears as the first segment of references to it.
func (s *Step) Name() string { return s.name }

// ActionName returns the name of the bound action.
func (s *Step) ActionName() string { return s.action.Name() }

// resolveInputs produces the concrete input mapping for the action by
// resolving every template entry against the execution context.
func (s *Step) resolveInputs(ec *ExecutionContext) (map[string]any, error) {
	resolved := make(map[string]any, len(s.inputs))
	for key, value := range s.inputs {
		r, err := resolveValue(value, ec)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", key, err)
		}
		resolved[key] = r
	}
	return resolved, nil
}
