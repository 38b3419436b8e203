// Package pipeline implements a small orchestration engine that chains
// named steps, each wrapping a call to an external stack action. Steps
// execute strictly in declaration order; later steps reference earlier
// steps' outputs through "$step.field" paths. Declaration order is
// dependency order: references only ever point backward, so no scheduler
// or cycle detection is needed.
package pipeline

import (
	"fmt"
	"slices"
)

// Pipeline is an ordered sequence of steps executed as one workflow.
// Steps are owned exclusively by their pipeline.
type Pipeline struct {
	name        string
	description string
	steps       []*Step
	names       map[string]struct{}
}

// New creates an empty pipeline.
func New(name, description string) *Pipeline {
	return &Pipeline{
		name:        name,
		description: description,
		names:       make(map[string]struct{}),
	}
}

func (p *Pipeline) Name() string        { return p.name }
func (p *Pipeline) Description() string { return p.description }

// Steps returns the steps in execution order.
func (p *Pipeline) Steps() []*Step {
	return slices.Clone(p.steps)
}

// AddStep appends a step. Step names must be unique within a pipeline;
// on a duplicate the step list is left unchanged and ErrDuplicateStep is
// returned. References inside the step's inputs are not validated here —
// pipelines may be built incrementally, so reference targets are checked
// at run time when the context is populated.
func (p *Pipeline) AddStep(step *Step) error {
	if step.name == "" {
		return fmt.Errorf("step has no name")
	}
	if _, exists := p.names[step.name]; exists {
		return fmt.Errorf("step %q: %w", step.name, ErrDuplicateStep)
	}
	p.names[step.name] = struct{}{}
	p.steps = append(p.steps, step)
	return nil
}

func (p *Pipeline) hasStep(name string) bool {
	_, ok := p.names[name]
	return ok
}
