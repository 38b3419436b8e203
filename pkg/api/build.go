package api

import (
	"fmt"

	"github.com/systemstart/stackpipe/pkg/pipeline"
)

// Build binds a validated definition to concrete actions from the
// registry, producing an executable pipeline.
func Build(def *Pipeline, reg *pipeline.Registry) (*pipeline.Pipeline, error) {
	p := pipeline.New(def.Name, def.Description)

	for _, sc := range def.Steps {
		action, ok := reg.Lookup(sc.Action)
		if !ok {
			return nil, fmt.Errorf("step %q: unknown action %q (registered: %v)", sc.Name, sc.Action, reg.Names())
		}
		if err := p.AddStep(pipeline.NewStep(sc.Name, action, sc.Inputs)); err != nil {
			return nil, fmt.Errorf("adding step: %w", err)
		}
	}

	return p, nil
}
