package api

import (
	"fmt"

	"github.com/systemstart/stackpipe/pkg/pipeline"
)

// Validate checks the pipeline definition for errors. Reference targets
// inside step inputs are deliberately not checked here: they are only
// meaningful against a populated execution context, so unresolvable
// references surface at run time.
func (p *Pipeline) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pipeline name is required")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("pipeline has no steps")
	}

	names := make(map[string]int)
	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if step.Action == "" {
			return fmt.Errorf("step %q: action is required", step.Name)
		}
		if step.Name == pipeline.VarsKey && len(p.Vars) > 0 {
			return fmt.Errorf("step %q: name is reserved when vars are set", step.Name)
		}
	}

	return nil
}
