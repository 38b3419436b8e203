// Package api defines the on-disk pipeline definition format and its
// loading, validation, and binding to concrete actions.
package api

// Pipeline is the *.pipeline.yaml definition format.
type Pipeline struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Vars        map[string]any `yaml:"vars"`
	Steps       []StepConfig   `yaml:"steps"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StepConfig defines a single step within a pipeline definition. Inputs
// are literals, "$step.field" references, or composites mixing both.
type StepConfig struct {
	Name   string         `yaml:"name"`
	Action string         `yaml:"action"`
	Inputs map[string]any `yaml:"inputs"`
}
