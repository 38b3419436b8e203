// Package stacks provides the built-in stack actions the orchestrator
// chains: thin wrappers around external capabilities (the claude CLI,
// template rendering, file output). Each wrapper conforms to the
// pipeline.Action contract and is registered explicitly.
package stacks

import "github.com/systemstart/stackpipe/pkg/pipeline"

// Register installs all built-in stack actions into the registry.
func Register(reg *pipeline.Registry) error {
	builtins := []pipeline.Action{
		NewClaudeAction(),
		NewClaudeAgentAction(),
		NewRenderAction(),
		NewWriteFileAction(),
	}
	for _, action := range builtins {
		if err := reg.Register(action); err != nil {
			return err
		}
	}
	return nil
}
