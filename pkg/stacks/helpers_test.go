package stacks

import (
	"testing"

	"github.com/systemstart/stackpipe/pkg/pipeline"
)

// newTestRegistry returns a registry with all builtins installed,
// failing the test on error.
func newTestRegistry(t *testing.T) *pipeline.Registry {
	t.Helper()
	reg := pipeline.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	return reg
}
