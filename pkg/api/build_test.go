package api

import (
	"context"
	"strings"
	"testing"

	"github.com/systemstart/stackpipe/pkg/pipeline"
)

func testRegistry(t *testing.T, names ...string) *pipeline.Registry {
	t.Helper()
	reg := pipeline.NewRegistry()
	for _, name := range names {
		action := pipeline.NewActionFunc(name, func(_ context.Context, inputs map[string]any) (map[string]any, error) {
			return map[string]any{"echo": inputs}, nil
		})
		if err := reg.Register(action); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

func TestBuild(t *testing.T) {
	def := validPipeline()
	reg := testRegistry(t, "claude")

	p, err := Build(def, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "content" {
		t.Errorf("name = %q, want %q", p.Name(), "content")
	}

	steps := p.Steps()
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Name() != "research" || steps[1].Name() != "write" {
		t.Errorf("unexpected step order: %q, %q", steps[0].Name(), steps[1].Name())
	}
}

func TestBuild_UnknownAction(t *testing.T) {
	def := validPipeline()
	def.Steps[1].Action = "teleport"
	reg := testRegistry(t, "claude")

	_, err := Build(def, reg)
	if err == nil || !strings.Contains(err.Error(), `unknown action "teleport"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuild_RunsEndToEnd(t *testing.T) {
	def := validPipeline()
	reg := testRegistry(t, "claude")

	p, err := Build(def, reg)
	if err != nil {
		t.Fatal(err)
	}

	result, err := pipeline.NewRunner(p).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Outputs) != 2 {
		t.Errorf("expected 2 outputs, got %d", len(result.Outputs))
	}
}
