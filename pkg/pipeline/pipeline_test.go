package pipeline

import (
	"context"
	"errors"
	"testing"
)

// staticAction returns a fixed output on every invocation.
func staticAction(name string, output map[string]any) Action {
	return NewActionFunc(name, func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return output, nil
	})
}

func TestAddStep_Order(t *testing.T) {
	p := New("content", "test pipeline")
	for _, name := range []string{"research", "write", "save"} {
		if err := p.AddStep(NewStep(name, staticAction("noop", nil), nil)); err != nil {
			t.Fatalf("adding %q: %v", name, err)
		}
	}

	steps := p.Steps()
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	for i, want := range []string{"research", "write", "save"} {
		if steps[i].Name() != want {
			t.Errorf("step %d: expected %q, got %q", i, want, steps[i].Name())
		}
	}
}

func TestAddStep_DuplicateName(t *testing.T) {
	p := New("content", "")
	if err := p.AddStep(NewStep("x", staticAction("noop", nil), nil)); err != nil {
		t.Fatal(err)
	}

	err := p.AddStep(NewStep("x", staticAction("other", nil), nil))
	if !errors.Is(err, ErrDuplicateStep) {
		t.Fatalf("expected ErrDuplicateStep, got %v", err)
	}
	if len(p.Steps()) != 1 {
		t.Errorf("step list changed on rejected add: %d steps", len(p.Steps()))
	}
}

func TestAddStep_EmptyName(t *testing.T) {
	p := New("content", "")
	if err := p.AddStep(NewStep("", staticAction("noop", nil), nil)); err == nil {
		t.Fatal("expected error for empty step name")
	}
}

func TestNewStep_InputsNotAliased(t *testing.T) {
	inputs := map[string]any{
		"topic":  "go",
		"nested": map[string]any{"key": "value"},
	}
	step := NewStep("s", staticAction("noop", nil), inputs)

	// Mutating the caller's maps after construction must not affect
	// what the step resolves.
	inputs["topic"] = "changed"
	inputs["nested"].(map[string]any)["key"] = "changed"

	resolved, err := step.resolveInputs(NewExecutionContext())
	if err != nil {
		t.Fatal(err)
	}
	if resolved["topic"] != "go" {
		t.Errorf("topic: expected %q, got %v", "go", resolved["topic"])
	}
	if resolved["nested"].(map[string]any)["key"] != "value" {
		t.Errorf("nested.key: expected %q, got %v", "value", resolved["nested"].(map[string]any)["key"])
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(staticAction("claude", nil)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(staticAction("render", nil)); err != nil {
		t.Fatal(err)
	}

	if err := reg.Register(staticAction("claude", nil)); err == nil {
		t.Fatal("expected error for duplicate registration")
	}

	if _, ok := reg.Lookup("claude"); !ok {
		t.Error("claude not found")
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Error("missing action found")
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "claude" || names[1] != "render" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestExecutionContext_WriteOnce(t *testing.T) {
	ec := NewExecutionContext()
	if err := ec.Commit("a", map[string]any{"x": 1}); err != nil {
		t.Fatal(err)
	}
	if err := ec.Commit("a", map[string]any{"x": 2}); err == nil {
		t.Fatal("expected error on second commit for same step")
	}

	out, ok := ec.Output("a")
	if !ok || out["x"] != 1 {
		t.Errorf("first commit not preserved: %v", out)
	}
}
