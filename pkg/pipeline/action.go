package pipeline

import (
	"context"
	"fmt"
	"slices"
)

// Action is an external capability a step can invoke. Implementations
// receive fully resolved inputs and return named outputs. The engine
// never inspects an action beyond this interface; retry semantics, if
// any, belong to the action itself.
type Action interface {
	Name() string
	Invoke(ctx context.Context, inputs map[string]any) (map[string]any, error)
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc struct {
	name string
	fn   func(ctx context.Context, inputs map[string]any) (map[string]any, error)
}

// NewActionFunc wraps fn as a named Action.
func NewActionFunc(name string, fn func(ctx context.Context, inputs map[string]any) (map[string]any, error)) *ActionFunc {
	return &ActionFunc{name: name, fn: fn}
}

func (a *ActionFunc) Name() string { return a.name }

func (a *ActionFunc) Invoke(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	return a.fn(ctx, inputs)
}

// Registry maps action names to implementations. Actions are registered
// explicitly; there is no reflective lookup.
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds an action under its name. Registering the same name
// twice is an error.
func (r *Registry) Register(a Action) error {
	name := a.Name()
	if name == "" {
		return fmt.Errorf("action has no name")
	}
	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("action %q already registered", name)
	}
	r.actions[name] = a
	return nil
}

// Lookup returns the action registered under name.
func (r *Registry) Lookup(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Names returns all registered action names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
