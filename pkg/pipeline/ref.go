package pipeline

import (
	"fmt"
	"strings"
)

// refSentinel marks a string input value as a reference into an earlier
// step's output: "$step.field.subfield". The first path segment names a
// step, the remaining segments index into its output mapping. "$step"
// alone yields the step's whole output.
const refSentinel = "$"

// ref is a reference parsed once at step construction and resolved
// against the execution context on every run.
type ref struct {
	raw      string
	segments []string
}

// parseRef parses s as a reference. The second return value is false
// when s is a literal (does not start with the sentinel).
func parseRef(s string) (*ref, bool) {
	if !strings.HasPrefix(s, refSentinel) {
		return nil, false
	}
	return &ref{
		raw:      s,
		segments: strings.Split(s[len(refSentinel):], "."),
	}, true
}

// resolve looks the reference up in the execution context. It never
// mutates the context.
func (r *ref) resolve(ec *ExecutionContext) (any, error) {
	output, ok := ec.Output(r.segments[0])
	if !ok {
		return nil, fmt.Errorf("%q: step %q has no committed output: %w", r.raw, r.segments[0], ErrUnknownStepRef)
	}

	var current any = output
	for _, segment := range r.segments[1:] {
		fields, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q: cannot descend into %T at %q: %w", r.raw, current, segment, ErrNotIndexable)
		}
		value, ok := fields[segment]
		if !ok {
			return nil, fmt.Errorf("%q: field %q not found: %w", r.raw, segment, ErrMissingField)
		}
		current = value
	}
	return current, nil
}

// compileValue walks an input template value, replacing every reference
// string with its parsed form. Composites are copied so the compiled
// template does not alias caller-owned maps or slices.
func compileValue(value any) any {
	switch v := value.(type) {
	case string:
		if r, ok := parseRef(v); ok {
			return r
		}
		return v
	case map[string]any:
		compiled := make(map[string]any, len(v))
		for key, elem := range v {
			compiled[key] = compileValue(elem)
		}
		return compiled
	case []any:
		compiled := make([]any, len(v))
		for i, elem := range v {
			compiled[i] = compileValue(elem)
		}
		return compiled
	default:
		return value
	}
}

// resolveValue substitutes every reference in a compiled template value
// with the concrete value from the execution context. Composites keep
// their shape; literals pass through unchanged.
func resolveValue(value any, ec *ExecutionContext) (any, error) {
	switch v := value.(type) {
	case *ref:
		return v.resolve(ec)
	case map[string]any:
		resolved := make(map[string]any, len(v))
		for key, elem := range v {
			r, err := resolveValue(elem, ec)
			if err != nil {
				return nil, err
			}
			resolved[key] = r
		}
		return resolved, nil
	case []any:
		resolved := make([]any, len(v))
		for i, elem := range v {
			r, err := resolveValue(elem, ec)
			if err != nil {
				return nil, err
			}
			resolved[i] = r
		}
		return resolved, nil
	default:
		return value, nil
	}
}
