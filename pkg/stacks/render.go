package stacks

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/stackpipe/pkg/pipeline"
)

// renderAction renders a Go text template with sprig functions. The
// template sees the full resolved input mapping as its data, so
// "{{ .topic }}" picks up the "topic" input. Inputs: template
// (required), everything else is template data. Output: text.
type renderAction struct{}

// NewRenderAction creates the "render" action.
func NewRenderAction() pipeline.Action {
	return renderAction{}
}

func (renderAction) Name() string { return "render" }

func (renderAction) Invoke(_ context.Context, inputs map[string]any) (map[string]any, error) {
	text, err := requiredString(inputs, "template")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("render").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, inputs); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return map[string]any{"text": buf.String()}, nil
}
