package stacks

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/systemstart/stackpipe/pkg/pipeline"
)

const defaultAgentMaxTurns = 10

// claudeAction shells out to the claude CLI. In plain mode it runs a
// single prompt; in agent mode it additionally enables tools and a turn
// limit.
type claudeAction struct {
	command string
	agent   bool
}

// NewClaudeAction creates the "claude" action: one prompt, text output.
// Inputs: prompt (required), model (optional).
func NewClaudeAction() pipeline.Action {
	return &claudeAction{command: "claude"}
}

// NewClaudeAgentAction creates the "claude_agent" action. Inputs:
// prompt (required), model, tools (list of allowed tool names),
// max_turns.
func NewClaudeAgentAction() pipeline.Action {
	return &claudeAction{command: "claude", agent: true}
}

func (a *claudeAction) Name() string {
	if a.agent {
		return "claude_agent"
	}
	return "claude"
}

func (a *claudeAction) Invoke(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	args, err := a.buildArgs(inputs)
	if err != nil {
		return nil, err
	}

	if _, err := exec.LookPath(a.command); err != nil {
		return nil, fmt.Errorf("%s binary not found in PATH: %w", a.command, err)
	}

	slog.Debug("invoking claude CLI", "action", a.Name(), "command", a.command)

	cmd := exec.CommandContext(ctx, a.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s failed: %w\nstderr: %s", a.command, err, strings.TrimSpace(stderr.String()))
	}

	return map[string]any{"text": strings.TrimSpace(stdout.String())}, nil
}

func (a *claudeAction) buildArgs(inputs map[string]any) ([]string, error) {
	prompt, err := requiredString(inputs, "prompt")
	if err != nil {
		return nil, err
	}
	model, err := optionalString(inputs, "model")
	if err != nil {
		return nil, err
	}

	args := []string{"-p", prompt, "--output-format", "text"}
	if model != "" {
		args = append(args, "--model", model)
	}

	if !a.agent {
		return args, nil
	}

	maxTurns, err := optionalInt(inputs, "max_turns", defaultAgentMaxTurns)
	if err != nil {
		return nil, err
	}
	tools, err := optionalStrings(inputs, "tools")
	if err != nil {
		return nil, err
	}

	args = append(args, "--dangerously-skip-permissions", "--max-turns", strconv.Itoa(maxTurns))
	for _, tool := range tools {
		args = append(args, "--allowedTools", tool)
	}
	return args, nil
}
