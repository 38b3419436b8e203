package stacks

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestClaudeBuildArgs(t *testing.T) {
	a := &claudeAction{command: "claude"}

	args, err := a.buildArgs(map[string]any{"prompt": "hello", "model": "sonnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"-p", "hello", "--output-format", "text", "--model", "sonnet"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestClaudeBuildArgs_AgentMode(t *testing.T) {
	a := &claudeAction{command: "claude", agent: true}

	args, err := a.buildArgs(map[string]any{
		"prompt":    "fix the bug",
		"tools":     []any{"Bash", "Edit"},
		"max_turns": 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"-p", "fix the bug", "--output-format", "text",
		"--dangerously-skip-permissions", "--max-turns", "5",
		"--allowedTools", "Bash", "--allowedTools", "Edit",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestClaudeBuildArgs_MissingPrompt(t *testing.T) {
	a := &claudeAction{command: "claude"}

	_, err := a.buildArgs(map[string]any{"model": "haiku"})
	if err == nil || !strings.Contains(err.Error(), `input "prompt" is required`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClaudeBuildArgs_BadTypes(t *testing.T) {
	a := &claudeAction{command: "claude", agent: true}

	cases := []map[string]any{
		{"prompt": 42},
		{"prompt": "p", "model": 1},
		{"prompt": "p", "max_turns": "many"},
		{"prompt": "p", "tools": "Bash"},
		{"prompt": "p", "tools": []any{"Bash", 7}},
	}
	for _, inputs := range cases {
		if _, err := a.buildArgs(inputs); err == nil {
			t.Errorf("expected error for inputs %v", inputs)
		}
	}
}

func TestClaudeInvoke_CommandOutput(t *testing.T) {
	// echo stands in for the claude binary: it prints its arguments.
	a := &claudeAction{command: "echo"}

	out, err := a.Invoke(context.Background(), map[string]any{"prompt": "hello world"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, ok := out["text"].(string)
	if !ok || !strings.Contains(text, "hello world") {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestClaudeInvoke_CommandFailure(t *testing.T) {
	a := &claudeAction{command: "false"}

	_, err := a.Invoke(context.Background(), map[string]any{"prompt": "p"})
	if err == nil {
		t.Fatal("expected error for failing command")
	}
}

func TestClaudeInvoke_MissingBinary(t *testing.T) {
	a := &claudeAction{command: "definitely-not-a-real-binary"}

	_, err := a.Invoke(context.Background(), map[string]any{"prompt": "p"})
	if err == nil || !strings.Contains(err.Error(), "not found in PATH") {
		t.Fatalf("unexpected error: %v", err)
	}
}
