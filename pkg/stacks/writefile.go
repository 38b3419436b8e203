package stacks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/systemstart/stackpipe/pkg/pipeline"
)

// writeFileAction persists step output to disk, creating parent
// directories as needed. Inputs: path (required), content (required).
// Relative paths resolve against the process working directory. Output:
// path (absolute), bytes.
type writeFileAction struct{}

// NewWriteFileAction creates the "write_file" action.
func NewWriteFileAction() pipeline.Action {
	return writeFileAction{}
}

func (writeFileAction) Name() string { return "write_file" }

func (writeFileAction) Invoke(_ context.Context, inputs map[string]any) (map[string]any, error) {
	path, err := requiredString(inputs, "path")
	if err != nil {
		return nil, err
	}
	content, err := requiredString(inputs, "content")
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating parent directories: %w", err)
	}
	if err := os.WriteFile(absPath, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("writing file: %w", err)
	}

	slog.Info("wrote file", "path", absPath, "bytes", len(content))
	return map[string]any{"path": absPath, "bytes": len(content)}, nil
}
