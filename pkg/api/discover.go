package api

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefinitionGlob matches pipeline definition files anywhere under a
// discovery root.
const DefinitionGlob = "**/*.pipeline.{yaml,yml}"

// Discover finds, loads, and validates all pipeline definition files
// under root, sorted by path.
func Discover(root string) ([]*Pipeline, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(absRoot), DefinitionGlob)
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", DefinitionGlob, err)
	}
	slices.Sort(matches)

	pipelines := make([]*Pipeline, 0, len(matches))
	for _, m := range matches {
		p, err := LoadPipeline(filepath.Join(absRoot, m))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", m, err)
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, nil
}
