package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadPipeline reads a *.pipeline.yaml file, sets Dir/FilePath, and
// validates it. A missing name defaults to the file name stem.
func LoadPipeline(filename string) (*Pipeline, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline file: %w", err)
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing pipeline file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	p.FilePath = absPath
	p.Dir = filepath.Dir(absPath)

	if p.Name == "" {
		p.Name = pipelineNameFromFile(absPath)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating pipeline %s: %w", filename, err)
	}

	return &p, nil
}

// pipelineNameFromFile derives a default name from the file name, e.g.
// "content.pipeline.yaml" becomes "content".
func pipelineNameFromFile(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{".yaml", ".yml", ".pipeline"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}
