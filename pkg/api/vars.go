package api

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadVarsFile reads a YAML file of initial variables.
func LoadVarsFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading vars file: %w", err)
	}

	var vars map[string]any
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parsing vars file: %w", err)
	}

	if vars == nil {
		vars = make(map[string]any)
	}

	return vars, nil
}

// MergeVars performs a shallow merge of pipeline-local vars over global
// vars. Local keys override global keys at the top level.
func MergeVars(global, local map[string]any) map[string]any {
	merged := make(map[string]any, len(global)+len(local))
	maps.Copy(merged, global)
	maps.Copy(merged, local)
	return merged
}
