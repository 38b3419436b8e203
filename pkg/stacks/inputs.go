package stacks

import "fmt"

func requiredString(inputs map[string]any, key string) (string, error) {
	value, ok := inputs[key]
	if !ok {
		return "", fmt.Errorf("input %q is required", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("input %q must be a string, got %T", key, value)
	}
	return s, nil
}

func optionalString(inputs map[string]any, key string) (string, error) {
	value, ok := inputs[key]
	if !ok {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("input %q must be a string, got %T", key, value)
	}
	return s, nil
}

func optionalInt(inputs map[string]any, key string, fallback int) (int, error) {
	value, ok := inputs[key]
	if !ok {
		return fallback, nil
	}
	n, ok := value.(int)
	if !ok {
		return 0, fmt.Errorf("input %q must be an integer, got %T", key, value)
	}
	return n, nil
}

func optionalStrings(inputs map[string]any, key string) ([]string, error) {
	value, ok := inputs[key]
	if !ok {
		return nil, nil
	}
	elems, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("input %q must be a list, got %T", key, value)
	}
	result := make([]string, len(elems))
	for i, elem := range elems {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("input %q element %d must be a string, got %T", key, i, elem)
		}
		result[i] = s
	}
	return result, nil
}
