package boxfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadValues reads values files and merges them in order. Later files
// override earlier ones.
func LoadValues(paths ...string) (map[string]any, error) {
	values := make(map[string]any)
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values file: %w", err)
		}

		var overlay map[string]any
		if err := yaml.Unmarshal(content, &overlay); err != nil {
			return nil, fmt.Errorf("parse values file %s: %w", path, err)
		}
		values = MergeValues(values, overlay)
	}
	return values, nil
}

// MergeValues recursively merges overlay into base and returns a new map.
// Nested maps merge key by key; any other overlay value replaces the base
// value. Neither input is modified.
func MergeValues(base, overlay map[string]any) map[string]any {
	result := copyMap(base)

	for key, overlayValue := range overlay {
		baseMap, baseIsMap := result[key].(map[string]any)
		overlayMap, overlayIsMap := overlayValue.(map[string]any)
		if baseIsMap && overlayIsMap {
			result[key] = MergeValues(baseMap, overlayMap)
			continue
		}
		result[key] = deepCopy(overlayValue)
	}

	return result
}

func copyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = deepCopy(v)
	}
	return result
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = deepCopy(item)
		}
		return result
	default:
		return v
	}
}
