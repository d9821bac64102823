// Package jsonutil holds small JSON-shaped value helpers shared by the
// validation pipeline.
package jsonutil

import (
	"fmt"

	"github.com/goccy/go-json"
)

// DeepCopyMap returns an isolated copy of a JSON-shaped object by
// round-tripping it through the codec, the same way an object snapshot
// is taken for error reporting.
func DeepCopyMap(object map[string]any) (map[string]any, error) {
	if object == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(object)
	if err != nil {
		return nil, fmt.Errorf("jsonutil: object is not JSON-shaped: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("jsonutil: copying object: %w", err)
	}
	return out, nil
}

// DeepCopyValue copies any JSON-shaped value.
func DeepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, el := range v {
			out[k] = DeepCopyValue(el)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = DeepCopyValue(el)
		}
		return out
	default:
		return value
	}
}
