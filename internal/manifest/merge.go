package manifest

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Merge returns the shallow union of base and overrides. Overrides replace
// whole top-level keys; nested objects are not merged. Since base already has
// shadow-resolved entries layered over direct-resolved ones, the effective
// precedence is override > shadow-resolved > direct-resolved.
func Merge(base Manifest, overrides map[string]any) Manifest {
	out := base.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// ParseOverrides decodes a manifest override document. JSON and YAML are
// both accepted; the top level must be an object.
func ParseOverrides(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing manifest overrides: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
