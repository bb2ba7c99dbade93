package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/shadowpkg/internal/manifest"
	"github.com/agentx-labs/shadowpkg/internal/platform"
	"github.com/spf13/pflag"
	"go.yaml.in/yaml/v3"
)

// overrideFlags collects manifest overrides from --merge and --set.
type overrideFlags struct {
	mergeFile string
	set       []string
}

func (o *overrideFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.mergeFile, "merge", "", "JSON or YAML file shallow-merged over the generated package.json")
	fs.StringArrayVar(&o.set, "set", nil, "override a top-level package.json field (key=value, repeatable)")
}

// load returns the combined overrides; --set entries win over --merge.
func (o *overrideFlags) load(fsys platform.FS) (map[string]any, error) {
	out := map[string]any{}

	if o.mergeFile != "" {
		data, err := fsys.ReadFile(o.mergeFile)
		if err != nil {
			return nil, err
		}
		merged, err := manifest.ParseOverrides(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.mergeFile, err)
		}
		for k, v := range merged {
			out[k] = v
		}
	}

	sets, err := parseSetFlags(o.set)
	if err != nil {
		return nil, err
	}
	for k, v := range sets {
		out[k] = v
	}

	return out, nil
}

// parseSetFlags turns key=value pairs into overrides. A value that reads as
// a YAML bool or number and renders back to the same text keeps that type;
// everything else, such as "1.10" or "0755", stays a string.
func parseSetFlags(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", p)
		}
		out[key] = scalar(value)
	}
	return out, nil
}

func scalar(value string) any {
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	switch v.(type) {
	case bool, int, float64:
		if fmt.Sprint(v) == value {
			return v
		}
	}
	return value
}
