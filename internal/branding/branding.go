// Package branding holds the tool's identity: command name, env var prefix
// and config file name. The values come from the embedded branding.yaml.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var brandingYAML []byte

// Identity is the parsed content of branding.yaml.
type Identity struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	ConfigFile  string `yaml:"config_file"`
}

var fallback = Identity{
	CLIName:     "shadowpkg",
	DisplayName: "ShadowPkg",
	Description: "Extract a workspace member into a standalone shadow package",
	EnvPrefix:   "SHADOWPKG",
	ConfigFile:  ".shadowpkg.yaml",
}

// Get returns the embedded identity. Fields missing from branding.yaml keep
// their fallback values.
var Get = sync.OnceValue(func() Identity {
	id := fallback
	_ = yaml.Unmarshal(brandingYAML, &id)
	return id
})

// CLIName returns the root command name (e.g., "shadowpkg").
func CLIName() string { return Get().CLIName }

// DisplayName returns the human-readable product name (e.g., "ShadowPkg").
func DisplayName() string { return Get().DisplayName }

// Description returns the short product description.
func Description() string { return Get().Description }

// EnvPrefix returns the environment variable prefix (e.g., "SHADOWPKG").
func EnvPrefix() string { return Get().EnvPrefix }

// ConfigFile returns the per-workspace config file name (e.g., ".shadowpkg.yaml").
func ConfigFile() string { return Get().ConfigFile }

// EnvVar qualifies suffix with the env prefix: EnvVar("root") is "SHADOWPKG_ROOT".
func EnvVar(suffix string) string {
	return Get().EnvPrefix + "_" + strings.ToUpper(suffix)
}
