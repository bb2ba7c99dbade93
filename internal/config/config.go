package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/shadowpkg/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// File names fixed by the package manager.
const (
	ManifestFileName = "package.json"
	LockfileFileName = "package-lock.json"
)

// Default values for every configuration key.
const (
	DefaultPackagesDir     = "packages"
	DefaultRootManifest    = ManifestFileName
	DefaultRootLockfile    = LockfileFileName
	DefaultWorkspacePrefix = "@abc/"
	DefaultWildcard        = "*"
	DefaultInstallCommand  = "npm ci --ignore-scripts --bin-links=false"
	DefaultOmitDevFlag     = "--omit=dev"
	DefaultFormatCommand   = "npx prettier --write"
	DefaultIgnorePath      = "./fake-dir"
)

// Config is the resolved configuration for one workspace.
type Config struct {
	// Root is the absolute workspace root. It is not read from the config file.
	Root string `mapstructure:"-" yaml:"root"`

	PackagesDir     string `mapstructure:"packages_dir" yaml:"packages_dir"`
	RootManifest    string `mapstructure:"root_manifest" yaml:"root_manifest"`
	RootLockfile    string `mapstructure:"root_lockfile" yaml:"root_lockfile"`
	WorkspacePrefix string `mapstructure:"workspace_prefix" yaml:"workspace_prefix"`
	Wildcard        string `mapstructure:"wildcard" yaml:"wildcard"`

	Installer InstallerConfig `mapstructure:"installer" yaml:"installer"`
	Formatter FormatterConfig `mapstructure:"formatter" yaml:"formatter"`
}

// InstallerConfig describes the package installer invocation.
type InstallerConfig struct {
	Command     string `mapstructure:"command" yaml:"command"`
	OmitDevFlag string `mapstructure:"omit_dev_flag" yaml:"omit_dev_flag"`
}

// FormatterConfig describes the manifest formatter invocation.
type FormatterConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Command    string `mapstructure:"command" yaml:"command"`
	IgnorePath string `mapstructure:"ignore_path" yaml:"ignore_path"`
}

// Default returns the built-in configuration rooted at root.
func Default(root string) *Config {
	return &Config{
		Root:            root,
		PackagesDir:     DefaultPackagesDir,
		RootManifest:    DefaultRootManifest,
		RootLockfile:    DefaultRootLockfile,
		WorkspacePrefix: DefaultWorkspacePrefix,
		Wildcard:        DefaultWildcard,
		Installer: InstallerConfig{
			Command:     DefaultInstallCommand,
			OmitDevFlag: DefaultOmitDevFlag,
		},
		Formatter: FormatterConfig{
			Enabled:    true,
			Command:    DefaultFormatCommand,
			IgnorePath: DefaultIgnorePath,
		},
	}
}

// FilePath returns the default config file location for a workspace root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile())
}

// Load resolves the configuration for the workspace at root. When file is
// empty the workspace's own config file is used if present; an explicit file
// must exist.
func Load(root, file string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root %s: %w", root, err)
	}

	v := viper.New()
	setDefaults(v, Default(absRoot))
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = FilePath(absRoot)
		if _, statErr := os.Stat(file); errors.Is(statErr, fs.ErrNotExist) {
			file = ""
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Root = absRoot

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("packages_dir", d.PackagesDir)
	v.SetDefault("root_manifest", d.RootManifest)
	v.SetDefault("root_lockfile", d.RootLockfile)
	v.SetDefault("workspace_prefix", d.WorkspacePrefix)
	v.SetDefault("wildcard", d.Wildcard)
	v.SetDefault("installer.command", d.Installer.Command)
	v.SetDefault("installer.omit_dev_flag", d.Installer.OmitDevFlag)
	v.SetDefault("formatter.enabled", d.Formatter.Enabled)
	v.SetDefault("formatter.command", d.Formatter.Command)
	v.SetDefault("formatter.ignore_path", d.Formatter.IgnorePath)
}

// Validate reports settings that would make every operation fail.
func (c *Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.New("config: workspace root is empty")
	case c.WorkspacePrefix == "":
		return errors.New("config: workspace_prefix must not be empty")
	case c.Wildcard == "":
		return errors.New("config: wildcard must not be empty")
	case strings.TrimSpace(c.Installer.Command) == "":
		return errors.New("config: installer.command must not be empty")
	case c.Formatter.Enabled && strings.TrimSpace(c.Formatter.Command) == "":
		return errors.New("config: formatter.command must not be empty when the formatter is enabled")
	}
	return nil
}

// PackagesPath returns the directory holding workspace members.
func (c *Config) PackagesPath() string { return c.resolve(c.PackagesDir) }

// RootManifestPath returns the path of the root package manifest.
func (c *Config) RootManifestPath() string { return c.resolve(c.RootManifest) }

// RootLockfilePath returns the path of the root lockfile.
func (c *Config) RootLockfilePath() string { return c.resolve(c.RootLockfile) }

// MemberPath returns the directory of workspace member id.
func (c *Config) MemberPath(id string) string {
	return filepath.Join(c.PackagesPath(), id)
}

// MemberManifestPath returns the manifest path of workspace member id.
func (c *Config) MemberManifestPath(id string) string {
	return filepath.Join(c.MemberPath(id), ManifestFileName)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}
