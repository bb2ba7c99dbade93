package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/agentx-labs/shadowpkg/internal/branding"
	"github.com/agentx-labs/shadowpkg/internal/config"
	"github.com/agentx-labs/shadowpkg/internal/platform"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	root    string
	cfgFile string
	verbose bool
}

// env is what a command needs to operate on one workspace.
type env struct {
	cfg    *config.Config
	fs     platform.FS
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` extracts one member of a multi-package workspace into a
standalone "shadow package": a directory with a fully pinned package.json,
the workspace lockfile, and installed dependencies. Use it to check that a
member's declared dependencies are enough to install and run it on its own.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "workspace root (default $"+branding.EnvVar("ROOT")+" or the current directory)")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default <root>/"+branding.ConfigFile()+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging and stream subprocess output")

	cmd.AddCommand(
		newInstallCmd(opts),
		newGenerateCmd(opts),
		newListCmd(opts),
		newDoctorCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// load resolves the workspace configuration and builds the logger.
func (o *rootOptions) load(cmd *cobra.Command) (*env, error) {
	root := o.root
	if root == "" {
		root = os.Getenv(branding.EnvVar("ROOT"))
	}
	if root == "" {
		root = "."
	}

	cfg, err := config.Load(root, o.cfgFile)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: branding.CLIName(),
	})
	if o.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("loaded configuration", "root", cfg.Root)

	return &env{cfg: cfg, fs: platform.NewOSFS(), logger: logger}, nil
}

func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	return fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}
