package cli

import (
	"fmt"

	"github.com/agentx-labs/shadowpkg/internal/runtime"
	"github.com/agentx-labs/shadowpkg/internal/shadow"
	"github.com/spf13/cobra"
)

type installOptions struct {
	onlyProd             bool
	includeWorkspaceDeps bool
	noFormat             bool
	overrides            overrideFlags
}

func newInstallCmd(root *rootOptions) *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:   "install <member> <target-dir>",
		Short: "Install a workspace member as a standalone shadow package",
		Long: `Write a fully pinned package.json for <member> into <target-dir>, copy the
workspace lockfile next to it, and run the package installer there with
lifecycle scripts and bin links disabled. <target-dir> must be empty or absent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, root, opts, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&opts.onlyProd, "only-prod", false, "exclude devDependencies from the install")
	cmd.Flags().BoolVar(&opts.includeWorkspaceDeps, "include-workspace-deps", false, "keep direct in-workspace dependencies, pinned from the root")
	cmd.Flags().BoolVar(&opts.noFormat, "no-format", false, "skip formatting the final package.json")
	opts.overrides.bind(cmd.Flags())

	return cmd
}

func runInstall(cmd *cobra.Command, root *rootOptions, opts *installOptions, member, target string) error {
	e, err := root.load(cmd)
	if err != nil {
		return err
	}

	overrides, err := opts.overrides.load(e.fs)
	if err != nil {
		return err
	}

	runner := &runtime.ExecRunner{}
	if root.verbose {
		runner.Stdout = cmd.ErrOrStderr()
		runner.Stderr = cmd.ErrOrStderr()
	}

	inst := shadow.NewInstaller(e.cfg, e.fs, runner, e.logger)
	res, err := inst.Install(cmd.Context(), shadow.InstallConfig{
		Member:               member,
		TargetDir:            target,
		OnlyProdDeps:         opts.onlyProd,
		IncludeWorkspaceDeps: opts.includeWorkspaceDeps,
		ManifestOverrides:    overrides,
		SkipFormat:           opts.noFormat,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Installed %s as a shadow package\n", okStyle.Render("✓"), member)
	fmt.Fprintf(out, "  %s %s\n", dimStyle.Render("manifest:"), res.ManifestPath)
	fmt.Fprintf(out, "  %s %s\n", dimStyle.Render("lockfile:"), res.LockfilePath)
	return nil
}
