package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/shadowpkg/internal/manifest"
	"github.com/agentx-labs/shadowpkg/internal/platform"
	"github.com/agentx-labs/shadowpkg/internal/shadow"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	includeWorkspaceDeps bool
	strict               bool
	out                  string
	overrides            overrideFlags
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <member>",
		Short: "Print the concrete package.json for a workspace member",
		Long: `Resolve <member>'s manifest and shadow declaration against the root pins and
print the resulting standalone package.json, exactly as install would leave it.
Nothing is installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.includeWorkspaceDeps, "include-workspace-deps", false, "keep direct in-workspace dependencies, pinned from the root")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail if any resolved version is not an exact release")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write to a file instead of stdout")
	opts.overrides.bind(cmd.Flags())

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions, member string) error {
	e, err := root.load(cmd)
	if err != nil {
		return err
	}

	overrides, err := opts.overrides.load(e.fs)
	if err != nil {
		return err
	}

	m, err := shadow.NewBuilder(e.cfg, e.fs).Build(member, shadow.BuildOptions{
		IncludeWorkspaceDeps: opts.includeWorkspaceDeps,
	})
	if err != nil {
		return err
	}
	m = shadow.ApplyOverrides(m, overrides)
	shadow.Finalize(m)

	if opts.strict {
		loose, err := manifest.LoosePins(m)
		if err != nil {
			return err
		}
		if len(loose) > 0 {
			parts := make([]string, len(loose))
			for i, p := range loose {
				parts[i] = p.String()
			}
			return fmt.Errorf("%s has versions that are not exact releases: %s", member, strings.Join(parts, ", "))
		}
	}

	if opts.out != "" {
		if err := e.fs.WriteJSON(opts.out, m); err != nil {
			return err
		}
		e.logger.Info("Wrote concrete manifest", "member", member, "path", opts.out)
		return nil
	}

	data, err := platform.EncodeJSON(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
