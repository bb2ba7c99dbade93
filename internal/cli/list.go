package cli

import (
	"fmt"

	"github.com/agentx-labs/shadowpkg/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var showPaths bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.load(cmd)
			if err != nil {
				return err
			}

			reg, err := workspace.List(e.fs, e.cfg.PackagesPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if reg.Len() == 0 {
				fmt.Fprintf(out, "No workspace members under %s\n", reg.Dir())
				return nil
			}
			for _, id := range reg.Members() {
				if showPaths {
					fmt.Fprintf(out, "%s\t%s\n", id, e.cfg.MemberPath(id))
					continue
				}
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPaths, "paths", false, "print each member's directory")
	return cmd
}
