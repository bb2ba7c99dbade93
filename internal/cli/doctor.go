package cli

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/agentx-labs/shadowpkg/internal/manifest"
	"github.com/agentx-labs/shadowpkg/internal/runtime"
	"github.com/agentx-labs/shadowpkg/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the workspace and tools a shadow install needs",
		Long: `Verify that the root manifest and lockfile are readable, that every member
manifest is valid, that root pins are exact versions, and that the installer
and formatter executables are on PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.load(cmd)
			if err != nil {
				return err
			}

			r := &doctorReport{w: cmd.OutOrStdout()}
			checkWorkspace(r, e)
			checkTools(r, e)

			if r.failed > 0 {
				return fmt.Errorf("doctor found %d problem(s)", r.failed)
			}
			return nil
		},
	}
}

// doctorReport prints check results and counts failures.
type doctorReport struct {
	w      io.Writer
	failed int
}

func (r *doctorReport) ok(format string, args ...any) {
	fmt.Fprintf(r.w, "  %s %s\n", okStyle.Render("[ OK ]"), fmt.Sprintf(format, args...))
}

func (r *doctorReport) warn(format string, args ...any) {
	fmt.Fprintf(r.w, "  %s %s\n", warnStyle.Render("[WARN]"), fmt.Sprintf(format, args...))
}

func (r *doctorReport) fail(format string, args ...any) {
	r.failed++
	fmt.Fprintf(r.w, "  %s %s\n", failStyle.Render("[FAIL]"), fmt.Sprintf(format, args...))
}

func checkWorkspace(r *doctorReport, e *env) {
	fmt.Fprintln(r.w, "Workspace check:")

	root, err := manifest.ParseRoot(e.fs, e.cfg.RootManifestPath())
	if err != nil {
		r.fail("root manifest: %v", err)
	} else {
		r.ok("root manifest %s (%d pins)", root.Path, len(root.Dependencies))
		for _, p := range manifest.LooseRootPins(root) {
			r.warn("root pin %s@%s is not an exact version", p.Name, p.Version)
		}
	}

	if ok, err := e.fs.Exists(e.cfg.RootLockfilePath()); err != nil || !ok {
		r.fail("root lockfile %s is missing", e.cfg.RootLockfilePath())
	} else {
		r.ok("root lockfile %s", e.cfg.RootLockfilePath())
	}

	reg, err := workspace.List(e.fs, e.cfg.PackagesPath())
	if err != nil {
		r.fail("%v", err)
		return
	}
	r.ok("%d workspace members under %s", reg.Len(), reg.Dir())

	for _, id := range reg.Members() {
		if _, err := manifest.ParseMember(e.fs, id, e.cfg.MemberManifestPath(id)); err != nil {
			r.fail("member %s: %v", id, err)
			continue
		}
		r.ok("member %s", id)
	}
}

func checkTools(r *doctorReport, e *env) {
	fmt.Fprintln(r.w, "Tools check:")
	checkExecutable(r, "installer", e.cfg.Installer.Command)
	if e.cfg.Formatter.Enabled {
		checkExecutable(r, "formatter", e.cfg.Formatter.Command)
	} else {
		r.ok("formatter disabled")
	}
}

func checkExecutable(r *doctorReport, label, line string) {
	argv, err := runtime.Split(line)
	if err != nil {
		r.fail("%s: %v", label, err)
		return
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		r.fail("%s %q not found on PATH", label, argv[0])
		return
	}
	r.ok("%s %s", label, path)
}
