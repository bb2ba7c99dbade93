package shadow

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/agentx-labs/shadowpkg/internal/config"
	"github.com/agentx-labs/shadowpkg/internal/manifest"
	"github.com/agentx-labs/shadowpkg/internal/platform"
	"github.com/agentx-labs/shadowpkg/internal/runtime"
	"github.com/charmbracelet/log"
)

// InstallConfig describes one shadow package installation.
type InstallConfig struct {
	// Member is the workspace member to extract.
	Member string
	// TargetDir must be empty or absent.
	TargetDir string
	// OnlyProdDeps passes the dev-dependency exclusion flag to the installer.
	OnlyProdDeps bool
	// IncludeWorkspaceDeps keeps direct in-workspace dependencies.
	IncludeWorkspaceDeps bool
	// ManifestOverrides are shallow-merged over the concrete manifest.
	ManifestOverrides map[string]any
	// SkipFormat skips the formatter stage.
	SkipFormat bool
}

// Result describes a completed installation.
type Result struct {
	Manifest     manifest.Manifest
	ManifestPath string
	LockfilePath string
}

// Installer materializes concrete manifests into installed shadow packages.
type Installer struct {
	cfg     *config.Config
	fs      platform.FS
	runner  runtime.Runner
	builder *Builder
	logger  *log.Logger
}

// NewInstaller returns an Installer. A nil logger discards log output.
func NewInstaller(cfg *config.Config, fsys platform.FS, runner runtime.Runner, logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Installer{
		cfg:     cfg,
		fs:      fsys,
		runner:  runner,
		builder: NewBuilder(cfg, fsys),
		logger:  logger,
	}
}

// installState is threaded through the install stages.
type installState struct {
	ic           InstallConfig
	dir          string
	manifest     manifest.Manifest
	manifestPath string
	lockfilePath string
}

type stage struct {
	name string
	run  func(ctx context.Context, st *installState) error
}

func (i *Installer) stages() []stage {
	return []stage{
		{"check-empty", i.checkEmpty},
		{"ensure-dir", i.ensureDir},
		{"build-manifest", i.buildManifest},
		{"write-manifest", i.writeManifest},
		{"copy-lockfile", i.copyLockfile},
		{"install", i.install},
		{"finalize-manifest", i.finalizeManifest},
		{"format", i.format},
	}
}

// Install runs every stage in order and stops at the first failure, which
// is returned unchanged. Partial on-disk state is left in place.
func (i *Installer) Install(ctx context.Context, ic InstallConfig) (*Result, error) {
	dir, err := filepath.Abs(ic.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory %s: %w", ic.TargetDir, err)
	}

	st := &installState{
		ic:           ic,
		dir:          dir,
		manifestPath: filepath.Join(dir, config.ManifestFileName),
		lockfilePath: filepath.Join(dir, config.LockfileFileName),
	}

	for _, s := range i.stages() {
		i.logger.Debug("running stage", "stage", s.name, "member", ic.Member, "dir", dir)
		if err := s.run(ctx, st); err != nil {
			return nil, err
		}
	}

	i.logger.Info("Shadow package installed", "member", ic.Member, "dir", dir)

	return &Result{
		Manifest:     st.manifest,
		ManifestPath: st.manifestPath,
		LockfilePath: st.lockfilePath,
	}, nil
}

func (i *Installer) checkEmpty(_ context.Context, st *installState) error {
	empty, err := i.fs.IsDirEmpty(st.dir)
	if err != nil {
		return err
	}
	if !empty {
		return &NotEmptyError{Dir: st.dir}
	}
	return nil
}

func (i *Installer) ensureDir(_ context.Context, st *installState) error {
	return i.fs.EnsureDir(st.dir)
}

func (i *Installer) buildManifest(_ context.Context, st *installState) error {
	m, err := i.builder.Build(st.ic.Member, BuildOptions{IncludeWorkspaceDeps: st.ic.IncludeWorkspaceDeps})
	if err != nil {
		return err
	}
	st.manifest = ApplyOverrides(m, st.ic.ManifestOverrides)
	return nil
}

func (i *Installer) writeManifest(_ context.Context, st *installState) error {
	return i.fs.WriteJSON(st.manifestPath, st.manifest)
}

func (i *Installer) copyLockfile(_ context.Context, st *installState) error {
	return i.fs.CopyFile(i.cfg.RootLockfilePath(), st.lockfilePath)
}

func (i *Installer) install(ctx context.Context, st *installState) error {
	cmd, err := runtime.InstallCommand(i.cfg.Installer.Command, i.cfg.Installer.OmitDevFlag, st.dir, st.ic.OnlyProdDeps)
	if err != nil {
		return err
	}
	i.logger.Debug("running installer", "cmd", cmd.String())
	return i.runner.Run(ctx, cmd)
}

// finalizeManifest drops the no-hoist marker, which only steered the
// installer, and persists the manifest again.
func (i *Installer) finalizeManifest(_ context.Context, st *installState) error {
	Finalize(st.manifest)
	return i.fs.WriteJSON(st.manifestPath, st.manifest)
}

func (i *Installer) format(ctx context.Context, st *installState) error {
	if st.ic.SkipFormat || !i.cfg.Formatter.Enabled {
		i.logger.Debug("skipping formatter")
		return nil
	}
	cmd, err := runtime.FormatCommand(i.cfg.Formatter.Command, i.cfg.Formatter.IgnorePath, i.cfg.Root, st.manifestPath)
	if err != nil {
		return err
	}
	i.logger.Debug("running formatter", "cmd", cmd.String())
	return i.runner.Run(ctx, cmd)
}
