package shadow

import (
	"slices"
	"strings"

	"github.com/agentx-labs/shadowpkg/internal/config"
	"github.com/agentx-labs/shadowpkg/internal/manifest"
	"github.com/agentx-labs/shadowpkg/internal/platform"
	"github.com/agentx-labs/shadowpkg/internal/workspace"
)

// noHoistAll returns the workspaces directive that stops the installer from
// deduplicating dependencies across nested package boundaries.
func noHoistAll() map[string]any {
	return map[string]any{"nohoist": []string{"**"}}
}

// BuildOptions controls concrete manifest resolution.
type BuildOptions struct {
	// IncludeWorkspaceDeps keeps the member's direct (in-workspace)
	// dependencies alongside the shadow-declared ones.
	IncludeWorkspaceDeps bool
}

// Builder resolves member manifests into concrete manifests.
type Builder struct {
	cfg *config.Config
	fs  platform.FS
}

// NewBuilder returns a Builder reading the workspace described by cfg.
func NewBuilder(cfg *config.Config, fsys platform.FS) *Builder {
	return &Builder{cfg: cfg, fs: fsys}
}

// Build produces the concrete manifest for workspace member id. The result
// carries the no-hoist workspaces marker and has neither a shadow
// declaration nor scripts. Build only reads from the filesystem.
func (b *Builder) Build(id string, opts BuildOptions) (manifest.Manifest, error) {
	reg, err := workspace.List(b.fs, b.cfg.PackagesPath())
	if err != nil {
		return nil, err
	}
	if !reg.Has(id) {
		return nil, &UnknownWorkspaceError{Name: id, Known: reg.Members()}
	}

	root, err := manifest.ParseRoot(b.fs, b.cfg.RootManifestPath())
	if err != nil {
		return nil, err
	}
	member, err := manifest.ParseMember(b.fs, id, b.cfg.MemberManifestPath(id))
	if err != nil {
		return nil, err
	}

	return b.resolve(root, member, opts)
}

// resolve is the pure part of Build: it combines already-loaded root and
// member manifests.
func (b *Builder) resolve(root *manifest.Root, member *manifest.Member, opts BuildOptions) (manifest.Manifest, error) {
	out := member.Raw.Clone()

	for _, t := range manifest.DependencyTypes {
		direct, err := b.resolveDirect(root, member, t)
		if err != nil {
			return nil, err
		}
		shadowed, err := resolveShadow(root, member, t)
		if err != nil {
			return nil, err
		}

		out[string(t)] = combine(direct, shadowed, opts.IncludeWorkspaceDeps)
	}

	out[manifest.KeyWorkspaces] = noHoistAll()
	delete(out, manifest.KeyShadow)
	delete(out, manifest.KeyScripts)

	return out, nil
}

// resolveDirect checks the member's direct declarations of type t and pins
// them from root. A direct dependency without a root pin keeps the wildcard.
func (b *Builder) resolveDirect(root *manifest.Root, member *manifest.Member, t manifest.DependencyType) (manifest.DepMap, error) {
	declared := member.Deps[t]
	out := make(manifest.DepMap, len(declared))

	for _, name := range declared.Names() {
		version := declared[name]
		if !strings.HasPrefix(name, b.cfg.WorkspacePrefix) {
			return nil, &PolicyViolationError{
				Member: member.ID, DepType: t, Package: name, Version: version,
				Reason: ReasonOutsideWorkspace,
			}
		}
		if version != b.cfg.Wildcard {
			return nil, &PolicyViolationError{
				Member: member.ID, DepType: t, Package: name, Version: version,
				Reason: ReasonNotWildcard,
			}
		}

		if pin, ok := root.Pin(name); ok {
			out[name] = pin
		} else {
			out[name] = version
		}
	}
	return out, nil
}

// resolveShadow pins every shadow-declared name of type t from root.
func resolveShadow(root *manifest.Root, member *manifest.Member, t manifest.DependencyType) (manifest.DepMap, error) {
	names := slices.Clone(member.Shadow[t])
	slices.Sort(names)
	names = slices.Compact(names)

	out := make(manifest.DepMap, len(names))
	for _, name := range names {
		pin, ok := root.Pin(name)
		if !ok {
			return nil, &MissingPinError{Member: member.ID, DepType: t, Package: name}
		}
		out[name] = pin
	}
	return out, nil
}

// combine overlays shadowed on direct, or returns shadowed alone when
// includeDirect is false. Shadow entries win on collision.
func combine(direct, shadowed manifest.DepMap, includeDirect bool) manifest.DepMap {
	out := make(manifest.DepMap, len(direct)+len(shadowed))
	if includeDirect {
		for name, v := range direct {
			out[name] = v
		}
	}
	for name, v := range shadowed {
		out[name] = v
	}
	return out
}

// ApplyOverrides shallow-merges overrides over a built manifest. Overrides
// cannot reintroduce the shadow declaration or scripts, and cannot replace
// the no-hoist workspaces marker.
func ApplyOverrides(m manifest.Manifest, overrides map[string]any) manifest.Manifest {
	out := manifest.Merge(m, overrides)
	out[manifest.KeyWorkspaces] = noHoistAll()
	delete(out, manifest.KeyShadow)
	delete(out, manifest.KeyScripts)
	return out
}

// Finalize removes the no-hoist workspaces marker. It is applied once the
// installer has run; a standalone package must not declare workspaces,
// a shadow declaration or scripts.
func Finalize(m manifest.Manifest) {
	delete(m, manifest.KeyWorkspaces)
	delete(m, manifest.KeyShadow)
	delete(m, manifest.KeyScripts)
}
