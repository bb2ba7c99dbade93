package workspace

import (
	"fmt"
	"sort"

	"github.com/agentx-labs/shadowpkg/internal/platform"
)

// Registry is the set of workspace members found under the packages directory.
type Registry struct {
	dir     string
	members []string
	set     map[string]struct{}
}

// List reads the member identifiers under packagesDir. Every directory is a
// member; stray files are ignored. The result is not cached.
func List(fsys platform.FS, packagesDir string) (*Registry, error) {
	entries, err := fsys.ReadDir(packagesDir)
	if err != nil {
		return nil, fmt.Errorf("reading workspace registry: %w", err)
	}

	r := &Registry{
		dir: packagesDir,
		set: make(map[string]struct{}, len(entries)),
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		r.members = append(r.members, e.Name())
		r.set[e.Name()] = struct{}{}
	}
	sort.Strings(r.members)

	return r, nil
}

// Has reports whether id is a workspace member.
func (r *Registry) Has(id string) bool {
	_, ok := r.set[id]
	return ok
}

// Members returns the member identifiers in lexical order.
func (r *Registry) Members() []string {
	out := make([]string, len(r.members))
	copy(out, r.members)
	return out
}

// Len returns the number of members.
func (r *Registry) Len() int { return len(r.members) }

// Dir returns the directory the registry was read from.
func (r *Registry) Dir() string { return r.dir }
