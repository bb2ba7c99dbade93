package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DependencyType names one of the dependency maps of a package manifest.
type DependencyType string

// The four dependency types. All are processed uniformly.
const (
	Dependencies         DependencyType = "dependencies"
	DevDependencies      DependencyType = "devDependencies"
	PeerDependencies     DependencyType = "peerDependencies"
	OptionalDependencies DependencyType = "optionalDependencies"
)

// DependencyTypes lists every dependency type in processing order.
var DependencyTypes = []DependencyType{
	Dependencies,
	DevDependencies,
	PeerDependencies,
	OptionalDependencies,
}

func (t DependencyType) String() string { return string(t) }

// Valid reports whether t is one of DependencyTypes.
func (t DependencyType) Valid() bool {
	for _, v := range DependencyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Top-level manifest keys handled specially.
const (
	KeyShadow     = "shadow"
	KeyScripts    = "scripts"
	KeyWorkspaces = "workspaces"
)

// DepMap maps package names to version strings.
type DepMap map[string]string

// Names returns the package names in lexical order.
func (d DepMap) Names() []string {
	names := make([]string, 0, len(d))
	for n := range d {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ShadowDeclaration lists, per dependency type, package names to pin from
// the root manifest without a direct declaration.
type ShadowDeclaration map[DependencyType][]string

// Manifest is a package manifest as a generic JSON object. Unknown fields are
// carried through untouched.
type Manifest map[string]any

// Clone returns a shallow copy of m.
func (m Manifest) Clone() Manifest {
	out := make(Manifest, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Deps returns the dependency map of type t, or nil when m has none.
func (m Manifest) Deps(t DependencyType) (DepMap, error) {
	raw, ok := m[string(t)]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case DepMap:
		return v, nil
	case map[string]string:
		return DepMap(v), nil
	case map[string]any:
		out := make(DepMap, len(v))
		for name, ver := range v {
			s, ok := ver.(string)
			if !ok {
				return nil, fmt.Errorf("%s entry %q has non-string version %v", t, name, ver)
			}
			out[name] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is %T, want an object", t, raw)
	}
}

// Root is the workspace root manifest. Only its pinned dependencies matter.
type Root struct {
	Path         string
	Dependencies DepMap
}

// Pin returns the root's pinned version for name. A name present with an
// empty version is still pinned, to the empty string.
func (r *Root) Pin(name string) (string, bool) {
	v, ok := r.Dependencies[name]
	return v, ok
}

// Member is a workspace member's manifest.
type Member struct {
	// ID is the member's directory name under the packages directory.
	ID   string
	Path string
	// Raw holds every field of the manifest as read.
	Raw    Manifest
	Deps   map[DependencyType]DepMap
	Shadow ShadowDeclaration
}

// memberFields is the typed view of a member manifest.
type memberFields struct {
	Dependencies         DepMap            `json:"dependencies"`
	DevDependencies      DepMap            `json:"devDependencies"`
	PeerDependencies     DepMap            `json:"peerDependencies"`
	OptionalDependencies DepMap            `json:"optionalDependencies"`
	Shadow               ShadowDeclaration `json:"shadow"`
}

func (f *memberFields) byType() map[DependencyType]DepMap {
	return map[DependencyType]DepMap{
		Dependencies:         f.Dependencies,
		DevDependencies:      f.DevDependencies,
		PeerDependencies:     f.PeerDependencies,
		OptionalDependencies: f.OptionalDependencies,
	}
}

// rootFields is the typed view of the root manifest.
type rootFields struct {
	Dependencies DepMap `json:"dependencies"`
}

var _ json.Unmarshaler = (*ShadowDeclaration)(nil)

// UnmarshalJSON decodes a shadow declaration, rejecting unknown dependency types.
func (s *ShadowDeclaration) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ShadowDeclaration, len(raw))
	for k, names := range raw {
		t := DependencyType(k)
		if !t.Valid() {
			return fmt.Errorf("shadow declares unknown dependency type %q", k)
		}
		out[t] = names
	}
	*s = out
	return nil
}
