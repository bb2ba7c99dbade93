package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// IsExact reports whether version names a single release (e.g. "1.2.0")
// rather than a range, tag, or wildcard.
func IsExact(version string) bool {
	_, err := semver.StrictNewVersion(version)
	return err == nil
}

// LoosePin describes a dependency whose version is not an exact release.
type LoosePin struct {
	Type    DependencyType
	Name    string
	Version string
}

func (p LoosePin) String() string {
	return fmt.Sprintf("%s %s@%s", p.Type, p.Name, p.Version)
}

// LoosePins returns every dependency of m, across all dependency types, whose
// version is not exact. Results are ordered by type, then name.
func LoosePins(m Manifest) ([]LoosePin, error) {
	var out []LoosePin
	for _, t := range DependencyTypes {
		deps, err := m.Deps(t)
		if err != nil {
			return nil, err
		}
		out = append(out, loose(t, deps)...)
	}
	return out, nil
}

// LooseRootPins returns the root pins that are not exact releases.
func LooseRootPins(r *Root) []LoosePin {
	return loose(Dependencies, r.Dependencies)
}

func loose(t DependencyType, deps DepMap) []LoosePin {
	var out []LoosePin
	for _, name := range deps.Names() {
		if v := deps[name]; !IsExact(v) {
			out = append(out, LoosePin{Type: t, Name: name, Version: v})
		}
	}
	return out
}
