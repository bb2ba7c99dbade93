package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsExact(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"1.2.0", true},
		{"0.0.1-beta.3", true},
		{"18.2.0+build.7", true},
		{"*", false},
		{"^1.2.0", false},
		{"~1.2.0", false},
		{">=1.0.0 <2", false},
		{"1.2", false},
		{"v1.2.0", false},
		{"latest", false},
		{"workspace:*", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := IsExact(tt.version); got != tt.want {
				t.Errorf("IsExact(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestLoosePins(t *testing.T) {
	m := Manifest{
		"dependencies":    DepMap{"react": "18.2.0", "@abc/ui": "*"},
		"devDependencies": DepMap{"vite": "^5.0.0"},
		"name":            "@abc/app",
	}

	got, err := LoosePins(m)
	if err != nil {
		t.Fatalf("LoosePins: %v", err)
	}
	want := []LoosePin{
		{Type: Dependencies, Name: "@abc/ui", Version: "*"},
		{Type: DevDependencies, Name: "vite", Version: "^5.0.0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoosePins mismatch (-want +got):\n%s", diff)
	}
	if got[0].String() != "dependencies @abc/ui@*" {
		t.Errorf("String() = %q", got[0].String())
	}
}

func TestLooseRootPins(t *testing.T) {
	r := &Root{Dependencies: DepMap{"a": "1.0.0", "b": "~2.0.0"}}
	got := LooseRootPins(r)
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("LooseRootPins = %v, want [b]", got)
	}
}
