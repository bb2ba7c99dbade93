package workspace

import (
	"reflect"
	"testing"

	"github.com/agentx-labs/shadowpkg/internal/platform"
)

func TestList(t *testing.T) {
	fsys := platform.NewMemFS()
	for _, dir := range []string{"/ws/packages/ui", "/ws/packages/app", "/ws/packages/api"} {
		if err := fsys.EnsureDir(dir); err != nil {
			t.Fatal(err)
		}
	}
	if err := fsys.WriteFile("/ws/packages/README.md", []byte("# packages")); err != nil {
		t.Fatal(err)
	}

	reg, err := List(fsys, "/ws/packages")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"api", "app", "ui"}
	if got := reg.Members(); !reflect.DeepEqual(got, want) {
		t.Errorf("Members() = %v, want %v", got, want)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
	if !reg.Has("app") {
		t.Error("Has(app) = false, want true")
	}
	if reg.Has("README.md") {
		t.Error("stray files must not be members")
	}
	if reg.Has("web") {
		t.Error("Has(web) = true, want false")
	}
}

func TestList_Unreadable(t *testing.T) {
	fsys := platform.NewMemFS()
	if _, err := List(fsys, "/ws/packages"); err == nil {
		t.Fatal("expected error for missing packages directory, got nil")
	}
}

func TestMembers_ReturnsCopy(t *testing.T) {
	fsys := platform.NewMemFS()
	if err := fsys.EnsureDir("/ws/packages/app"); err != nil {
		t.Fatal(err)
	}
	reg, err := List(fsys, "/ws/packages")
	if err != nil {
		t.Fatal(err)
	}

	members := reg.Members()
	members[0] = "mutated"
	if !reg.Has("app") || reg.Members()[0] != "app" {
		t.Error("mutating Members() result changed the registry")
	}
}
