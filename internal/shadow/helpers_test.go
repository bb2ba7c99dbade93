package shadow

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/shadowpkg/internal/config"
	"github.com/agentx-labs/shadowpkg/internal/platform"
	"github.com/agentx-labs/shadowpkg/internal/runtime"
)

const (
	testRoot     = "/ws"
	testLockfile = "{\n  \"name\": \"root\",\n  \"lockfileVersion\": 3,\n  \"packages\": {}\n}\n"
)

// testWorkspace is an in-memory workspace with a root manifest, a lockfile,
// and the given member manifests.
type testWorkspace struct {
	cfg *config.Config
	fs  *platform.AferoFS
}

func newTestWorkspace(t *testing.T, rootDeps map[string]string, members map[string]string) *testWorkspace {
	t.Helper()

	fsys := platform.NewMemFS()
	cfg := config.Default(testRoot)

	rootManifest := map[string]any{
		"name":         "root",
		"private":      true,
		"workspaces":   []string{"packages/*"},
		"dependencies": rootDeps,
	}
	if err := fsys.WriteJSON(cfg.RootManifestPath(), rootManifest); err != nil {
		t.Fatal(err)
	}
	if err := fsys.WriteFile(cfg.RootLockfilePath(), []byte(testLockfile)); err != nil {
		t.Fatal(err)
	}
	if err := fsys.EnsureDir(cfg.PackagesPath()); err != nil {
		t.Fatal(err)
	}
	for id, content := range members {
		if err := fsys.EnsureDir(cfg.MemberPath(id)); err != nil {
			t.Fatal(err)
		}
		if err := fsys.WriteFile(cfg.MemberManifestPath(id), []byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	return &testWorkspace{cfg: cfg, fs: fsys}
}

func (w *testWorkspace) readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := w.fs.ReadJSON(path, &out); err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return out
}

func (w *testWorkspace) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := w.fs.Exists(path)
	if err != nil {
		t.Fatal(err)
	}
	return ok
}

// fakeRunner records commands instead of executing them.
type fakeRunner struct {
	calls []runtime.Command
	// onRun, when set, is called for every command; its error is returned.
	onRun func(cmd runtime.Command) error
}

func (f *fakeRunner) Run(_ context.Context, cmd runtime.Command) error {
	f.calls = append(f.calls, cmd)
	if f.onRun != nil {
		return f.onRun(cmd)
	}
	return nil
}

func depsOf(t *testing.T, m map[string]any, key string) map[string]string {
	t.Helper()
	raw, ok := m[key]
	if !ok {
		t.Fatalf("manifest has no %q key", key)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("%s is not a string map: %v", key, err)
	}
	return out
}

const testTarget = "/out/shadow"

func targetPath(name string) string {
	return filepath.Join(testTarget, name)
}
