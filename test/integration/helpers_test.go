//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/shadowpkg/internal/config"
	"github.com/agentx-labs/shadowpkg/internal/platform"
)

// npmShim stands in for the package installer. It records its arguments,
// fails unless the manifest still carries the nohoist marker, and creates a
// node_modules directory the way a real install would.
const npmShim = `#!/bin/sh
echo "$@" > "$SHIM_LOG/npm.args"
grep -q nohoist package.json || { echo "missing nohoist marker" >&2; exit 3; }
[ -f package-lock.json ] || { echo "missing lockfile" >&2; exit 4; }
[ -n "$SHIM_NPM_FAIL" ] && { echo "$SHIM_NPM_FAIL" >&2; exit 1; }
mkdir -p node_modules/left-pad
echo '{"name":"left-pad","version":"1.3.0"}' > node_modules/left-pad/package.json
`

// npxShim stands in for the formatter and records its arguments.
const npxShim = `#!/bin/sh
echo "$@" > "$SHIM_LOG/npx.args"
`

// testEnv is an on-disk workspace with shim tools first on PATH.
type testEnv struct {
	Root   string
	LogDir string
	Cfg    *config.Config
	FS     platform.FS
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	env := &testEnv{Root: t.TempDir(), LogDir: t.TempDir()}

	binDir := t.TempDir()
	writeFile(t, filepath.Join(binDir, "npm"), npmShim, 0755)
	writeFile(t, filepath.Join(binDir, "npx"), npxShim, 0755)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("SHIM_LOG", env.LogDir)

	writeFile(t, filepath.Join(env.Root, "package.json"), `{
  "name": "root",
  "private": true,
  "workspaces": ["packages/*"],
  "dependencies": {"@abc/lib": "2.0.0", "left-pad": "1.3.0", "jest": "29.7.0"}
}`, 0644)
	writeFile(t, filepath.Join(env.Root, "package-lock.json"), testLockfile, 0644)
	writeFile(t, filepath.Join(env.Root, "packages", "app", "package.json"), `{
  "name": "@abc/app",
  "version": "1.0.0",
  "dependencies": {"@abc/lib": "*"},
  "devDependencies": {},
  "shadow": {"dependencies": ["left-pad"], "devDependencies": ["jest"]},
  "scripts": {"postinstall": "exit 1"}
}`, 0644)
	writeFile(t, filepath.Join(env.Root, "packages", "lib", "package.json"), `{"name": "@abc/lib"}`, 0644)

	cfg, err := config.Load(env.Root, "")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	env.Cfg = cfg
	env.FS = platform.NewOSFS()
	return env
}

const testLockfile = `{
  "name": "root",
  "lockfileVersion": 3,
  "requires": true,
  "packages": {}
}
`

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readShimArgs(t *testing.T, env *testEnv, tool string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(env.LogDir, tool+".args"))
	if err != nil {
		t.Fatalf("%s was not invoked: %v", tool, err)
	}
	return strings.TrimSpace(string(data))
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file to exist: %s", path)
		return
	}
	if info.IsDir() {
		t.Errorf("expected file, got directory: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected directory, got file: %s", path)
	}
}
