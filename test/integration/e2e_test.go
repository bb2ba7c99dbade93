//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/shadowpkg/internal/runtime"
	"github.com/agentx-labs/shadowpkg/internal/shadow"
)

// TestGenerateMatchesInstall checks that the manifest a dry build produces
// is the one install leaves on disk, formatting aside.
func TestGenerateMatchesInstall(t *testing.T) {
	env := setupTestEnv(t)
	target := filepath.Join(t.TempDir(), "shadow")

	m, err := shadow.NewBuilder(env.Cfg, env.FS).Build("app", shadow.BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := m["workspaces"]; !ok {
		t.Fatal("built manifest is missing the workspaces marker")
	}
	shadow.Finalize(m)

	wantPath := filepath.Join(t.TempDir(), "package.json")
	if err := env.FS.WriteJSON(wantPath, m); err != nil {
		t.Fatal(err)
	}

	inst := shadow.NewInstaller(env.Cfg, env.FS, &runtime.ExecRunner{}, nil)
	res, err := inst.Install(context.Background(), shadow.InstallConfig{
		Member:     "app",
		TargetDir:  target,
		SkipFormat: true,
	})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}

	want, _ := os.ReadFile(wantPath)
	got, _ := os.ReadFile(res.ManifestPath)
	if string(want) != string(got) {
		t.Errorf("installed manifest differs from generated one:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if strings.Contains(string(got), "postinstall") {
		t.Error("scripts were carried into the shadow package")
	}
}
