package runtime

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Setenv("SHADOWPKG_TEST_REGISTRY", "https://registry.example.com")

	tests := []struct {
		line string
		want []string
	}{
		{"npm ci --ignore-scripts", []string{"npm", "ci", "--ignore-scripts"}},
		{`npx "my tool" --flag='a b'`, []string{"npx", "my tool", "--flag=a b"}},
		{"npm ci --registry=$SHADOWPKG_TEST_REGISTRY", []string{"npm", "ci", "--registry=https://registry.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Split(tt.line)
			if err != nil {
				t.Fatalf("Split: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplit_Errors(t *testing.T) {
	for _, line := range []string{"", "   ", `npm "unterminated`} {
		if _, err := Split(line); err == nil {
			t.Errorf("Split(%q) expected error, got nil", line)
		}
	}
}

func TestInstallCommand(t *testing.T) {
	const line = "npm ci --ignore-scripts --bin-links=false"

	cmd, err := InstallCommand(line, "--omit=dev", "/tmp/shadow", false)
	if err != nil {
		t.Fatalf("InstallCommand: %v", err)
	}
	want := Command{Name: "npm", Args: []string{"ci", "--ignore-scripts", "--bin-links=false"}, Dir: "/tmp/shadow"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("InstallCommand = %+v, want %+v", cmd, want)
	}

	cmd, err = InstallCommand(line, "--omit=dev", "/tmp/shadow", true)
	if err != nil {
		t.Fatalf("InstallCommand: %v", err)
	}
	if got := cmd.String(); got != "npm ci --ignore-scripts --bin-links=false --omit=dev" {
		t.Errorf("prod-only command = %q", got)
	}
}

func TestFormatCommand(t *testing.T) {
	cmd, err := FormatCommand("npx prettier --write", "./fake-dir", "/ws", "/tmp/shadow/package.json")
	if err != nil {
		t.Fatalf("FormatCommand: %v", err)
	}
	want := Command{
		Name: "npx",
		Args: []string{"prettier", "--write", "--ignore-path", "./fake-dir", "/tmp/shadow/package.json"},
		Dir:  "/ws",
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("FormatCommand = %+v, want %+v", cmd, want)
	}
}
