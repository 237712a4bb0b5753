package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunUnknownCommand(t *testing.T) {
	err := Run([]string{"frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: frobnicate") {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	prev := versionOut
	versionOut = &buf
	defer func() { versionOut = prev }()

	SetBuildInfo("1.4.0", "abc123", "")
	for _, args := range [][]string{{"version"}, {"--version"}} {
		buf.Reset()
		if err := Run(args); err != nil {
			t.Fatalf("Run(%v) error = %v", args, err)
		}
		if !strings.Contains(buf.String(), "skadi-build 1.4.0 (commit abc123") {
			t.Errorf("Run(%v) printed %q", args, buf.String())
		}
	}
	if GetVersion() != "1.4.0" {
		t.Errorf("GetVersion() = %q", GetVersion())
	}
	if err := Run([]string{"version", "extra"}); err == nil {
		t.Error("expected error for extra argument")
	}
}

func TestRunCommandHelpIsNotAnError(t *testing.T) {
	for _, args := range [][]string{{"build", "-h"}, {"serve", "--help"}} {
		if err := Run(args); err != nil {
			t.Errorf("Run(%v) error = %v", args, err)
		}
	}
}

func TestRunDefaultsToBuild(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"skadi-build.jsonc": `{"plan": "plan.json", "history": ""}`,
		"plan.json":         `{"artifacts": [{"output": "out/app.css", "sources": ["a.css"]}]}`,
		"a.css":             "body {}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := Run([]string{"--root", root}); err != nil {
		t.Fatalf("Run(--root) error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "out", "app.css"))
	if err != nil {
		t.Fatalf("default command did not build: %v", err)
	}
	if !strings.Contains(string(got), "body {}") {
		t.Errorf("app.css = %q", got)
	}
}
