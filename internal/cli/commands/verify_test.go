package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecuteVerify(t *testing.T) {
	root := fixture(t, buildFiles())
	buf := captureOut(t)
	ctx := context.Background()

	if err := ExecuteVerify(ctx, VerifyOptions{Root: root}); err == nil {
		t.Fatal("expected error before any build")
	}

	if err := ExecuteBuild(ctx, BuildOptions{Root: root}); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := ExecuteVerify(ctx, VerifyOptions{Root: root}); err != nil {
		t.Fatalf("ExecuteVerify() after build error = %v", err)
	}
	if !strings.Contains(buf.String(), "3 artifacts match") {
		t.Errorf("output = %q", buf.String())
	}

	if err := os.WriteFile(filepath.Join(root, "dist", "app.css"), []byte("edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "dist", "app.js")); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	err := ExecuteVerify(ctx, VerifyOptions{Root: root})
	if err == nil || !strings.Contains(err.Error(), "2 of 3 artifacts differ") {
		t.Errorf("ExecuteVerify() error = %v", err)
	}
	for _, want := range []string{"changed file dist/app.css", "missing file dist/app.js"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %q", want, buf.String())
		}
	}
}
