package stale

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/visualtopology/skadi-build/internal/history"
)

func artifactFor(output, content string) history.Artifact {
	return history.Artifact{
		Output: output,
		Kind:   "script",
		Bytes:  int64(len(content)),
		SHA256: fmt.Sprintf("%x", sha256.Sum256([]byte(content))),
	}
}

func TestDetect(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("dist/same.js", "var a = 1;\n")
	write("dist/edited.js", "var b = 3;\n")
	write("dist/grown.css", "body {}\n.extra {}\n")

	recorded := []history.Artifact{
		artifactFor("dist/same.js", "var a = 1;\n"),
		artifactFor("dist/edited.js", "var b = 2;\n"),
		artifactFor("dist/grown.css", "body {}\n"),
		artifactFor("dist/gone.html", "<html></html>"),
	}

	got := Detect(root, recorded)
	want := []string{
		"changed file dist/edited.js",
		"changed file dist/grown.css",
		"missing file dist/gone.html",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %q, want %q", got, want)
	}
}

func TestDetectCleanTree(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Detect(root, []history.Artifact{artifactFor("a.js", "x")}); len(got) != 0 {
		t.Errorf("Detect() = %q, want nothing", got)
	}
}
