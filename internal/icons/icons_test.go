package icons

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeIcon(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbed(t *testing.T) {
	root := t.TempDir()
	foo := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	writeIcon(t, root, "icons/foo.svg", foo)
	writeIcon(t, root, "icons/close_purple.svg", []byte("<svg/>"))

	got, err := Embed(root, []string{"icons/foo.svg", "icons/close_purple.svg"})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	want := "\n/* icons/foo.svg*/\nlet icon_foo = 'data:image/svg+xml;base64," +
		base64.StdEncoding.EncodeToString(foo) + "';\n" +
		"\n/* icons/close_purple.svg*/\nlet icon_close_purple = 'data:image/svg+xml;base64," +
		base64.StdEncoding.EncodeToString([]byte("<svg/>")) + "';\n"
	if got != want {
		t.Errorf("Embed() =\n%s\nwant\n%s", got, want)
	}
}

func TestEmbedKeepsInputOrder(t *testing.T) {
	root := t.TempDir()
	writeIcon(t, root, "b.svg", []byte("b"))
	writeIcon(t, root, "a.svg", []byte("a"))

	got, err := Embed(root, []string{"b.svg", "a.svg"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(got, "icon_b") > strings.Index(got, "icon_a") {
		t.Errorf("icons out of order:\n%s", got)
	}
}

func TestLoadMIMEFromExtension(t *testing.T) {
	root := t.TempDir()
	writeIcon(t, root, "logo.PNG", []byte{0x89, 'P', 'N', 'G'})
	writeIcon(t, root, "odd.bin", []byte("?"))

	icons, err := Load(root, []string{"logo.PNG", "odd.bin"})
	if err != nil {
		t.Fatal(err)
	}
	if icons[0].MIME != "image/png" || icons[0].Name != "logo" {
		t.Errorf("icon[0] = %+v", icons[0])
	}
	if icons[1].MIME != "image/svg+xml" {
		t.Errorf("unknown extension should default to svg, got %q", icons[1].MIME)
	}
	if !strings.HasPrefix(icons[0].DataURI(), "data:image/png;base64,") {
		t.Errorf("DataURI() = %q", icons[0].DataURI())
	}
}

func TestMissingIconFailsWholePass(t *testing.T) {
	root := t.TempDir()
	writeIcon(t, root, "ok.svg", []byte("x"))

	_, err := Embed(root, []string{"ok.svg", "missing.svg"})

	var missing *MissingResourceError
	if !errors.As(err, &missing) {
		t.Fatalf("Embed() error = %v, want *MissingResourceError", err)
	}
	if missing.Path != "missing.svg" {
		t.Errorf("Path = %q, want %q", missing.Path, "missing.svg")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("error should unwrap to os.ErrNotExist")
	}
}
