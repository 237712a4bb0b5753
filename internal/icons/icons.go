// Package icons turns image files into a generated script fragment holding
// one base64 data-URI constant per image.
package icons

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// MissingResourceError is returned when an icon file cannot be read.
type MissingResourceError struct {
	Path string
	Err  error
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing resource %s: %v", e.Path, e.Err)
}

func (e *MissingResourceError) Unwrap() error {
	return e.Err
}

// Icon is one embedded image.
type Icon struct {
	// Name is the file name without extension.
	Name string
	// Path is the declared source path.
	Path    string
	MIME    string
	Payload string
}

// DataURI returns the icon as a data: URI.
func (i Icon) DataURI() string {
	return "data:" + i.MIME + ";base64," + i.Payload
}

var mimeTypes = map[string]string{
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".gif":  "image/gif",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// Load reads and encodes each icon under root, in the given order.
func Load(root string, paths []string) ([]Icon, error) {
	icons := make([]Icon, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
		if err != nil {
			return nil, &MissingResourceError{Path: p, Err: err}
		}
		base := path.Base(filepath.ToSlash(p))
		ext := path.Ext(base)
		mime, ok := mimeTypes[strings.ToLower(ext)]
		if !ok {
			mime = mimeTypes[".svg"]
		}
		icons = append(icons, Icon{
			Name:    strings.TrimSuffix(base, ext),
			Path:    p,
			MIME:    mime,
			Payload: base64.StdEncoding.EncodeToString(data),
		})
	}
	return icons, nil
}

// Render emits the fragment: per icon a blank line, a comment naming the
// source path and a `let icon_<name> = '<data uri>';` line.
func Render(icons []Icon) string {
	var b strings.Builder
	for _, icon := range icons {
		fmt.Fprintf(&b, "\n/* %s*/\nlet icon_%s = '%s';\n", icon.Path, icon.Name, icon.DataURI())
	}
	return b.String()
}

// Embed loads the icons and renders them.
func Embed(root string, paths []string) (string, error) {
	icons, err := Load(root, paths)
	if err != nil {
		return "", err
	}
	return Render(icons), nil
}
