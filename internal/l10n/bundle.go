package l10n

import (
	"fmt"
	"path/filepath"

	"github.com/visualtopology/skadi-build/internal/jsonc"
)

// LoadBundle reads a flat key to string bundle.
func LoadBundle(path string) (Bundle, error) {
	var b Bundle
	if err := jsonc.DecodeFile(path, &b); err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	if b == nil {
		b = Bundle{}
	}
	return b, nil
}

// Language describes one entry of an l10n index.
type Language struct {
	Name      string `json:"name"`
	BundleURL string `json:"bundle_url"`
}

// Index is the index.json found at the top of an l10n folder.
type Index struct {
	DefaultLanguage string              `json:"default_language"`
	Languages       map[string]Language `json:"languages"`

	dir string
}

// LoadIndex reads dir/index.json.
func LoadIndex(dir string) (*Index, error) {
	var ix Index
	if err := jsonc.DecodeFile(filepath.Join(dir, "index.json"), &ix); err != nil {
		return nil, fmt.Errorf("load l10n index: %w", err)
	}
	ix.dir = dir
	return &ix, nil
}

// Resolve picks the language to use for code, falling back to the default
// language when code is empty or unknown. It returns the chosen code and
// the bundle path.
func (ix *Index) Resolve(code string) (string, string, error) {
	lang, ok := ix.Languages[code]
	if code == "" || !ok {
		code = ix.DefaultLanguage
		lang, ok = ix.Languages[code]
		if !ok {
			return "", "", fmt.Errorf("l10n index: default language %q not listed", code)
		}
	}
	return code, filepath.Join(ix.dir, filepath.FromSlash(lang.BundleURL)), nil
}

// Load resolves code and reads its bundle.
func (ix *Index) Load(code string) (string, Bundle, error) {
	code, path, err := ix.Resolve(code)
	if err != nil {
		return "", nil, err
	}
	b, err := LoadBundle(path)
	if err != nil {
		return "", nil, err
	}
	return code, b, nil
}
