// Package config loads the project configuration file, skadi-build.jsonc.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/visualtopology/skadi-build/internal/jsonc"
	"github.com/visualtopology/skadi-build/internal/llm"
	"github.com/visualtopology/skadi-build/internal/validate"
	"github.com/visualtopology/skadi-build/schemas"
	"github.com/visualtopology/skadi-build/starter"
)

// FileName is the config file looked up at the project root.
const FileName = "skadi-build.jsonc"

const (
	DefaultVersion = "0.0.1"
	DefaultHost    = "localhost"
	DefaultPort    = 9002
	DefaultWebRoot = "docs/versions/latest"
	DefaultHistory = ".skadi/history.db"
)

// Serve configures the static file server.
type Serve struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	WebRoot string `json:"webroot"`
}

// Translate selects the translation backend.
type Translate struct {
	Backend string `json:"backend,omitempty"`
	Model   string `json:"model,omitempty"`
	URL     string `json:"url,omitempty"`
	APIKey  string `json:"apiKey,omitempty"`
}

// LLM converts the section into client settings.
func (t Translate) LLM() llm.Config {
	return llm.Config{
		Backend: t.Backend,
		Model:   t.Model,
		URL:     t.URL,
		APIKey:  t.APIKey,
	}
}

// Config mirrors skadi-build.jsonc.
type Config struct {
	Version string `json:"version"`
	// Plan is the plan file. Empty selects the built-in plan.
	Plan   string `json:"plan,omitempty"`
	Strict bool   `json:"strict"`
	// History is the ledger database. Empty disables it.
	History   string    `json:"history"`
	Serve     Serve     `json:"serve"`
	Translate Translate `json:"translate"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Version: DefaultVersion,
		History: DefaultHistory,
		Serve: Serve{
			Host:    DefaultHost,
			Port:    DefaultPort,
			WebRoot: DefaultWebRoot,
		},
	}
}

// Load reads root/skadi-build.jsonc over the defaults. Keys absent from the
// file keep their default value; a missing file yields Default().
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	var doc any
	if err := jsonc.Decode(data, &doc); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validate.Value(path, doc, schemas.Config); err != nil {
		return cfg, err
	}
	if err := jsonc.Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve makes a config-relative path absolute against root. Empty stays
// empty.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

// WriteTemplate writes a starter template to destPath. An existing file is
// left alone unless allowOverwrite is set; the result reports whether the
// file was written.
func WriteTemplate(destPath, templateName string, replacements map[string]string, allowOverwrite bool) (bool, error) {
	if _, err := os.Stat(destPath); err == nil && !allowOverwrite {
		return false, nil
	}
	tpl, err := starter.Get(templateName)
	if err != nil {
		return false, fmt.Errorf("load template %s: %w", templateName, err)
	}
	if replacements == nil {
		replacements = map[string]string{}
	}
	replacements["createdAt"] = replaceZero(replacements["createdAt"], time.Now().UTC().Format(time.RFC3339))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(destPath), err)
	}
	if err := os.WriteFile(destPath, []byte(starter.Apply(tpl, replacements)), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", destPath, err)
	}
	return true, nil
}

// WriteJSON writes JSON (not JSONC) with indentation.
func WriteJSON(path string, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func replaceZero(current, fallback string) string {
	if strings.TrimSpace(current) == "" {
		return fallback
	}
	return current
}
