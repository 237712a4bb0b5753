// Package starter holds the templates written by skadi-build init.
package starter

import (
	"embed"
	"strings"

	"github.com/visualtopology/skadi-build/internal/l10n"
)

//go:embed skadi-build.jsonc plan.jsonc
var templateFS embed.FS

// Get returns the template content for a relative path within starter/.
func Get(name string) (string, error) {
	data, err := templateFS.ReadFile(strings.TrimPrefix(name, "/"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Apply fills {{key}} placeholders from replacements. Templates are
// expanded with the same engine as localized pages, so a placeholder with
// no replacement collapses to its bare key.
func Apply(template string, replacements map[string]string) string {
	return l10n.Localise(template, l10n.Bundle(replacements))
}
