// Package translate fills the gaps in a localisation bundle by translating
// the missing entries from another language.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/visualtopology/skadi-build/internal/jsonc"
	"github.com/visualtopology/skadi-build/internal/l10n"
	"github.com/visualtopology/skadi-build/internal/llm"
	"github.com/visualtopology/skadi-build/internal/logger"
)

// Translator turns text in one language into another. Languages are
// identified by the codes used to name bundle files, e.g. "en" or "de".
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// LLMTranslator translates through a text completion backend.
type LLMTranslator struct {
	Client  llm.Client
	Options llm.Options
}

// NewLLMTranslator wraps c with the default completion options.
func NewLLMTranslator(c llm.Client) *LLMTranslator {
	return &LLMTranslator{Client: c, Options: llm.DefaultOptions()}
}

const systemPrompt = "You translate short user interface strings. " +
	"Reply with the translation only, without quotes or explanation. " +
	"Keep placeholders, markup and surrounding whitespace unchanged."

// Translate implements Translator.
func (t *LLMTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	opts := t.Options
	if opts.System == "" {
		opts.System = systemPrompt
	}
	prompt := fmt.Sprintf("Translate from language %q to language %q:\n\n%s", from, to, text)
	out, err := t.Client.Complete(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%s returned an empty translation", t.Client.Backend())
	}
	return out, nil
}

// Result summarises one FillBundle run.
type Result struct {
	From, To   string
	Translated int
	Kept       int
	Failed     []string
}

// LanguageOf returns the language code of a bundle file, which is its name
// without directory or extension.
func LanguageOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FillBundle translates every key of the bundle at fromPath that is absent
// from the bundle at toPath and writes the merged target back. A missing
// target counts as empty. Keys that fail to translate are logged and left
// out; the target is written regardless.
func FillBundle(ctx context.Context, tr Translator, fromPath, toPath string) (Result, error) {
	res := Result{From: LanguageOf(fromPath), To: LanguageOf(toPath)}

	source, err := l10n.LoadBundle(fromPath)
	if err != nil {
		return res, err
	}
	target, err := loadTarget(toPath)
	if err != nil {
		return res, err
	}

	keys := make([]string, 0, len(source))
	for k := range source {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := target[key]; ok {
			res.Kept++
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		text := source[key]
		out, err := tr.Translate(ctx, text, res.From, res.To)
		if err != nil {
			logger.Warn("failed to translate %s: %v", text, err)
			res.Failed = append(res.Failed, key)
			continue
		}
		logger.Info("translated %s => %s", text, out)
		target[key] = out
		res.Translated++
	}

	if err := jsonc.EncodeFile(toPath, target); err != nil {
		return res, err
	}
	return res, nil
}

func loadTarget(path string) (l10n.Bundle, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return l10n.Bundle{}, nil
	}
	return l10n.LoadBundle(path)
}
