// Package l10n resolves delimiter-bounded keys in text against a language
// bundle.
package l10n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/visualtopology/skadi-build/internal/logger"
)

// ErrUnterminatedToken is reported when an open delimiter is never closed.
var ErrUnterminatedToken = errors.New("unterminated localization token")

// Bundle maps keys to localized strings.
type Bundle map[string]string

// Delimiters bound a token.
type Delimiters struct {
	Open  string
	Close string
}

// DefaultDelimiters are used by templates processed at build time.
var DefaultDelimiters = Delimiters{Open: "{{", Close: "}}"}

// RuntimeDelimiters are the ones the browser-side localiser understands.
var RuntimeDelimiters = Delimiters{Open: "||", Close: "||"}

// Result is the outcome of a scan.
type Result struct {
	Text string
	// Missing lists token keys that were not in the bundle, in order of
	// appearance. They were emitted as their raw key text.
	Missing []string
	// Unterminated is true when the input ended inside a token. The open
	// delimiter and everything after it were dropped.
	Unterminated bool
	// Offset is the byte offset of the dangling open delimiter.
	Offset int
}

// Scan walks input left to right. Outside a token every byte is copied.
// An open delimiter starts a token; the token ends at the next close
// delimiter, and both delimiters are dropped. A known key is replaced by its
// bundle value, which is not scanned again; an unknown key is emitted as is.
// Open delimiters inside a token are plain token text.
func Scan(input string, b Bundle, d Delimiters) Result {
	if d.Open == "" || d.Close == "" {
		d = DefaultDelimiters
	}
	var res Result
	var out strings.Builder
	out.Grow(len(input))

	rest := input
	consumed := 0
	for {
		i := strings.Index(rest, d.Open)
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		start := i + len(d.Open)
		j := strings.Index(rest[start:], d.Close)
		if j < 0 {
			res.Unterminated = true
			res.Offset = consumed + i
			break
		}
		key := rest[start : start+j]
		if v, ok := b[key]; ok {
			out.WriteString(v)
		} else {
			out.WriteString(key)
			res.Missing = append(res.Missing, key)
		}
		advance := start + j + len(d.Close)
		rest = rest[advance:]
		consumed += advance
	}
	res.Text = out.String()
	return res
}

// Localise resolves {{key}} tokens in input against b.
func Localise(input string, b Bundle) string {
	return Scan(input, b, DefaultDelimiters).Text
}

// Engine is a configured localiser.
type Engine struct {
	Bundle     Bundle
	Delimiters Delimiters
	// Strict makes an unterminated token an error instead of a warning.
	Strict bool
	// Name identifies the input in diagnostics.
	Name string
}

// Localise scans input. Missing keys are logged at debug level.
func (e *Engine) Localise(input string) (string, error) {
	res := Scan(input, e.Bundle, e.Delimiters)
	name := e.Name
	if name == "" {
		name = "input"
	}
	for _, key := range res.Missing {
		logger.Debug("%s: no translation for %q", name, key)
	}
	if res.Unterminated {
		if e.Strict {
			return "", fmt.Errorf("%s at offset %d: %w", name, res.Offset, ErrUnterminatedToken)
		}
		logger.Warn("%s: token opened at offset %d is never closed; output truncated", name, res.Offset)
	}
	return res.Text, nil
}
