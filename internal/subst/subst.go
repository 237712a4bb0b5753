// Package subst applies ordered literal find/replace pairs to text.
package subst

import (
	"fmt"
	"strings"
)

// Pair is one literal replacement.
type Pair struct {
	Search  string `json:"search" yaml:"search"`
	Replace string `json:"replace" yaml:"replace"`
}

// Map is an ordered list of replacements. Pairs are applied one after the
// other, so a later pair sees the output of the earlier ones.
type Map []Pair

// InvalidSubstitutionError reports a malformed pair in a Map.
type InvalidSubstitutionError struct {
	Index  int
	Reason string
}

func (e *InvalidSubstitutionError) Error() string {
	return fmt.Sprintf("invalid substitution #%d: %s", e.Index, e.Reason)
}

// Validate checks that every pair has a non-empty search string.
func (m Map) Validate() error {
	for i, p := range m {
		if p.Search == "" {
			return &InvalidSubstitutionError{Index: i, Reason: "empty search string"}
		}
	}
	return nil
}

// With returns a new Map holding p followed by the pairs of m.
func (m Map) With(p Pair) Map {
	out := make(Map, 0, len(m)+1)
	out = append(out, p)
	return append(out, m...)
}

// Apply runs every pair of m over text in declaration order.
func Apply(text string, m Map) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	for _, p := range m {
		text = strings.ReplaceAll(text, p.Search, p.Replace)
	}
	return text, nil
}
