// Package header removes a leading license block comment from a source fragment.
package header

import (
	"errors"
	"strings"
)

const (
	// Open marks the first line of a license block.
	Open = "/*"
	// Close marks the last line of a license block.
	Close = "*/"
)

// ErrUnterminatedHeader is reported when a fragment opens a license block
// that is never closed.
var ErrUnterminatedHeader = errors.New("unterminated license header")

// Result describes the outcome of Strip.
type Result struct {
	Text string
	// Stripped is true when a leading block was found and removed.
	Stripped bool
	// Unterminated is true when the block ran to end of input. Text is then
	// empty: everything after the opener counts as header.
	Unterminated bool
	// Lines is the number of lines removed.
	Lines int
}

// Strip drops the leading block comment of text, if line 0 starts with Open.
// The block ends at the first later line starting with Close, inclusive.
// The closing marker is only looked for from line 1 onwards, so a one-line
// comment on line 0 does not end the block.
func Strip(text string) Result {
	lines := strings.Split(text, "\n")
	if !strings.HasPrefix(lines[0], Open) {
		return Result{Text: text}
	}

	n := 1
	for n < len(lines) && !strings.HasPrefix(lines[n], Close) {
		n++
	}
	if n >= len(lines) {
		return Result{Stripped: true, Unterminated: true, Lines: len(lines)}
	}
	n++
	return Result{
		Text:     strings.Join(lines[n:], "\n"),
		Stripped: true,
		Lines:    n,
	}
}
