// Package bundle assembles output artifacts from ordered source fragments.
package bundle

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/visualtopology/skadi-build/internal/header"
	"github.com/visualtopology/skadi-build/internal/logger"
	"github.com/visualtopology/skadi-build/internal/subst"
)

// VersionPlaceholder is replaced with Options.Version in every text fragment,
// before the artifact's own substitutions.
const VersionPlaceholder = "${SKADI-VERSION}"

// Banner opens every script artifact. It is never substituted.
const Banner = "/*   Skadi - A visual modelling tool for constructing and executing directed graphs.\n" +
	"\n" +
	"     Copyright (C) 2022-2023 Visual Topology Ltd\n" +
	"\n" +
	"     Licensed under the Open Software License version 3.0 \n" +
	"*/\n" +
	"\n"

// Options carries the build state shared by every artifact of a run.
type Options struct {
	// Root is the directory fragment and output paths are relative to.
	Root string
	// Version replaces VersionPlaceholder.
	Version string
	// Strict turns an unterminated license header into an error.
	Strict bool
}

// Stats summarises a committed artifact.
type Stats struct {
	Output    string
	Kind      Kind
	Fragments int
	Bytes     int64
	SHA256    string
}

// Writer appends transformed fragments to one artifact. Output goes to a
// temporary file next to the destination and is renamed into place by
// Close, so a failed build never leaves a finished-looking artifact.
type Writer struct {
	opts   Options
	output string
	dest   string
	kind   Kind

	tmp  *os.File
	sum  hash.Hash
	w    io.Writer
	done bool

	stats Stats
}

// Open starts an artifact at output (relative to opts.Root). Parent
// directories are created as needed; script artifacts start with Banner.
func Open(opts Options, output string, kind Kind) (*Writer, error) {
	if kind == "" {
		kind = KindFor(output)
	}
	dest := output
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(opts.Root, filepath.FromSlash(output))
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", output, err)
	}

	sum := sha256.New()
	w := &Writer{
		opts:   opts,
		output: output,
		dest:   dest,
		kind:   kind,
		tmp:    tmp,
		sum:    sum,
		w:      io.MultiWriter(tmp, sum),
		stats:  Stats{Output: output, Kind: kind},
	}
	if kind.StripsHeaders() {
		if err := w.write(Banner); err != nil {
			w.Abort()
			return nil, err
		}
	}
	logger.Debug("opened %s (%s)", output, kind)
	return w, nil
}

// Kind returns the artifact kind.
func (w *Writer) Kind() Kind {
	return w.kind
}

// AddFragment reads fragment (relative to Options.Root), substitutes the
// version placeholder and then subs, strips the license header of script
// fragments, and appends the result. With annotate the text is preceded by
// a comment naming fragment and followed by a blank line.
func (w *Writer) AddFragment(fragment string, subs subst.Map, annotate bool) error {
	if w.done {
		return fmt.Errorf("build %s: writer already closed", w.output)
	}
	data, err := os.ReadFile(filepath.Join(w.opts.Root, filepath.FromSlash(fragment)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingFragmentError{Artifact: w.output, Fragment: fragment, Err: err}
		}
		return fmt.Errorf("build %s: read %s: %w", w.output, fragment, err)
	}

	if !w.kind.Substitutes() {
		if err := w.write(string(data)); err != nil {
			return err
		}
		w.stats.Fragments++
		return nil
	}

	text, err := subst.Apply(string(data), subs.With(subst.Pair{Search: VersionPlaceholder, Replace: w.opts.Version}))
	if err != nil {
		return fmt.Errorf("build %s: %s: %w", w.output, fragment, err)
	}

	if w.kind.StripsHeaders() {
		res := header.Strip(text)
		if res.Unterminated {
			if w.opts.Strict {
				return fmt.Errorf("build %s: %s: %w", w.output, fragment, header.ErrUnterminatedHeader)
			}
			logger.Warn("%s: license header never closed; dropped %d lines", fragment, res.Lines)
		}
		text = res.Text
	}

	if annotate {
		text = w.kind.annotation(fragment) + text + "\n\n"
	}
	if err := w.write(text); err != nil {
		return err
	}
	w.stats.Fragments++
	logger.Debug("%s <- %s", w.output, fragment)
	return nil
}

// AddLiteral appends text without any transformation.
func (w *Writer) AddLiteral(text string) error {
	if w.done {
		return fmt.Errorf("build %s: writer already closed", w.output)
	}
	return w.write(text)
}

// Close flushes the artifact and moves it to its destination.
func (w *Writer) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	if err := w.tmp.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("flush %s: %w", w.output, err)
	}
	if err := w.tmp.Close(); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("close %s: %w", w.output, err)
	}
	if err := os.Chmod(w.tmp.Name(), 0o644); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("chmod %s: %w", w.output, err)
	}
	if err := os.Rename(w.tmp.Name(), w.dest); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("commit %s: %w", w.output, err)
	}
	w.stats.SHA256 = fmt.Sprintf("%x", w.sum.Sum(nil))
	return nil
}

// Abort discards the artifact. It is safe to call after Close.
func (w *Writer) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.discard()
}

// Stats returns the artifact summary. SHA256 is set once Close succeeds.
func (w *Writer) Stats() Stats {
	return w.stats
}

func (w *Writer) discard() {
	w.tmp.Close()
	os.Remove(w.tmp.Name())
}

func (w *Writer) write(s string) error {
	n, err := io.WriteString(w.w, s)
	w.stats.Bytes += int64(n)
	if err != nil {
		return fmt.Errorf("write %s: %w", w.output, err)
	}
	return nil
}

// Build opens an artifact, hands it to fill and commits it when fill returns
// nil. On any error the partial artifact is removed.
func Build(opts Options, output string, kind Kind, fill func(*Writer) error) (Stats, error) {
	w, err := Open(opts, output, kind)
	if err != nil {
		return Stats{}, err
	}
	defer w.Abort()

	if err := fill(w); err != nil {
		return Stats{}, err
	}
	if err := w.Close(); err != nil {
		return Stats{}, err
	}
	return w.Stats(), nil
}
