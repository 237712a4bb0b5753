package plan

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/visualtopology/skadi-build/internal/bundle"
	"github.com/visualtopology/skadi-build/internal/fsutil"
	"github.com/visualtopology/skadi-build/internal/icons"
	"github.com/visualtopology/skadi-build/internal/logger"
)

// Options controls a run.
type Options struct {
	Build bundle.Options
	// Only restricts the run to the named outputs. Empty means everything.
	Only []string
	// Progress receives one line per step. May be nil.
	Progress io.Writer
	// OnArtifact is called after each committed artifact, icon fragment
	// included.
	OnArtifact func(bundle.Stats)
}

// CopyResult reports one mirrored tree.
type CopyResult struct {
	From, To string
	Files    int
}

// Result collects what a run produced. On error it holds the steps that
// completed before the failure.
type Result struct {
	Icons     *bundle.Stats
	Artifacts []bundle.Stats
	Copies    []CopyResult
}

// Run executes the plan: the icon pass first, then every artifact in
// declaration order, then the tree copies. The first error stops the run.
// ctx is checked between steps.
func Run(ctx context.Context, p *Plan, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sel, err := p.selection(opts.Only)
	if err != nil {
		return nil, err
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	notify := func(s bundle.Stats) {
		if opts.OnArtifact != nil {
			opts.OnArtifact(s)
		}
	}

	res := &Result{}
	if p.Icons != nil && sel.icons {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		stats, err := runIcons(opts.Build, p.Icons, progress)
		if err != nil {
			return res, err
		}
		res.Icons = &stats
		notify(stats)
	}

	for _, a := range p.Artifacts {
		if !sel.artifacts[a.Output] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		stats, err := runArtifact(opts.Build, a, progress)
		if err != nil {
			return res, err
		}
		res.Artifacts = append(res.Artifacts, stats)
		notify(stats)
	}

	for _, c := range p.Copies {
		if !sel.copies[c.To] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := fsutil.CopyTree(rooted(opts.Build.Root, c.From), rooted(opts.Build.Root, c.To), c.Exclude)
		if err != nil {
			return res, err
		}
		fmt.Fprintf(progress, "copied %s to %s (%d files)\n", c.From, c.To, n)
		res.Copies = append(res.Copies, CopyResult{From: c.From, To: c.To, Files: n})
	}
	return res, nil
}

// BuildIcons runs only the icon pass of p.
func BuildIcons(p *Plan, opts Options) (bundle.Stats, error) {
	if p.Icons == nil {
		return bundle.Stats{}, fmt.Errorf("plan declares no icons")
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	return runIcons(opts.Build, p.Icons, progress)
}

func runIcons(opts bundle.Options, pass *IconPass, progress io.Writer) (bundle.Stats, error) {
	paths, err := fsutil.Expand(opts.Root, pass.Sources)
	if err != nil {
		return bundle.Stats{}, fmt.Errorf("icons: %w", err)
	}
	fmt.Fprintf(progress, "embedding %d icons into %s\n", len(paths), pass.Output)
	fragment, err := icons.Embed(opts.Root, paths)
	if err != nil {
		return bundle.Stats{}, err
	}
	stats, err := bundle.Build(opts, pass.Output, bundle.KindBinary, func(w *bundle.Writer) error {
		return w.AddLiteral(fragment)
	})
	if err != nil {
		return bundle.Stats{}, err
	}
	stats.Fragments = len(paths)
	return stats, nil
}

func runArtifact(opts bundle.Options, a Artifact, progress io.Writer) (bundle.Stats, error) {
	kind, err := a.ResolvedKind()
	if err != nil {
		return bundle.Stats{}, err
	}
	fragments, err := fsutil.Expand(opts.Root, a.Sources)
	if err != nil {
		return bundle.Stats{}, fmt.Errorf("build %s: %w", a.Output, err)
	}
	annotate := a.ShouldAnnotate(kind)
	fmt.Fprintf(progress, "building %s (%d fragments)\n", a.Output, len(fragments))
	logger.Debug("%s: kind=%s annotate=%v substitutions=%d", a.Output, kind, annotate, len(a.Substitutions))

	return bundle.Build(opts, a.Output, kind, func(w *bundle.Writer) error {
		for _, f := range fragments {
			if err := w.AddFragment(f, a.Substitutions, annotate); err != nil {
				return err
			}
		}
		return nil
	})
}

type selection struct {
	icons     bool
	artifacts map[string]bool
	copies    map[string]bool
}

// selection resolves Only against the plan. An icon pass is also selected
// when a selected artifact reads its output.
func (p *Plan) selection(only []string) (selection, error) {
	sel := selection{artifacts: map[string]bool{}, copies: map[string]bool{}}
	all := len(only) == 0
	known := p.Outputs()
	for _, o := range only {
		if !slices.Contains(known, o) {
			return sel, fmt.Errorf("--only %s: plan has no such output", o)
		}
	}
	want := func(out string) bool { return all || slices.Contains(only, out) }

	for _, a := range p.Artifacts {
		if want(a.Output) {
			sel.artifacts[a.Output] = true
			if p.Icons != nil && slices.Contains(a.Sources, p.Icons.Output) {
				sel.icons = true
			}
		}
	}
	for _, c := range p.Copies {
		sel.copies[c.To] = want(c.To)
	}
	if p.Icons != nil && want(p.Icons.Output) {
		sel.icons = true
	}
	return sel, nil
}

func rooted(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
