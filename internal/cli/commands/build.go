package commands

import (
	"context"
	"fmt"

	"github.com/visualtopology/skadi-build/internal/bundle"
	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/history"
	"github.com/visualtopology/skadi-build/internal/logger"
	"github.com/visualtopology/skadi-build/internal/plan"
)

func init() {
	Register(&Command{
		Name:        "build",
		Description: "Build every artifact declared by the plan",
		Usage:       "[--root DIR] [--plan FILE] [--version V] [--strict] [--only OUTPUT]...",
		Run:         RunBuild,
	})
}

// BuildOptions contains the configuration for the build command. Zero
// values defer to the project config.
type BuildOptions struct {
	Root      string
	Plan      string
	Version   string
	Strict    flags.BoolFlag
	Only      []string
	NoHistory bool
}

// RunBuild executes the build command with parsed arguments.
func RunBuild(args []string) error {
	fs := newFlagSet("build", "[flags]")
	root := flags.AddRootFlag(fs)
	planPath := fs.String("plan", "", "plan file (default: config value or the built-in plan)")
	version := fs.String("version", "", "version substituted for ${SKADI-VERSION}")
	strict := flags.AddStrictFlag(fs)
	var only flags.StringList
	fs.Var(&only, "only", "build only this output (repeatable)")
	noHistory := fs.Bool("no-history", false, "do not record the run in the build ledger")
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("build: unexpected argument %q", fs.Arg(0))
	}
	setupLogging(*verbose, *debug)

	ctx, cancel := signalContext()
	defer cancel()

	return ExecuteBuild(ctx, BuildOptions{
		Root:      *root,
		Plan:      *planPath,
		Version:   *version,
		Strict:    *strict,
		Only:      only,
		NoHistory: *noHistory,
	})
}

// ExecuteBuild runs the plan and records the run in the ledger.
func ExecuteBuild(ctx context.Context, opts BuildOptions) error {
	rootPath, cfg, err := loadProject(opts.Root)
	if err != nil {
		return err
	}
	p, planName, err := loadPlan(rootPath, firstNonEmpty(opts.Plan, cfg.Plan))
	if err != nil {
		return err
	}
	buildOpts := bundle.Options{
		Root:    rootPath,
		Version: firstNonEmpty(opts.Version, cfg.Version),
		Strict:  opts.Strict.Or(cfg.Strict),
	}

	rec := openRecorder(ctx, rootPath, cfg, opts.NoHistory, buildOpts.Version, planName)
	defer rec.close()

	res, runErr := plan.Run(ctx, p, plan.Options{
		Build:      buildOpts,
		Only:       opts.Only,
		Progress:   out,
		OnArtifact: rec.artifact,
	})
	rec.finish(runErr)
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(out, "built %d artifacts (version %s)\n", len(res.Artifacts), buildOpts.Version)
	return nil
}

// recorder writes to the ledger on a best-effort basis: a broken ledger is
// reported but never fails a build.
type recorder struct {
	ctx    context.Context
	ledger *history.Ledger
	runID  string
}

func openRecorder(ctx context.Context, rootPath string, cfg config.Config, disabled bool, version, planName string) *recorder {
	r := &recorder{ctx: ctx}
	if disabled || cfg.History == "" {
		return r
	}
	l, err := history.Open(config.Resolve(rootPath, cfg.History))
	if err != nil {
		logger.Warn("build history disabled: %v", err)
		return r
	}
	id, err := l.StartRun(ctx, version, planName)
	if err != nil {
		logger.Warn("build history disabled: %v", err)
		l.Close()
		return r
	}
	logger.Debug("recording run %s", id)
	r.ledger, r.runID = l, id
	return r
}

func (r *recorder) artifact(s bundle.Stats) {
	if r.ledger == nil {
		return
	}
	err := r.ledger.RecordArtifact(r.ctx, r.runID, history.Artifact{
		Output:    s.Output,
		Kind:      string(s.Kind),
		Fragments: s.Fragments,
		Bytes:     s.Bytes,
		SHA256:    s.SHA256,
	})
	if err != nil {
		logger.Warn("%v", err)
	}
}

func (r *recorder) finish(runErr error) {
	if r.ledger == nil {
		return
	}
	// The run context may already be cancelled; the outcome is still worth keeping.
	if err := r.ledger.FinishRun(context.WithoutCancel(r.ctx), r.runID, runErr); err != nil {
		logger.Warn("%v", err)
	}
}

func (r *recorder) close() {
	if r.ledger != nil {
		r.ledger.Close()
	}
}
