package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/history"
	"github.com/visualtopology/skadi-build/internal/stale"
)

func init() {
	Register(&Command{
		Name:        "verify",
		Description: "Check that built artifacts still match the last successful build",
		Usage:       "[--run ID]",
		Run:         RunVerify,
	})
}

// VerifyOptions contains the configuration for the verify command.
type VerifyOptions struct {
	Root string
	// RunID selects the run to compare against; empty means the latest
	// successful run.
	RunID string
}

// RunVerify executes the verify command with parsed arguments.
func RunVerify(args []string) error {
	fs := newFlagSet("verify", "[flags]")
	root := flags.AddRootFlag(fs)
	runID := fs.String("run", "", "compare against this run instead of the latest successful one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ExecuteVerify(context.Background(), VerifyOptions{Root: *root, RunID: *runID})
}

// ExecuteVerify reports artifacts that are missing or differ from what the
// selected run wrote. Any difference is an error.
func ExecuteVerify(ctx context.Context, opts VerifyOptions) error {
	rootPath, cfg, err := loadProject(opts.Root)
	if err != nil {
		return err
	}
	if cfg.History == "" {
		return errors.New("verify needs the build history, which is disabled in " + config.FileName)
	}
	path := config.Resolve(rootPath, cfg.History)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no build history at %s: run a build first", cfg.History)
	}
	l, err := history.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	var run history.Run
	if opts.RunID != "" {
		run, err = l.Get(ctx, opts.RunID)
	} else {
		run, err = l.Latest(ctx, history.StatusOK)
	}
	if err != nil {
		return err
	}
	artifacts, err := l.Artifacts(ctx, run.ID)
	if err != nil {
		return err
	}

	problems := stale.Detect(rootPath, artifacts)
	for _, p := range problems {
		fmt.Fprintln(out, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d of %d artifacts differ from run %s", len(problems), len(artifacts), shortID(run.ID))
	}
	fmt.Fprintf(out, "%d artifacts match run %s (version %s)\n", len(artifacts), shortID(run.ID), run.Version)
	return nil
}
