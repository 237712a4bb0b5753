package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/history"
)

func init() {
	Register(&Command{
		Name:        "history",
		Description: "List recorded builds, or the artifacts of one build",
		Usage:       "[--limit N] [--run ID]",
		Run:         RunHistory,
	})
}

// HistoryOptions contains the configuration for the history command.
type HistoryOptions struct {
	Root  string
	Limit int
	RunID string
}

// RunHistory executes the history command with parsed arguments.
func RunHistory(args []string) error {
	fs := newFlagSet("history", "[flags]")
	root := flags.AddRootFlag(fs)
	limit := flags.AddLimitFlag(fs, 10)
	runID := fs.String("run", "", "show the artifacts of this run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := flags.ValidateLimit(*limit); err != nil {
		return err
	}
	return ExecuteHistory(context.Background(), HistoryOptions{Root: *root, Limit: *limit, RunID: *runID})
}

// ExecuteHistory prints the ledger.
func ExecuteHistory(ctx context.Context, opts HistoryOptions) error {
	rootPath, cfg, err := loadProject(opts.Root)
	if err != nil {
		return err
	}
	if cfg.History == "" {
		return errors.New("build history is disabled in " + config.FileName)
	}
	path := config.Resolve(rootPath, cfg.History)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "no builds recorded")
		return nil
	}
	l, err := history.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	if opts.RunID != "" {
		return printRun(ctx, l, opts.RunID)
	}
	runs, err := l.Recent(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no builds recorded")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tVERSION\tPLAN\tSTATUS\tARTIFACTS\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			shortID(r.ID), r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Version, r.Plan, r.Status, r.Artifacts, r.Duration().Round(time.Millisecond))
	}
	return tw.Flush()
}

func printRun(ctx context.Context, l *history.Ledger, id string) error {
	r, err := l.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "run %s: %s, version %s, plan %s\n", r.ID, r.Status, r.Version, r.Plan)
	if r.Error != "" {
		fmt.Fprintf(out, "error: %s\n", r.Error)
	}
	artifacts, err := l.Artifacts(ctx, id)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTPUT\tKIND\tFRAGMENTS\tBYTES\tSHA256")
	for _, a := range artifacts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", a.Output, a.Kind, a.Fragments, a.Bytes, shortID(a.SHA256))
	}
	return tw.Flush()
}

func shortID(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
