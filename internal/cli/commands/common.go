package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/logger"
	"github.com/visualtopology/skadi-build/internal/plan"
)

// newFlagSet creates a flag set whose usage line names the command.
func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: skadi-build %s %s\n\nflags:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

func setupLogging(verbose, debug bool) {
	logger.SetLevel(logger.LevelFromFlags(verbose, debug))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadProject resolves root and reads its config.
func loadProject(root string) (string, config.Config, error) {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return "", config.Config{}, err
	}
	cfg, err := config.Load(rootPath)
	if err != nil {
		return "", config.Config{}, err
	}
	return rootPath, cfg, nil
}

// loadPlan reads the plan at path, or returns the built-in plan when path
// is empty. The second result labels the plan for history.
func loadPlan(rootPath, path string) (*plan.Plan, string, error) {
	if path == "" {
		logger.Debug("using the built-in plan")
		return plan.Default(), plan.DefaultName, nil
	}
	p, err := plan.Load(config.Resolve(rootPath, path))
	if err != nil {
		return nil, "", err
	}
	return p, path, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseArgs parses fs allowing flags before, between and after positional
// arguments, and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
