package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/plan"
)

func init() {
	Register(&Command{
		Name:        "init",
		Description: "Create a skadi-build.jsonc (and optionally a plan) in the project root",
		Usage:       "[--force] [--version V] [--with-plan | --default-plan]",
		Run:         RunInit,
	})
}

// InitOptions contains the configuration for the init command.
type InitOptions struct {
	Root    string
	Force   bool
	Version string
	// WithPlan writes the commented starter plan.jsonc.
	WithPlan bool
	// DefaultPlan exports the built-in plan to plan.json for editing.
	DefaultPlan bool
}

// Names of the plan files written by init.
const (
	starterPlanFile = "plan.jsonc"
	defaultPlanFile = "plan.json"
)

// RunInit executes the init command with parsed arguments.
func RunInit(args []string) error {
	fs := newFlagSet("init", "[flags]")
	root := flags.AddRootFlag(fs)
	force := flags.AddForceFlag(fs)
	version := fs.String("version", config.DefaultVersion, "initial project version")
	withPlan := fs.Bool("with-plan", false, "also write a commented starter plan.jsonc")
	defaultPlan := fs.Bool("default-plan", false, "export the built-in plan to plan.json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ExecuteInit(InitOptions{
		Root:        *root,
		Force:       *force,
		Version:     *version,
		WithPlan:    *withPlan,
		DefaultPlan: *defaultPlan,
	})
}

// ExecuteInit writes the project files.
func ExecuteInit(opts InitOptions) error {
	if opts.WithPlan && opts.DefaultPlan {
		return errors.New("init: --with-plan and --default-plan are mutually exclusive")
	}
	rootPath, err := filepath.Abs(opts.Root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", rootPath, err)
	}

	planFile := ""
	switch {
	case opts.WithPlan:
		planFile = starterPlanFile
		written, err := config.WriteTemplate(filepath.Join(rootPath, planFile), starterPlanFile, nil, opts.Force)
		if err != nil {
			return err
		}
		report(planFile, written)
	case opts.DefaultPlan:
		planFile = defaultPlanFile
		dest := filepath.Join(rootPath, planFile)
		_, statErr := os.Stat(dest)
		written := opts.Force || statErr != nil
		if written {
			if err := config.WriteJSON(dest, plan.Default()); err != nil {
				return err
			}
		}
		report(planFile, written)
	}

	written, err := config.WriteTemplate(filepath.Join(rootPath, config.FileName), config.FileName, map[string]string{
		"version": firstNonEmpty(opts.Version, config.DefaultVersion),
		"plan":    planFile,
	}, opts.Force)
	if err != nil {
		return err
	}
	report(config.FileName, written)
	return nil
}

func report(name string, written bool) {
	if written {
		fmt.Fprintf(out, "wrote %s\n", name)
		return
	}
	fmt.Fprintf(out, "kept existing %s (use --force to overwrite)\n", name)
}
