package commands

import (
	"fmt"

	"github.com/visualtopology/skadi-build/internal/bundle"
	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/plan"
)

func init() {
	Register(&Command{
		Name:        "icons",
		Description: "Regenerate the embedded icon fragment only",
		Usage:       "[--root DIR] [--plan FILE]",
		Run:         RunIcons,
	})
}

// RunIcons executes the icons command with parsed arguments.
func RunIcons(args []string) error {
	fs := newFlagSet("icons", "[flags]")
	root := flags.AddRootFlag(fs)
	planPath := fs.String("plan", "", "plan file (default: config value or the built-in plan)")
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose, *debug)

	rootPath, cfg, err := loadProject(*root)
	if err != nil {
		return err
	}
	p, _, err := loadPlan(rootPath, firstNonEmpty(*planPath, cfg.Plan))
	if err != nil {
		return err
	}
	stats, err := plan.BuildIcons(p, plan.Options{
		Build:    bundle.Options{Root: rootPath, Version: cfg.Version, Strict: cfg.Strict},
		Progress: out,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%d icons, %d bytes)\n", stats.Output, stats.Fragments, stats.Bytes)
	return nil
}
