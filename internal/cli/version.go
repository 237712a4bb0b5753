package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/visualtopology/skadi-build/internal/cli/commands"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// versionOut receives the version line. Tests swap it.
var versionOut io.Writer = os.Stdout

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		if buildVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			buildVersion = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if buildCommit == "unknown" || buildCommit == "" {
					buildCommit = setting.Value
				}
			case "vcs.time":
				if buildDate == "unknown" || buildDate == "" {
					buildDate = setting.Value
				}
			}
		}
	}

	commands.Register(&commands.Command{
		Name:        "version",
		Aliases:     []string{"--version"},
		Description: "Show version information",
		Run:         cmdVersion,
	})
}

// SetBuildInfo sets the build information from ldflags or other sources.
func SetBuildInfo(version, commit, date string) {
	if version != "" && version != "dev" {
		buildVersion = version
	}
	if commit != "" && commit != "unknown" {
		buildCommit = commit
	}
	if date != "" && date != "unknown" {
		buildDate = date
	}
}

// GetVersion returns the current build version.
func GetVersion() string {
	return buildVersion
}

func cmdVersion(args []string) error {
	if len(args) > 0 {
		fmt.Fprintln(versionOut, "usage: skadi-build version")
		if args[0] == "-h" || args[0] == "--help" {
			return nil
		}
		return fmt.Errorf("version: unexpected argument %q", args[0])
	}
	fmt.Fprintf(versionOut, "skadi-build %s (commit %s, built %s)\n", buildVersion, buildCommit, buildDate)
	return nil
}
