package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

func init() {
	Register(&Command{
		Name:        "help",
		Aliases:     []string{"-h", "--help"},
		Description: "Show help for a command",
		Usage:       "[command]",
		Run:         RunHelp,
	})
}

// RunHelp executes the help command with parsed arguments.
func RunHelp(args []string) error {
	if len(args) == 0 {
		return ShowUsage()
	}
	return ShowCommandHelp(strings.ToLower(strings.TrimSpace(args[0])))
}

// ShowUsage displays the main usage message.
func ShowUsage() error {
	fmt.Fprint(out, `skadi-build - bundle, localise and serve the Skadi web assets

USAGE
  skadi-build [command] [flags]

With no command, skadi-build runs build.

COMMANDS
`)
	for _, cmd := range List() {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.Name, cmd.Description)
	}
	fmt.Fprint(out, `
EXAMPLES
  skadi-build                                  # build with the built-in plan
  skadi-build build --version 1.2.0 --strict   # release build
  skadi-build build --only docs/versions/latest/skadi.css
  skadi-build localise app.html l10n/de.json out/app.html
  skadi-build translate l10n/en.json l10n/de.json --backend ollama
  skadi-build serve -p 8080

Run 'skadi-build help <command>' for the flags of a command.
`)
	return nil
}

// ShowCommandHelp prints the flag usage of one command.
func ShowCommandHelp(name string) error {
	cmd, ok := Get(name)
	if !ok {
		return fmt.Errorf("unknown help topic: %s", name)
	}
	if cmd.Name == "help" {
		return ShowUsage()
	}
	fmt.Fprintf(out, "skadi-build %s - %s\n\n", cmd.Name, cmd.Description)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(out, "aliases: %s\n\n", strings.Join(cmd.Aliases, ", "))
	}
	if err := cmd.Run([]string{"-h"}); err != nil && !errors.Is(err, flag.ErrHelp) {
		return err
	}
	return nil
}
