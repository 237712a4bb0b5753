// Package cli dispatches the skadi-build command line to its commands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/visualtopology/skadi-build/internal/cli/commands"
)

// defaultCommand runs when no command is named.
const defaultCommand = "build"

// Run executes the command named by args[0]. With no arguments, or when
// the first argument is a flag, the build command runs with all of args.
func Run(args []string) error {
	name, rest := defaultCommand, args
	if len(args) > 0 && (!strings.HasPrefix(args[0], "-") || isCommand(args[0])) {
		name, rest = args[0], args[1:]
	}

	cmd, ok := commands.Get(name)
	if !ok {
		return fmt.Errorf("unknown command: %s\nRun 'skadi-build help' for usage", name)
	}
	err := cmd.Run(rest)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// isCommand reports whether a dash-prefixed argument is itself a command,
// like --help or --version.
func isCommand(arg string) bool {
	_, ok := commands.Get(arg)
	return ok
}
