// Package commands implements the skadi-build subcommands.
package commands

import (
	"io"
	"os"
	"sort"
)

// CommandFunc is the function signature for CLI commands.
type CommandFunc func(args []string) error

// Command is a CLI command with its metadata.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	// Usage is the argument synopsis shown by help, without the name.
	Usage string
	Run   CommandFunc
}

var registry = make(map[string]*Command)

// out receives user-facing output. Tests swap it.
var out io.Writer = os.Stdout

// Register adds a command under its name and all aliases.
func Register(cmd *Command) {
	registry[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		registry[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func Get(name string) (*Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

// List returns all unique commands sorted by name.
func List() []*Command {
	seen := make(map[string]bool)
	var commands []*Command
	for _, cmd := range registry {
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			commands = append(commands, cmd)
		}
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name < commands[j].Name })
	return commands
}
