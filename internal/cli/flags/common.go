package flags

import "flag"

// AddRootFlag adds --root and -r flags for the project root.
func AddRootFlag(fs *flag.FlagSet) *string {
	root := fs.String("root", ".", "project root")
	fs.StringVar(root, "r", ".", "project root (shorthand)")
	return root
}

// AddLimitFlag adds --limit and -l flags for result limits.
func AddLimitFlag(fs *flag.FlagSet, defaultValue int) *int {
	limit := fs.Int("limit", defaultValue, "maximum results")
	fs.IntVar(limit, "l", defaultValue, "maximum results (shorthand)")
	return limit
}

// AddVerboseFlag adds --verbose and -v flags for progress logging.
func AddVerboseFlag(fs *flag.FlagSet) *bool {
	verbose := fs.Bool("verbose", false, "show detailed output")
	fs.BoolVar(verbose, "v", false, "show detailed output (shorthand)")
	return verbose
}

// AddDebugFlag adds --debug.
func AddDebugFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("debug", false, "show debug output")
}

// AddForceFlag adds --force and -f flags for overwrite operations.
func AddForceFlag(fs *flag.FlagSet) *bool {
	force := fs.Bool("force", false, "overwrite existing files")
	fs.BoolVar(force, "f", false, "overwrite existing files (shorthand)")
	return force
}

// AddStrictFlag adds --strict. Unset means the config file decides.
func AddStrictFlag(fs *flag.FlagSet) *BoolFlag {
	var strict BoolFlag
	fs.Var(&strict, "strict", "fail on unterminated license headers and localization tokens")
	return &strict
}

// AddPortFlag adds --port and -p flags for server port. Zero means the
// config file decides.
func AddPortFlag(fs *flag.FlagSet, defaultPort int) *int {
	port := fs.Int("port", defaultPort, "server port")
	fs.IntVar(port, "p", defaultPort, "server port (shorthand)")
	return port
}
