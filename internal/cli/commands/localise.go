package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/l10n"
)

func init() {
	Register(&Command{
		Name:        "localise",
		Aliases:     []string{"localize"},
		Description: "Replace {{key}} tokens in a file from a language bundle",
		Usage:       "<input> <bundle> <output> | --l10n DIR [--language CODE] <input> <output>",
		Run:         RunLocalise,
	})
}

// LocaliseOptions contains the configuration for the localise command.
type LocaliseOptions struct {
	// Root is the project whose config supplies the strict default.
	Root   string
	Input  string
	Output string
	// Bundle is a bundle file. When empty the bundle is resolved through
	// the index in L10NDir.
	Bundle   string
	L10NDir  string
	Language string
	Runtime  bool
	Strict   flags.BoolFlag
}

// RunLocalise executes the localise command with parsed arguments.
func RunLocalise(args []string) error {
	fs := newFlagSet("localise", "[flags] <input> <bundle> <output>")
	root := flags.AddRootFlag(fs)
	l10nDir := fs.String("l10n", "", "l10n folder containing index.json")
	language := fs.String("language", "", "language code to resolve through the index")
	encoding := fs.String("encoding", "utf-8", "input and output encoding")
	runtime := fs.Bool("runtime", false, "use the ||key|| delimiters understood in the browser")
	strict := flags.AddStrictFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	setupLogging(*verbose, *debug)
	if err := flags.ValidateEncoding(*encoding); err != nil {
		return err
	}

	opts := LocaliseOptions{
		Root:     *root,
		L10NDir:  *l10nDir,
		Language: *language,
		Runtime:  *runtime,
		Strict:   *strict,
	}
	switch {
	case opts.L10NDir != "" && len(pos) == 2:
		opts.Input, opts.Output = pos[0], pos[1]
	case opts.L10NDir == "" && len(pos) == 3:
		opts.Input, opts.Bundle, opts.Output = pos[0], pos[1], pos[2]
	default:
		fs.Usage()
		return fmt.Errorf("localise: wrong number of arguments")
	}
	return ExecuteLocalise(opts)
}

// ExecuteLocalise localises one file.
func ExecuteLocalise(opts LocaliseOptions) error {
	_, cfg, err := loadProject(opts.Root)
	if err != nil {
		return err
	}

	var bundle l10n.Bundle
	if opts.Bundle != "" {
		b, err := l10n.LoadBundle(opts.Bundle)
		if err != nil {
			return err
		}
		bundle = b
	} else {
		ix, err := l10n.LoadIndex(opts.L10NDir)
		if err != nil {
			return err
		}
		code, b, err := ix.Load(opts.Language)
		if err != nil {
			return err
		}
		if opts.Language != "" && code != opts.Language {
			fmt.Fprintf(out, "language %q not available, using %q\n", opts.Language, code)
		}
		bundle = b
	}

	input, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.Input, err)
	}
	engine := l10n.Engine{Bundle: bundle, Strict: opts.Strict.Or(cfg.Strict), Name: opts.Input}
	if opts.Runtime {
		engine.Delimiters = l10n.RuntimeDelimiters
	}
	text, err := engine.Localise(string(input))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(opts.Output), err)
	}
	if err := os.WriteFile(opts.Output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	fmt.Fprintf(out, "localised %s -> %s\n", opts.Input, opts.Output)
	return nil
}
