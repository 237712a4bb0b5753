package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/llm"
	"github.com/visualtopology/skadi-build/internal/translate"
)

func init() {
	Register(&Command{
		Name:        "translate",
		Description: "Fill missing keys of a language bundle by machine translation",
		Usage:       "[--backend NAME] [--model M] <from-bundle> <to-bundle>",
		Run:         RunTranslate,
	})
}

// TranslateOptions contains the configuration for the translate command.
// Backend settings left empty come from the project config.
type TranslateOptions struct {
	Root    string
	From    string
	To      string
	Backend llm.Config
}

// RunTranslate executes the translate command with parsed arguments.
func RunTranslate(args []string) error {
	fs := newFlagSet("translate", "[flags] <from-bundle> <to-bundle>")
	root := flags.AddRootFlag(fs)
	backend := fs.String("backend", "", "ollama, openai or anthropic")
	model := fs.String("model", "", "model name")
	url := fs.String("url", "", "backend base URL")
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 2 {
		fs.Usage()
		return fmt.Errorf("translate: expected <from-bundle> <to-bundle>")
	}
	setupLogging(*verbose, *debug)

	ctx, cancel := signalContext()
	defer cancel()

	return ExecuteTranslate(ctx, TranslateOptions{
		Root:    *root,
		From:    pos[0],
		To:      pos[1],
		Backend: llm.Config{Backend: *backend, Model: *model, URL: *url},
	})
}

// ExecuteTranslate resolves the backend and fills the target bundle.
func ExecuteTranslate(ctx context.Context, opts TranslateOptions) error {
	_, cfg, err := loadProject(opts.Root)
	if err != nil {
		return err
	}
	conf := cfg.Translate.LLM()
	if opts.Backend.Backend != "" {
		// A backend named on the command line does not inherit the
		// config's model or URL, which belong to another backend.
		conf = llm.Config{Backend: opts.Backend.Backend, APIKey: conf.APIKey}
	}
	conf.Model = firstNonEmpty(opts.Backend.Model, conf.Model)
	conf.URL = firstNonEmpty(opts.Backend.URL, conf.URL)

	client, err := llm.NewClient(conf)
	if errors.Is(err, llm.ErrNotConfigured) {
		return fmt.Errorf("translate: no backend configured (use --backend or set translate.backend in skadi-build.jsonc)")
	}
	if err != nil {
		return err
	}

	res, err := translate.FillBundle(ctx, translate.NewLLMTranslator(client), opts.From, opts.To)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s: %d translated, %d kept, %d failed (%s %s)\n",
		res.From, res.To, res.Translated, res.Kept, len(res.Failed), client.Backend(), client.Model())
	return nil
}
