package commands

import (
	"context"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/config"
	"github.com/visualtopology/skadi-build/internal/serve"
)

func init() {
	Register(&Command{
		Name:        "serve",
		Description: "Serve the built site over HTTP for local testing",
		Usage:       "[--host H] [--port P] [--webroot DIR]",
		Run:         RunServe,
	})
}

// ServeOptions contains the configuration for the serve command. Zero
// values fall back to the project config.
type ServeOptions struct {
	Root    string
	Host    string
	Port    int
	WebRoot string
}

// RunServe executes the serve command with parsed arguments.
func RunServe(args []string) error {
	fs := newFlagSet("serve", "[flags]")
	root := flags.AddRootFlag(fs)
	host := fs.String("host", "", "interface to listen on (default from config)")
	port := flags.AddPortFlag(fs, 0)
	webroot := fs.String("webroot", "", "directory to serve, relative to the root")
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose, *debug)

	ctx, cancel := signalContext()
	defer cancel()
	return ExecuteServe(ctx, ServeOptions{Root: *root, Host: *host, Port: *port, WebRoot: *webroot})
}

// ExecuteServe serves until ctx is cancelled.
func ExecuteServe(ctx context.Context, opts ServeOptions) error {
	rootPath, cfg, err := loadProject(opts.Root)
	if err != nil {
		return err
	}
	sc := serve.Config{
		Host:    firstNonEmpty(opts.Host, cfg.Serve.Host),
		Port:    cfg.Serve.Port,
		WebRoot: config.Resolve(rootPath, firstNonEmpty(opts.WebRoot, cfg.Serve.WebRoot)),
	}
	if opts.Port != 0 {
		sc.Port = opts.Port
	}
	if err := flags.ValidatePort(sc.Port); err != nil {
		return err
	}
	return serve.Serve(ctx, sc, out)
}
