package commands

import (
	"fmt"

	"github.com/visualtopology/skadi-build/internal/cli/flags"
	"github.com/visualtopology/skadi-build/internal/validate"
	"github.com/visualtopology/skadi-build/schemas"
)

func init() {
	Register(&Command{
		Name:        "validate",
		Description: "Check a JSON document against a JSON schema",
		Usage:       "[--schema FILE | --builtin NAME] <document>",
		Run:         RunValidate,
	})
}

// RunValidate executes the validate command with parsed arguments.
func RunValidate(args []string) error {
	fs := newFlagSet("validate", "[--schema FILE | --builtin NAME] <document>")
	schema := fs.String("schema", "", "schema file")
	builtin := fs.String("builtin", schemas.Package, "embedded schema used when --schema is not given: plan, config or package")
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		fs.Usage()
		return fmt.Errorf("validate: expected one document")
	}
	setupLogging(*verbose, *debug)

	if *schema != "" {
		err = validate.File(pos[0], *schema)
	} else {
		err = validate.JSONC(pos[0], *builtin)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: valid\n", pos[0])
	return nil
}
