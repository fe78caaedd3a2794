package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	Format string
	Scope  string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add prompts from a JSON or YAML file",
		Long: `Add every prompt in a file written by export (or a PromptPilot.json).

Each prompt is saved as if added by hand: invalid entries and names that
already exist in the target collection are skipped and reported. Use '-' to
read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, opts, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "json or yaml (default from the file extension)")
	cmd.Flags().StringVarP(&opts.Scope, "scope", "s", "", "save every prompt in this scope instead of its own")

	return cmd
}

func runImport(rootOpts *RootOptions, opts *ImportOptions, path string, stdin io.Reader, out io.Writer) error {
	format := prompt.FormatFromPath(path)
	if opts.Format != "" {
		var err error
		if format, err = prompt.ParseFormat(opts.Format); err != nil {
			return WrapExitError(ExitCommandError, "invalid --format", err)
		}
	}

	var override prompt.Scope
	if opts.Scope != "" {
		var err error
		if override, err = prompt.ParseScope(opts.Scope); err != nil {
			return WrapExitError(ExitCommandError, "invalid --scope", err)
		}
	}

	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot open import file", err)
		}
		defer f.Close()
		in = f
	}

	incoming, err := prompt.Import(in, format)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot read prompts", err)
	}

	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	var imported, skipped int
	var failure error
	for _, record := range incoming {
		if override != "" {
			record.Scope = override
		}

		p, err := prompt.New(record.Name, record.Body, record.Scope)
		if err == nil {
			err = a.store.InsertOrUpdate(p, false, nil)
		}
		if err != nil {
			skipped++
			fmt.Fprintf(out, "Skipped %q: %s\n", record.Name, prompt.Describe(err, record))
			if errors.Is(err, prompt.ErrWriteFailure) {
				failure = err
				break
			}
			continue
		}
		imported++
	}

	a.logger.Infof("Imported %d prompt(s) from %s, skipped %d", imported, path, skipped)
	fmt.Fprintf(out, "Imported %d prompt(s), skipped %d.\n", imported, skipped)
	if failure != nil {
		return WrapExitError(ExitFailure, "import stopped", failure)
	}
	return nil
}
