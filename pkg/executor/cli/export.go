package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Scope  string
	Format string
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write prompts as JSON or YAML",
		Long: `Write the merged view, or one collection with --scope, as JSON or YAML.

JSON output uses the same layout as PromptPilot.json. The format defaults to
the extension of --output, then to JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Scope, "scope", "s", "", "export only global or project-specific prompts")
	cmd.Flags().StringVar(&opts.Format, "format", "", "json or yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, out io.Writer) error {
	format := prompt.FormatFromPath(opts.Output)
	if opts.Format != "" {
		var err error
		if format, err = prompt.ParseFormat(opts.Format); err != nil {
			return WrapExitError(ExitCommandError, "invalid --format", err)
		}
	}

	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	var prompts []prompt.Prompt
	if opts.Scope == "" {
		prompts = prompt.SortByName(a.store.MergedView())
	} else {
		scope, err := prompt.ParseScope(opts.Scope)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --scope", err)
		}
		prompts = a.store.LoadCollection(scope)
	}

	var buf bytes.Buffer
	if err := prompt.Export(&buf, prompts, format); err != nil {
		return WrapExitError(ExitFailure, "cannot export prompts", err)
	}

	if opts.Output == "" {
		_, err := out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		return WrapExitError(ExitFailure, "cannot write export", err)
	}
	_, err = fmt.Fprintf(out, "Exported %d prompt(s) to %s.\n", len(prompts), opts.Output)
	return err
}
