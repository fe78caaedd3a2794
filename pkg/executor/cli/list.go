package cli

import (
	"fmt"
	"io"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// ValidFormats defines the allowed list output formats.
var ValidFormats = []string{"text", "json"}

// ListOptions holds flags for the list command.
type ListOptions struct {
	Scope  string
	Match  string
	Format string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List prompts from the global and project collections",
		Long: `List the merged view of both collections, sorted by name.

Use --match to filter names with a glob such as 'review-*' and --scope to
show only one collection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Scope, "scope", "s", "", "only show global or project-specific prompts")
	cmd.Flags().StringVarP(&opts.Match, "match", "m", "", "glob matched against prompt names (case-insensitive)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	return cmd
}

func runList(rootOpts *RootOptions, opts *ListOptions, out io.Writer) error {
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	prompts := a.store.MergedView()
	if opts.Scope != "" {
		scope, err := prompt.ParseScope(opts.Scope)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --scope", err)
		}
		prompts = prompt.FilterScope(prompts, scope)
	}

	prompts, err = prompt.Filter(prompts, opts.Match)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --match pattern", err)
	}
	prompts = prompt.SortByName(prompts)

	if opts.Format == "json" {
		data, err := prompt.Encode(prompts)
		if err != nil {
			return WrapExitError(ExitFailure, "cannot encode prompts", err)
		}
		_, err = out.Write(data)
		return err
	}
	return writeTable(out, prompts)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
