package cli

import (
	"fmt"
	"io"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "copy <name>",
		Aliases: []string{"run", "cp"},
		Short:   "Copy a prompt's detailed instruction to the clipboard",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(rootOpts, args[0], cmd.OutOrStdout())
		},
	}
}

func runCopy(rootOpts *RootOptions, name string, out io.Writer) error {
	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.lookup(name)
	if err != nil {
		return err
	}

	if err := rootOpts.clipboard(p.Body); err != nil {
		a.logger.Errorf("Failed to copy prompt %q: %v", p.Name, err)
		return WrapExitError(ExitFailure, "cannot write to clipboard", err)
	}

	a.logger.Infof("Copied prompt %q", p.Name)
	_, err = fmt.Fprintln(out, prompt.CopiedMessage(p.Name))
	return err
}
