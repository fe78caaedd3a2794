package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a prompt",
		Long: `Delete a prompt from the collection it is shown from.

When a project prompt hides a global one, the project prompt is deleted and
the global prompt becomes visible again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, opts, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runDelete(rootOpts *RootOptions, opts *DeleteOptions, name string, stdin io.Reader, out io.Writer) error {
	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.lookup(name); err != nil {
		return err
	}

	if a.ui.ConfirmDelete && !opts.Yes {
		confirmed, err := confirm(stdin, out, prompt.DeleteConfirmMessage(name))
		if err != nil {
			return WrapExitError(ExitFailure, "cannot read confirmation", err)
		}
		if !confirmed {
			_, err := fmt.Fprintln(out, "Cancelled.")
			return err
		}
	}

	deleted, err := a.store.Delete(name)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("Failed to delete prompt %q", name), err)
	}
	if !deleted {
		return notFound(name)
	}

	a.logger.Infof("Prompt %q deleted", name)
	_, err = fmt.Fprintf(out, "Prompt %q deleted.\n", name)
	return err
}

// confirm asks question and reads a y/yes answer. End of input means no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	fmt.Fprintln(out)

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
