package cli

import (
	"fmt"
	"io"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &PromptFlags{}

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Change a prompt's name, instruction or scope",
		Long: `Change an existing prompt. Fields without a flag keep their value.

Changing --scope moves the prompt to the other collection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, flags, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags.register(cmd, "")

	return cmd
}

func runEdit(rootOpts *RootOptions, flags *PromptFlags, name string, stdin io.Reader, out io.Writer) error {
	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	previous, err := a.lookup(name)
	if err != nil {
		return err
	}

	updated := previous
	if flags.Name != "" {
		updated.Name = flags.Name
	}
	if flags.Scope != "" {
		if updated.Scope, err = prompt.ParseScope(flags.Scope); err != nil {
			return WrapExitError(ExitCommandError, "invalid --scope", err)
		}
	}
	body, ok, err := flags.body(stdin)
	if err != nil {
		return err
	}
	if ok {
		updated.Body = body
	}

	p, err := prompt.New(updated.Name, updated.Body, updated.Scope)
	if err == nil {
		err = a.store.InsertOrUpdate(p, true, &previous)
	}
	if err != nil {
		return saveError(err, updated)
	}

	a.logger.Infof("Prompt %q updated (%s)", p.Name, p.Scope.Label())
	_, err = fmt.Fprintf(out, "Prompt %q updated.\n", p.Name)
	return err
}
