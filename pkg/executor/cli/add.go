package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/entrhq/promptpilot/pkg/prompt"
	"github.com/spf13/cobra"
)

// PromptFlags are the fields shared by add and edit.
type PromptFlags struct {
	Name     string
	Body     string
	BodyFile string
	Scope    string
}

func (f *PromptFlags) register(cmd *cobra.Command, scopeDefault string) {
	cmd.Flags().StringVarP(&f.Name, "name", "n", "", fmt.Sprintf("short name (max %d characters)", prompt.NameMaxLength))
	cmd.Flags().StringVarP(&f.Body, "body", "b", "", "detailed instruction")
	cmd.Flags().StringVarP(&f.BodyFile, "body-file", "f", "", "read the detailed instruction from a file ('-' for stdin)")
	cmd.Flags().StringVarP(&f.Scope, "scope", "s", scopeDefault, "global or project-specific")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")
}

// body returns the instruction from --body or --body-file and whether
// either was given.
func (f *PromptFlags) body(stdin io.Reader) (string, bool, error) {
	switch {
	case f.BodyFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, WrapExitError(ExitFailure, "cannot read stdin", err)
		}
		return string(data), true, nil
	case f.BodyFile != "":
		data, err := os.ReadFile(f.BodyFile)
		if err != nil {
			return "", false, WrapExitError(ExitCommandError, "cannot read --body-file", err)
		}
		return string(data), true, nil
	case f.Body != "":
		return f.Body, true, nil
	}
	return "", false, nil
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &PromptFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new prompt",
		Long: `Save a new prompt in the global or the project collection.

Names must be unique within a collection. A project prompt may reuse the
name of a global prompt; it then hides the global one.`,
		Example: `  promptpilot add --name review --body "Review this diff for bugs."
  git diff | promptpilot add --name from-stdin --body-file - --scope project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags.register(cmd, "global")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runAdd(rootOpts *RootOptions, flags *PromptFlags, stdin io.Reader, out io.Writer) error {
	scope, err := prompt.ParseScope(flags.Scope)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --scope", err)
	}
	body, _, err := flags.body(stdin)
	if err != nil {
		return err
	}

	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	attempt := prompt.Prompt{Name: flags.Name, Body: body, Scope: scope}
	p, err := prompt.New(flags.Name, body, scope)
	if err == nil {
		err = a.store.InsertOrUpdate(p, false, nil)
	}
	if err != nil {
		return saveError(err, attempt)
	}

	a.logger.Infof("Prompt %q saved (%s)", p.Name, p.Scope.Label())
	_, err = fmt.Fprintf(out, "Prompt %q saved to the %s collection.\n", p.Name, p.Scope.Label())
	return err
}
