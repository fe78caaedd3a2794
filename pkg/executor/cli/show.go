package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	highlightLexer     = "markdown"
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	Plain bool
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a prompt's detailed instruction",
		Long: `Print the detailed instruction of a prompt.

On a terminal the text is highlighted as Markdown; use --plain to disable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "never highlight")

	return cmd
}

func runShow(rootOpts *RootOptions, opts *ShowOptions, name string, out io.Writer) error {
	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.lookup(name)
	if err != nil {
		return err
	}

	if !opts.Plain && isTerminal(out) {
		if err := quick.Highlight(out, p.Body+"\n", highlightLexer, highlightFormatter, highlightStyle); err == nil {
			return nil
		}
		a.logger.Warnf("Highlighting failed, printing plain text")
	}
	_, err = fmt.Fprintln(out, p.Body)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
