package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewPathsCommand creates the paths command.
func NewPathsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where prompts, settings and logs are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(rootOpts, cmd.OutOrStdout())
		},
	}
}

func runPaths(rootOpts *RootOptions, out io.Writer) error {
	a, err := rootOpts.open()
	if err != nil {
		return err
	}
	defer a.close()

	global, project := a.store.Paths()
	if project == "" {
		project = "(no project)"
	}
	logPath := a.logger.LogPath()
	if logPath == "" {
		logPath = "(not logging to a file)"
	}

	fmt.Fprintf(out, "global:   %s\n", global)
	fmt.Fprintf(out, "project:  %s\n", project)
	fmt.Fprintf(out, "settings: %s\n", a.configPath)
	_, err = fmt.Fprintf(out, "log:      %s\n", logPath)
	return err
}
