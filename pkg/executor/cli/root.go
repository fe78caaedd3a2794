// Package cli implements the promptpilot command line: scripted access to
// the prompt store plus the entry point for the interactive menu.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/entrhq/promptpilot/pkg/executor/tui"
	"github.com/entrhq/promptpilot/pkg/logging"
	"github.com/entrhq/promptpilot/pkg/workspace"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "0.1.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Workspace  string
	NoProject  bool
	GlobalDir  string
	Verbose    bool

	clipboard func(string) error
	logger    *logging.Logger
	errOut    io.Writer
}

// Option adjusts the command tree, mainly for tests.
type Option func(*RootOptions)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(o *RootOptions) {
		o.clipboard = write
	}
}

// WithLogger replaces the session log file logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *RootOptions) {
		o.logger = l
	}
}

// NewRootCommand creates the root command. Without a subcommand it opens
// the interactive menu.
func NewRootCommand(options ...Option) *cobra.Command {
	opts := &RootOptions{clipboard: clipboard.WriteAll}
	for _, option := range options {
		option(opts)
	}

	cmd := &cobra.Command{
		Use:   "promptpilot",
		Short: "PromptPilot - reusable prompts for every project",
		Long: `Save, find and copy reusable prompts.

Prompts are kept in a global collection (~/.promptpilot/PromptPilot.json)
and in a per-project collection (<project>/.promptpilot/PromptPilot.json).
A project prompt hides a global prompt with the same name.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.errOut = cmd.ErrOrStderr()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "settings file (default ~/.promptpilot/config.json)")
	cmd.PersistentFlags().StringVarP(&opts.Workspace, "workspace", "w", "", "project directory (default: nearest project root above the current directory)")
	cmd.PersistentFlags().BoolVar(&opts.NoProject, "no-project", false, "ignore project prompts")
	cmd.PersistentFlags().StringVar(&opts.GlobalDir, "global-dir", "", "directory holding the global collection")
	cmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "write log entries to stderr instead of the session log file")
	cmd.MarkFlagsMutuallyExclusive("workspace", "no-project")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCopyCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewPathsCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, options ...Option) int {
	cmd := NewRootCommand(options...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return GetExitCode(err)
}

func runMenu(ctx context.Context, opts *RootOptions, out io.Writer) error {
	a, err := opts.open()
	if err != nil {
		return err
	}
	defer a.close()

	watcher, err := workspace.NewWatcher(workspace.DefaultDebounce)
	if err != nil {
		a.logger.Warnf("File watching disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	executorOpts := []tui.ExecutorOption{
		tui.WithSettings(a.ui),
		tui.WithClipboard(opts.clipboard),
		tui.WithLogger(a.logger.With("tui")),
		tui.WithOutput(out),
	}
	if watcher != nil {
		executorOpts = append(executorOpts, tui.WithWatcher(watcher))
	}

	if err := tui.NewExecutor(a.store, executorOpts...).Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "interactive menu failed", err)
	}
	return nil
}
