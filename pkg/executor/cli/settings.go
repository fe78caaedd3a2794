package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/entrhq/promptpilot/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change the settings file.

Keys are addressed as <section>.<key>, for example:

  promptpilot config set ui.confirm_delete false
  promptpilot config set ui.toast_duration 5s
  promptpilot config set storage.project_dir .prompts`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(rootOpts, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(rootOpts, args[0], args[1], cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore and save the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigReset(rootOpts, cmd.OutOrStdout())
		},
	})

	return cmd
}

func runConfigShow(rootOpts *RootOptions, out io.Writer) error {
	if _, err := rootOpts.settings(); err != nil {
		return err
	}

	for _, section := range config.Global().GetSections() {
		data := section.Data()
		keys := make([]string, 0, len(data))
		for key := range data {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if _, err := fmt.Fprintf(out, "%s.%s = %v\n", section.ID(), key, data[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

func runConfigSet(rootOpts *RootOptions, key, value string, out io.Writer) error {
	configPath, err := rootOpts.settings()
	if err != nil {
		return err
	}

	manager := config.Global()
	if err := manager.Set(key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			return WrapExitError(ExitCommandError, "cannot change setting", err)
		}
		return WrapExitError(ExitCommandError, "rejected value", err)
	}
	if err := manager.SaveAll(); err != nil {
		return WrapExitError(ExitFailure, "cannot save settings to "+configPath, err)
	}

	_, err = fmt.Fprintf(out, "Set %s = %s.\n", key, value)
	return err
}

func runConfigReset(rootOpts *RootOptions, out io.Writer) error {
	configPath, err := rootOpts.settings()
	if err != nil {
		return err
	}

	manager := config.Global()
	manager.ResetAll()
	if err := manager.SaveAll(); err != nil {
		return WrapExitError(ExitFailure, "cannot save settings to "+configPath, err)
	}

	_, err = fmt.Fprintf(out, "Settings in %s reset to defaults.\n", configPath)
	return err
}
