package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marcus/modalfocus/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change settings in .modalfocus/config.json",
	GroupID: "system",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Keys:
  mouse          true or false
  log_file       path for JSON logs, empty to disable
  log_level      debug, info, warn or error
  modal_width    dialog width in cells, 0 for the default
  variant        default, danger, warning or info
  initial_focus  element ID focused when the dialog opens`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(getBaseDir(), key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SET %s = %s\n", key, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}

func printConfig(w io.Writer, cfg *config.Config) error {
	for _, key := range config.Keys {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "%-14s %s\n", key, value)
	}
	return nil
}
