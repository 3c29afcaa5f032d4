package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/marcus/modalfocus/internal/config"
	"github.com/marcus/modalfocus/pkg/monitor"
	"github.com/marcus/modalfocus/pkg/monitor/modal"
)

var errNotTerminal = errors.New("demo needs an interactive terminal on stdout")

// demoFlagKeys maps demo flags to the config keys they override.
var demoFlagKeys = map[string]string{
	"mouse":         "mouse",
	"log-file":      "log_file",
	"log-level":     "log_level",
	"width":         "modal_width",
	"variant":       "variant",
	"initial-focus": "initial_focus",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the interactive dialog demo",
	Long: `Open a full-screen demo with a background panel and a save dialog.

Press o or Enter on "Open dialog" to open it. Inside the dialog Tab and
Shift+Tab stay within the dialog, Escape or a click outside it dismisses it.
Flags override the values in .modalfocus/config.json for this run.`,
	GroupID: "core",
	RunE:    runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addDemoFlags(demoCmd.Flags())
}

func addDemoFlags(flags *pflag.FlagSet) {
	flags.Bool("mouse", true, "Enable mouse support")
	flags.String("log-file", "", "Write JSON logs to this file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.IntP("width", "w", 0, "Dialog width in cells (0 = default)")
	flags.String("variant", "", "Dialog style: default, danger, warning, info")
	flags.String("initial-focus", "", "Element focused when the dialog opens")
}

func runDemo(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd.Flags(), cfg); err != nil {
		return err
	}

	variant, err := modal.ParseVariant(cfg.Variant)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	model := monitor.NewModel(monitor.Options{
		Mouse:        cfg.Mouse,
		ModalWidth:   cfg.ModalWidth,
		Variant:      variant,
		InitialFocus: cfg.InitialFocus,
		Logger:       logger,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("demo started", "mouse", cfg.Mouse, "variant", variant.String(), "version", version)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logger.Error("demo failed", "err", err)
		return fmt.Errorf("run demo: %w", err)
	}
	logger.Info("demo finished")
	return nil
}

// applyFlagOverrides copies every flag set on the command line into cfg.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := demoFlagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if setErr := cfg.Set(key, f.Value.String()); setErr != nil {
			err = fmt.Errorf("--%s: %w", f.Name, setErr)
		}
	})
	return err
}
