package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/modalfocus/internal/suggest"
	"github.com/marcus/modalfocus/internal/workdir"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "modalfocus",
	Short: "Focus-trapping modal dialogs for the terminal",
	Long: `modalfocus - modal dialogs that keep keyboard focus inside while open.

Tab and Shift+Tab cycle through the dialog's focusable elements, Escape and
clicks on the backdrop dismiss it. Run 'modalfocus demo' to try it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", withCommandHint(err, os.Args[1:]))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Dialogs:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)
	rootCmd.SetFlagErrorFunc(flagErrorWithHint)
}

func initBaseDir() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(cwd)
}

// getBaseDir returns the directory holding .modalfocus/
func getBaseDir() string {
	return baseDir
}

// flagErrorWithHint adds a "did you mean" hint to unknown flag errors.
func flagErrorWithHint(cmd *cobra.Command, err error) error {
	const prefix = "unknown flag: "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return err
	}
	name := strings.TrimPrefix(msg, prefix)

	if hint := suggest.GetFlagHint(name); hint != "" {
		return fmt.Errorf("%w (try %s)", err, hint)
	}

	var valid []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		valid = append(valid, "--"+f.Name)
	})
	if hints := suggest.Flag(name, valid); len(hints) > 0 {
		return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hints, ", "))
	}
	return err
}

// withCommandHint suggests a command when err reports an unknown one.
func withCommandHint(err error, args []string) error {
	if !strings.HasPrefix(err.Error(), "unknown command") {
		return err
	}
	name := firstNonFlagArg(args)
	if name == "" {
		return err
	}

	var valid []string
	for _, c := range rootCmd.Commands() {
		if c.IsAvailableCommand() {
			valid = append(valid, c.Name())
		}
	}
	if hints := suggest.Word(name, valid); len(hints) > 0 {
		return fmt.Errorf("unknown command %q (did you mean %s?)", name, hints[0])
	}
	return err
}

// firstNonFlagArg returns the first argument that is not a flag.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
