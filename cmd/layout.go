package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marcus/modalfocus/internal/layout"
	"github.com/marcus/modalfocus/internal/output"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <file.json>",
	Short: "Lay out a dialog definition and print its element tree",
	Long: fmt.Sprintf(`Build the dialog described by a JSON file, open it on an empty %dx%d
screen and print the resulting element tree. Focusable elements are numbered
in tab order, which is the order Tab visits them while the dialog is open.`,
		layout.ScreenWidth, layout.ScreenHeight),
	Example: `  modalfocus layout confirm.json
  modalfocus layout confirm.json --max-depth 2 --json`,
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE:    runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().Int("max-depth", 0, "Limit tree depth (0 = unlimited)")
	layoutCmd.Flags().Bool("json", false, "Print the tree as JSON")
	layoutCmd.Flags().Bool("view", false, "Also print the rendered dialog")
}

func runLayout(cmd *cobra.Command, args []string) error {
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	asJSON, _ := cmd.Flags().GetBool("json")
	showView, _ := cmd.Flags().GetBool("view")

	def, err := layout.Load(args[0])
	if err != nil {
		return err
	}

	logger, closeLog, err := loggerFromConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	res := layout.Open(def, logger)
	logger.Debug("layout opened", "file", args[0], "focus", res.InitialFocus())

	w := cmd.OutOrStdout()
	if asJSON {
		return writeLayoutJSON(w, res)
	}
	printLayout(w, res, maxDepth, showView)
	return nil
}

func printLayout(w io.Writer, res *layout.Result, maxDepth int, showView bool) {
	tree := res.Tree()
	b := res.Modal.Bounds()

	fmt.Fprintf(w, "%s %q %dx%d at %d,%d\n", tree.ID, tree.Label, b.W, b.H, b.X, b.Y)
	fmt.Fprintln(w, output.RenderTree(tree, output.TreeRenderOptions{
		MaxDepth:  maxDepth,
		ShowKind:  true,
		ShowOrder: true,
	}))

	fmt.Fprintln(w)
	order := output.RenderTabOrder([]output.TreeNode{tree})
	if len(order) == 0 {
		fmt.Fprintln(w, "TAB ORDER: (none)")
	} else {
		fmt.Fprintln(w, "TAB ORDER:")
		for _, line := range order {
			fmt.Fprintln(w, line)
		}
	}

	focus := res.InitialFocus()
	if focus == "" {
		focus = "(none)"
	}
	fmt.Fprintf(w, "INITIAL FOCUS: %s\n", focus)

	if showView {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.View)
	}
}

type layoutJSON struct {
	Bounds       [4]int          `json:"bounds"`
	InitialFocus string          `json:"initial_focus"`
	Tree         output.TreeNode `json:"tree"`
}

func writeLayoutJSON(w io.Writer, res *layout.Result) error {
	b := res.Modal.Bounds()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(layoutJSON{
		Bounds:       [4]int{b.X, b.Y, b.W, b.H},
		InitialFocus: res.InitialFocus(),
		Tree:         res.Tree(),
	})
}
