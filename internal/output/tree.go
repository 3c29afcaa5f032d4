package output

import (
	"fmt"
	"strings"
)

// TreeNode represents an element in a tree structure for rendering
type TreeNode struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Label     string     `json:"label,omitempty"`
	Focusable bool       `json:"focusable,omitempty"`
	Order     int        `json:"order,omitempty"` // 1-based tab position, 0 when not in the tab order
	Disabled  bool       `json:"disabled,omitempty"`
	Hidden    bool       `json:"hidden,omitempty"`
	Children  []TreeNode `json:"children,omitempty"`
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth  int  // 0 = unlimited
	ShowKind  bool // Whether to show the element kind
	ShowOrder bool // Whether to show the tab position of focusable elements
}

// FormatOrder formats a tab position for display
func FormatOrder(order int) string {
	if order <= 0 {
		return ""
	}
	return fmt.Sprintf("[tab %d]", order)
}

// stateMark returns a marker for the element's focus state
func stateMark(n TreeNode) string {
	switch {
	case n.Hidden:
		return " \u2205" // ∅
	case n.Disabled:
		return " \u2717" // ✗
	case n.Focusable:
		return " \u25cf" // ●
	default:
		return ""
	}
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
// Useful for embedding trees in other output
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		var parts []string
		if opts.ShowKind {
			parts = append(parts, node.Kind)
		}
		parts = append(parts, node.ID)
		if node.Label != "" {
			parts[len(parts)-1] += ":"
			parts = append(parts, node.Label)
		}
		if opts.ShowOrder && node.Focusable {
			parts = append(parts, FormatOrder(node.Order))
		}

		line := prefix + connector + strings.Join(parts, " ") + stateMark(node)
		lines = append(lines, line)

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}

// RenderTabOrder lists the focusable elements of the trees in tab order
func RenderTabOrder(roots []TreeNode) []string {
	var focusables []TreeNode
	var collect func(nodes []TreeNode)
	collect = func(nodes []TreeNode) {
		for _, n := range nodes {
			if n.Focusable && n.Order > 0 {
				focusables = append(focusables, n)
			}
			collect(n.Children)
		}
	}
	collect(roots)

	lines := make([]string, len(focusables))
	for i, n := range focusables {
		lines[i] = fmt.Sprintf("  %2d. %s %s", n.Order, n.Kind, n.ID)
		if n.Label != "" {
			lines[i] += ": " + n.Label
		}
	}
	return lines
}
