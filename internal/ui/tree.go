package ui

import "strings"

// TreeNode is one rendered node in a card tree.
type TreeNode struct {
	Label    string
	Meta     string
	Children []*TreeNode
}

// BreadcrumbSeparator joins path segments in breadcrumb output.
const BreadcrumbSeparator = " › "

// Breadcrumb renders a navigation path, accenting the final segment.
func Breadcrumb(parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, part := range parts {
		if i > 0 {
			sb.WriteString(Muted.Render(BreadcrumbSeparator))
		}
		if i == len(parts)-1 {
			sb.WriteString(AccentBold.Render(part))
		} else {
			sb.WriteString(part)
		}
	}
	return sb.String()
}

// RenderTree renders a node and its descendants with box-drawing guides.
func RenderTree(root *TreeNode) string {
	if root == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(root.Label)
	if root.Meta != "" {
		sb.WriteString(" ")
		sb.WriteString(Muted.Render(root.Meta))
	}
	sb.WriteString("\n")
	renderChildren(&sb, root.Children, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, children []*TreeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		sb.WriteString(prefix)
		sb.WriteString(Muted.Render(connector))
		sb.WriteString(child.Label)
		if child.Meta != "" {
			sb.WriteString(" ")
			sb.WriteString(Muted.Render(child.Meta))
		}
		sb.WriteString("\n")

		renderChildren(sb, child.Children, childPrefix)
	}
}
