package ui

import (
	"strings"
	"testing"
)

func TestBreadcrumb(t *testing.T) {
	if got := Breadcrumb(nil); got != "" {
		t.Errorf("empty breadcrumb = %q", got)
	}

	got := Breadcrumb([]string{"Board", "Garden", "Seeds"})
	for _, part := range []string{"Board", "Garden", "Seeds"} {
		if !strings.Contains(got, part) {
			t.Errorf("breadcrumb missing %q: %q", part, got)
		}
	}
}

func TestRenderTree(t *testing.T) {
	root := &TreeNode{
		Label: "Board",
		Children: []*TreeNode{
			{Label: "Garden", Meta: "(2 cards)", Children: []*TreeNode{
				{Label: "Seeds"},
				{Label: "Compost"},
			}},
			{Label: "Reading"},
		},
	}

	got := RenderTree(root)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[1], "Garden") || !strings.Contains(lines[1], "(2 cards)") {
		t.Errorf("line 1 = %q", lines[1])
	}
	// Compost is the last child of Garden, Reading the last child of root.
	if !strings.Contains(lines[2], "Seeds") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.Contains(lines[4], "Reading") {
		t.Errorf("line 4 = %q", lines[4])
	}

	if RenderTree(nil) != "" {
		t.Error("nil tree should render empty")
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	if got := TruncateWithEllipsis("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	got := TruncateWithEllipsis("a reasonably long sentence about gardens", 20)
	if len(got) > 20 {
		t.Errorf("truncated to %d chars: %q", len(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}
