package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/markdown"
	"github.com/aidanlsb/corvid/internal/ui"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the cards on the focused canvas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		state := s.State()
		children := state.VisibleChildren()

		if jsonOutput {
			cards := make([]cardJSON, 0, len(children))
			for _, id := range children {
				if c, ok := cardToJSON(state, id); ok {
					cards = append(cards, c)
				}
			}
			outputSuccessWithWarnings(cards, warnings, &Meta{Count: len(cards), Route: s.Route()})
			return nil
		}

		fmt.Println(ui.Breadcrumb(breadcrumbTitles(state)))
		if len(children) == 0 {
			fmt.Println(ui.Hint("  (empty)"))
			return nil
		}
		for _, id := range children {
			card, _ := state.Card(id)
			line := fmt.Sprintf("  %s %s", ui.CardTitle(titleOrID(state, id)), ui.CardID(id))
			if n := len(card.Children); n > 0 {
				line += " " + ui.Hint(ui.Count(n, "card", "cards"))
			}
			fmt.Println(line)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [card]",
	Short: "Show a card's details and rendered content",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		state := s.State()
		cardID := state.Focus()
		if len(args) == 1 {
			cardID, err = resolveCard(s, args[0])
			if err != nil {
				return handleBoardError(err)
			}
		}
		card, _ := state.Card(cardID)

		if jsonOutput {
			data, _ := cardToJSON(state, cardID)
			outputSuccessWithWarnings(map[string]interface{}{
				"card":     data,
				"content":  card.Content,
				"markdown": markdown.Render(card.Content),
			}, warnings, nil)
			return nil
		}

		fmt.Println(ui.Header(titleOrID(state, cardID)) + " " + ui.CardID(cardID))
		fmt.Println(ui.Hint(fmt.Sprintf("  at %g, %g  size %g x %g",
			card.Position.X, card.Position.Y, card.Size.Width, card.Size.Height)))
		if n := len(card.Children); n > 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("  contains %d %s", n, plural(n, "card", "cards"))))
		}

		if !card.Content.IsEmpty() {
			display := ui.NewDisplayContext()
			rendered, err := ui.RenderMarkdown(markdown.Render(card.Content), display.AvailableWidth(ui.MarkdownRenderMargin))
			if err != nil {
				// Fall back to the raw markdown.
				fmt.Println()
				fmt.Println(markdown.Render(card.Content))
				return nil
			}
			fmt.Print(rendered)
		}
		return nil
	},
}

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [card]",
	Short: "Show the card tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		state := s.State()
		rootID := state.Path[0]
		if len(args) == 1 {
			rootID, err = resolveCard(s, args[0])
			if err != nil {
				return handleBoardError(err)
			}
		}

		if jsonOutput {
			outputSuccessWithWarnings(treeJSON(state, rootID, treeDepth), warnings, &Meta{Count: state.Count()})
			return nil
		}

		fmt.Print(ui.RenderTree(buildTreeNode(state, rootID, treeDepth)))
		return nil
	},
}

func buildTreeNode(s board.State, id string, depth int) *ui.TreeNode {
	card, ok := s.Card(id)
	if !ok {
		return nil
	}

	node := &ui.TreeNode{Label: titleOrID(s, id), Meta: card.ID}
	if depth == 0 {
		if n := len(card.Children); n > 0 {
			node.Meta += " " + ui.Count(n, "card", "cards")
		}
		return node
	}
	for _, child := range card.Children {
		if childNode := buildTreeNode(s, child, depth-1); childNode != nil {
			node.Children = append(node.Children, childNode)
		}
	}
	return node
}

type treeNodeJSON struct {
	ID       string         `json:"id"`
	Title    string         `json:"title,omitempty"`
	Children []treeNodeJSON `json:"children,omitempty"`
}

func treeJSON(s board.State, id string, depth int) treeNodeJSON {
	card, _ := s.Card(id)
	node := treeNodeJSON{ID: id, Title: card.Title}
	if depth == 0 {
		return node
	}
	for _, child := range card.Children {
		if _, ok := s.Card(child); ok {
			node.Children = append(node.Children, treeJSON(s, child, depth-1))
		}
	}
	return node
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", -1, "Limit tree depth (-1 for unlimited)")
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(treeCmd)
}
