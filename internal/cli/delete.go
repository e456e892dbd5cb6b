package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/ui"
)

var (
	rmForce    bool
	clearForce bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <card>",
	Short: "Delete a card and everything nested inside it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		cardID, err := resolveCard(s, args[0])
		if err != nil {
			return handleBoardError(err)
		}
		card, _ := s.State().Card(cardID)

		descendants := s.State().Count() - countAfterRemoval(s.State(), cardID)
		if !rmForce && !jsonOutput {
			prompt := fmt.Sprintf("Delete '%s'", titleOrID(s.State(), cardID))
			if descendants > 1 {
				prompt += fmt.Sprintf(" and %d nested cards", descendants-1)
			}
			if !confirm(prompt + "?") {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		pathBefore := len(s.State().Path)
		if warnings, err = dispatch(s, board.RemoveCard{Card: cardID, Parent: card.Parent}, warnings); err != nil {
			return handleBoardError(err)
		}
		if len(s.State().Path) < pathBefore {
			warnings = append(warnings, Warning{
				Code:    WarnPathTruncated,
				Message: "the focused card was deleted; zoomed out to the nearest surviving card",
			})
		}

		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{
				"deleted": cardID,
				"cards":   descendants,
			}, warnings, &Meta{Route: s.Route()})
			return nil
		}
		fmt.Println(ui.Successf("Deleted %s %s", titleOrID(s.State(), cardID), ui.Count(descendants, "card", "cards")))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [card]",
	Short: "Delete every card nested under a card",
	Long:  `Empties a card, removing all of its children and their subtrees. Without an argument the focused card is cleared.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		parent := s.State().Focus()
		if len(args) == 1 {
			parent, err = resolveCard(s, args[0])
			if err != nil {
				return handleBoardError(err)
			}
		}

		card, _ := s.State().Card(parent)
		if len(card.Children) == 0 {
			if jsonOutput {
				outputSuccessWithWarnings(map[string]interface{}{"cleared": parent, "cards": 0}, warnings, nil)
				return nil
			}
			fmt.Println(ui.Hint("Nothing to clear."))
			return nil
		}

		before := s.State().Count()
		if !clearForce && !jsonOutput {
			if !confirm(fmt.Sprintf("Clear everything inside '%s'?", titleOrID(s.State(), parent))) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if warnings, err = dispatch(s, board.RemoveAllCards{Parent: parent}, warnings); err != nil {
			return handleBoardError(err)
		}
		removed := before - s.State().Count()

		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{
				"cleared": parent,
				"cards":   removed,
			}, warnings, &Meta{Route: s.Route()})
			return nil
		}
		fmt.Println(ui.Successf("Cleared %s %s", titleOrID(s.State(), parent), ui.Count(removed, "card", "cards")))
		return nil
	},
}

// countAfterRemoval simulates the removal to report how many cards go.
func countAfterRemoval(state board.State, cardID string) int {
	card, ok := state.Card(cardID)
	if !ok {
		return state.Count()
	}
	next, err := state.DeleteCard(cardID, card.Parent)
	if err != nil {
		return state.Count()
	}
	return next.Count()
}

// confirm asks a yes/no question on stderr and reads one line.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Skip the confirmation prompt")
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(clearCmd)
}
