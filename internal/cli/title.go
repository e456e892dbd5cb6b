package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/ui"
)

var titleCmd = &cobra.Command{
	Use:   "title <card> <new-title>",
	Short: "Rename a card",
	Args:  cobra.ExactArgs(2),
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

		title := strings.TrimSpace(args[1])
		if warnings, err = dispatch(s, board.UpdateTitle{Card: cardID, Title: title}, warnings); err != nil {
			return handleBoardError(err)
		}

		if jsonOutput {
			updated, _ := cardToJSON(s.State(), cardID)
			outputSuccessWithWarnings(updated, warnings, nil)
			return nil
		}
		fmt.Println(ui.Successf("Renamed %s to %s", ui.CardID(cardID), ui.CardTitle(title)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
}
