package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
	"github.com/aidanlsb/corvid/internal/ui"
)

var (
	addParent string
	addAt     []float64
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a card under the focused card",
	Long: `Adds a new card. Without --parent the card lands under the card the
board is currently zoomed into. Untitled cards get a "Card N" title.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		title := ""
		if len(args) == 1 {
			title = strings.TrimSpace(args[0])
		}

		parent := ""
		if addParent != "" {
			parent, err = resolveCard(s, addParent)
			if err != nil {
				return handleBoardError(err)
			}
		}

		var pos *model.Position
		if len(addAt) == 2 {
			pos = &model.Position{X: addAt[0], Y: addAt[1]}
		} else if len(addAt) != 0 {
			return handleErrorMsg(ErrInvalidInput, "--at needs exactly two values: x,y", "")
		}

		cardCmd := board.NewAddCard(parent, title, pos)
		if warnings, err = dispatch(s, cardCmd, warnings); err != nil {
			return handleBoardError(err)
		}

		created, _ := cardToJSON(s.State(), cardCmd.ID)
		if jsonOutput {
			outputSuccessWithWarnings(created, warnings, &Meta{Route: s.Route()})
			return nil
		}

		fmt.Println(ui.Successf("Added %s %s", ui.CardTitle(titleOrID(s.State(), cardCmd.ID)), ui.CardID(cardCmd.ID)))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addParent, "parent", "p", "", "Parent card (defaults to the focused card)")
	addCmd.Flags().Float64SliceVar(&addAt, "at", nil, "Canvas position as x,y")
	rootCmd.AddCommand(addCmd)
}
