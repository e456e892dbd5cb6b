package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
	"github.com/aidanlsb/corvid/internal/ui"
)

var moveCmd = &cobra.Command{
	Use:   "move <card> <x> <y>",
	Short: "Move a card on its parent's canvas",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, errX := strconv.ParseFloat(args[1], 64)
		y, errY := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil {
			return handleErrorMsg(ErrInvalidInput, "x and y must be numbers", "")
		}

		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		cardID, err := resolveCard(s, args[0])
		if err != nil {
			return handleBoardError(err)
		}

		if warnings, err = dispatch(s, board.UpdatePosition{Card: cardID, Position: model.Position{X: x, Y: y}}, warnings); err != nil {
			return handleBoardError(err)
		}

		if jsonOutput {
			updated, _ := cardToJSON(s.State(), cardID)
			outputSuccessWithWarnings(updated, warnings, nil)
			return nil
		}
		fmt.Println(ui.Successf("Moved %s to %g, %g", ui.CardID(cardID), x, y))
		return nil
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize <card> <width> <height>",
	Short: "Resize a card's footprint",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, errW := strconv.ParseFloat(args[1], 64)
		h, errH := strconv.ParseFloat(args[2], 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return handleErrorMsg(ErrInvalidInput, "width and height must be positive numbers", "")
		}

		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		cardID, err := resolveCard(s, args[0])
		if err != nil {
			return handleBoardError(err)
		}

		if warnings, err = dispatch(s, board.UpdateSize{Card: cardID, Size: model.Size{Width: w, Height: h}}, warnings); err != nil {
			return handleBoardError(err)
		}

		if jsonOutput {
			updated, _ := cardToJSON(s.State(), cardID)
			outputSuccessWithWarnings(updated, warnings, nil)
			return nil
		}
		fmt.Println(ui.Successf("Resized %s to %g x %g", ui.CardID(cardID), w, h))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resizeCmd)
}
