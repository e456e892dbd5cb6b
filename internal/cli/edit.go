package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/editor"
	"github.com/aidanlsb/corvid/internal/markdown"
	"github.com/aidanlsb/corvid/internal/slugs"
	"github.com/aidanlsb/corvid/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <card>",
	Short: "Edit a card's content in your editor",
	Long: `Opens the card's content as markdown in your configured editor and
saves the result back to the board when you quit.

Mentions of other cards are written as [[card-id|label]] links.
Piped input replaces the content directly:

  echo "new content" | cvd edit my-card`,
	Args: cobra.ExactArgs(1),
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

		var edited []byte
		changed := false

		if !isatty.IsTerminal(os.Stdin.Fd()) {
			// Piped content replaces the card body without an editor.
			edited, err = io.ReadAll(os.Stdin)
			if err != nil {
				return handleError(ErrFileReadError, err, "")
			}
			changed = true
		} else {
			initial := []byte(markdown.Render(card.Content))
			name := slugs.Title(card.Title) + ".md"
			edited, changed, err = editor.EditTemp(getConfig(), name, initial)
			if err != nil {
				return handleError(ErrInternal, err,
					"Set 'editor' in ~/.config/corvid/config.toml or $EDITOR")
			}
		}

		if !changed {
			if jsonOutput {
				outputSuccessWithWarnings(map[string]interface{}{
					"card":    cardID,
					"changed": false,
				}, warnings, nil)
				return nil
			}
			fmt.Println(ui.Hint("No changes."))
			return nil
		}

		doc := markdown.Parse(string(edited))
		if warnings, err = dispatch(s, board.UpdateContent{Card: cardID, Content: doc}, warnings); err != nil {
			return handleBoardError(err)
		}

		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{
				"card":    cardID,
				"changed": true,
			}, warnings, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated %s", ui.CardTitle(titleOrID(s.State(), cardID))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
