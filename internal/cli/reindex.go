package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from the board snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		var spinner *ui.Spinner
		if !jsonOutput {
			spinner = ui.NewSpinner("Rebuilding index...")
			spinner.Start()
		}

		recreated, err := s.Reindex()
		if err != nil {
			if spinner != nil {
				spinner.Stop()
			}
			return handleError(errorCode(err), err, errorSuggestion(err))
		}

		count := s.State().Count()
		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{
				"cards":     count,
				"recreated": recreated,
			}, warnings, &Meta{Count: count})
			return nil
		}

		msg := fmt.Sprintf("Indexed %s", ui.Count(count, "card", "cards"))
		if recreated {
			msg += " (index recreated)"
		}
		spinner.StopWithSuccess(msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
