package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Toggle the board between light and dark mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		if warnings, err = dispatch(s, board.ToggleDarkMode{}, warnings); err != nil {
			return handleBoardError(err)
		}

		mode := "light"
		if s.State().DarkMode {
			mode = "dark"
		}

		if jsonOutput {
			outputSuccessWithWarnings(map[string]string{"mode": mode}, warnings, nil)
			return nil
		}
		fmt.Println(ui.Successf("Theme set to %s mode", mode))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
