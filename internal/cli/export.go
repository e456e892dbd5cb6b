package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/markdown"
	"github.com/aidanlsb/corvid/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export the board as a markdown tree",
	Long: `Export the board as a directory of markdown files.

The root card becomes index.md; each child becomes a numbered markdown
file, or a numbered directory with its own index.md when it has children
of its own. Card metadata is written as YAML frontmatter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		dir, err := filepath.Abs(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := markdown.Export(s.State(), dir); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		count := s.State().Count()
		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{
				"dir":   dir,
				"cards": count,
			}, warnings, &Meta{Count: count})
			return nil
		}
		fmt.Println(ui.Successf("Exported %s to %s", ui.Count(count, "card", "cards"), dir))
		return nil
	},
}

var importForce bool

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Replace the board with a previously exported markdown tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if getBoardPath() == "" {
			return handleErrorMsg(ErrBoardNotSpecified, "no board specified",
				"Pass --board, --board-path, or run inside a board directory")
		}

		dir, err := filepath.Abs(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		state, err := markdown.Import(dir)
		if err != nil {
			if errors.Is(err, markdown.ErrImportLayout) {
				return handleError(ErrInvalidInput, err, "Point import at a directory created by export")
			}
			return handleError(ErrFileReadError, err, "")
		}

		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		// Count > 1 means there is content beyond the root card.
		if s.State().Count() > 1 && !importForce && !jsonOutput {
			fmt.Println(ui.Warningf("This replaces the current board (%s).",
				ui.Count(s.State().Count(), "card", "cards")))
			if !confirm("Continue?") {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		// The imported tree goes through the reducer like any other change,
		// so it is validated and the index is refreshed with it.
		if warnings, err = dispatch(s, board.LoadState{State: state}, warnings); err != nil {
			return handleBoardError(err)
		}

		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{
				"dir":   dir,
				"cards": state.Count(),
			}, warnings, &Meta{Count: state.Count()})
			return nil
		}
		fmt.Println(ui.Successf("Imported %s from %s", ui.Count(state.Count(), "card", "cards"), dir))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Replace the board without confirmation")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
