package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/route"
	"github.com/aidanlsb/corvid/internal/ui"
)

var zoomCmd = &cobra.Command{
	Use:   "zoom <card>",
	Short: "Zoom into a child of the focused card",
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

		if warnings, err = dispatch(s, board.ZoomToLevel{Card: cardID}, warnings); err != nil {
			return handleBoardError(err)
		}

		return reportNavigation(s.State(), s.Route(), warnings)
	},
}

var outCmd = &cobra.Command{
	Use:   "out [depth]",
	Short: "Zoom out one level, or to a specific depth",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		// Without an argument, step out one level, clamped at the root.
		// An explicit depth is passed through so out-of-range values are
		// rejected rather than silently corrected.
		depth := len(s.State().Path) - 1
		if depth < 1 {
			depth = 1
		}
		if len(args) == 1 {
			depth, err = strconv.Atoi(args[0])
			if err != nil {
				return handleErrorMsg(ErrInvalidInput, "depth must be a number", "")
			}
		}

		if warnings, err = dispatch(s, board.ZoomOutToLevel{Depth: depth}, warnings); err != nil {
			return handleBoardError(err)
		}

		return reportNavigation(s.State(), s.Route(), warnings)
	},
}

var jumpCmd = &cobra.Command{
	Use:   "jump <card>",
	Short: "Jump straight to any card on the board",
	Long:  `Refocuses the board on an arbitrary card, rebuilding the navigation path from its ancestry.`,
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

		if warnings, err = dispatch(s, board.SetLevel{Card: cardID}, warnings); err != nil {
			return handleBoardError(err)
		}

		return reportNavigation(s.State(), s.Route(), warnings)
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where the board is zoomed in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		return reportNavigation(s.State(), s.Route(), warnings)
	},
}

var routeCmd = &cobra.Command{
	Use:   "route [fragment]",
	Short: "Show the route fragment, or navigate to one",
	Long: `Without an argument, prints the current path as a route fragment like
/root/c-abc123de. With one, navigates there: unknown or detached tail
segments are dropped rather than rejected, so stale routes still land on
the deepest valid prefix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, warnings, err := openBoardSession()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer s.Close()

		if len(args) == 1 {
			if warnings, err = dispatch(s, board.SetPath{Path: route.Parse(args[0])}, warnings); err != nil {
				return handleBoardError(err)
			}
			return reportNavigation(s.State(), s.Route(), warnings)
		}

		if jsonOutput {
			outputSuccessWithWarnings(map[string]interface{}{"route": s.Route()}, warnings, nil)
			return nil
		}
		fmt.Println(ui.Route(s.Route()))
		return nil
	},
}

// reportNavigation prints the breadcrumb (or route in JSON mode) after a
// navigation command.
func reportNavigation(state board.State, routeStr string, warnings []Warning) error {
	if jsonOutput {
		outputSuccessWithWarnings(map[string]interface{}{
			"path":  state.Path,
			"focus": state.Focus(),
		}, warnings, &Meta{Route: routeStr})
		return nil
	}

	fmt.Println(ui.Breadcrumb(breadcrumbTitles(state)))
	return nil
}

func init() {
	rootCmd.AddCommand(zoomCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(jumpCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(routeCmd)
}
