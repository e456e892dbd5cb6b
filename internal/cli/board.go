package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/config"
	"github.com/aidanlsb/corvid/internal/snapshot"
	"github.com/aidanlsb/corvid/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage configured boards",
	Long: `Lists, registers, and switches between boards configured in
~/.config/corvid/config.toml.

Example config:
  default_board = "personal"

  [boards]
  personal = "/Users/you/boards/personal"
  work = "/Users/you/boards/work"`,
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadedCfg, cfgPath, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		statePath := config.ResolveStatePath(statePathFlag, cfgPath, loadedCfg)
		state, err := config.LoadState(statePath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		boards := loadedCfg.ListBoards()

		if jsonOutput {
			outputSuccess(map[string]interface{}{
				"boards":  boards,
				"default": loadedCfg.DefaultBoard,
				"active":  state.ActiveBoard,
			}, &Meta{Count: len(boards)})
			return nil
		}

		if len(boards) == 0 {
			fmt.Println("No boards configured.")
			fmt.Println()
			fmt.Println("Add boards to ~/.config/corvid/config.toml:")
			fmt.Println()
			fmt.Println("  default_board = \"personal\"")
			fmt.Println()
			fmt.Println("  [boards]")
			fmt.Println("  personal = \"/path/to/your/board\"")
			return nil
		}

		names := make([]string, 0, len(boards))
		for name := range boards {
			names = append(names, name)
		}
		sort.Strings(names)

		tbl := ui.NewTable(3)
		for _, name := range names {
			marker := " "
			if name == state.ActiveBoard {
				marker = ">"
			} else if name == loadedCfg.DefaultBoard {
				marker = "*"
			}
			tbl.AddRow(marker, name, boards[name])
		}
		fmt.Print(tbl.String())

		fmt.Println()
		fmt.Println(ui.Hint("> = active board, * = default board"))
		return nil
	},
}

var boardUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])

		loadedCfg, cfgPath, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if _, err := loadedCfg.GetBoardPath(name); err != nil {
			return handleErrorMsg(ErrBoardNotFound,
				fmt.Sprintf("board '%s' not found in config", name),
				"Run 'cvd board list' to see configured boards")
		}

		statePath := config.ResolveStatePath(statePathFlag, cfgPath, loadedCfg)
		state, err := config.LoadState(statePath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		state.ActiveBoard = name
		if err := config.SaveState(statePath, state); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{"active": name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Active board set to '%s'", name))
		return nil
	},
}

var boardAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register an existing board in config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		path := args[1]

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !snapshot.Exists(abs) {
			return handleErrorMsg(ErrBoardNotFound,
				fmt.Sprintf("no %s found at %s", snapshot.FileName, abs),
				"Run 'cvd init' to create a board there first")
		}

		loadedCfg, cfgPath, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if loadedCfg.Boards == nil {
			loadedCfg.Boards = map[string]string{}
		}
		loadedCfg.Boards[name] = abs
		if loadedCfg.DefaultBoard == "" {
			loadedCfg.DefaultBoard = name
		}
		if err := config.SaveTo(cfgPath, loadedCfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{"name": name, "path": abs}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Registered board '%s' at %s", name, abs))
		return nil
	},
}

var boardRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a board from config (files are untouched)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])

		loadedCfg, cfgPath, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if _, ok := loadedCfg.Boards[name]; !ok {
			return handleErrorMsg(ErrBoardNotFound,
				fmt.Sprintf("board '%s' not found in config", name), "")
		}

		delete(loadedCfg.Boards, name)
		if loadedCfg.DefaultBoard == name {
			loadedCfg.DefaultBoard = ""
		}
		if err := config.SaveTo(cfgPath, loadedCfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		statePath := config.ResolveStatePath(statePathFlag, cfgPath, loadedCfg)
		state, err := config.LoadState(statePath)
		if err == nil && state.ActiveBoard == name {
			state.ActiveBoard = ""
			_ = config.SaveState(statePath, state)
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{"removed": name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed board '%s' from config", name))
		return nil
	},
}

func init() {
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardUseCmd)
	boardCmd.AddCommand(boardAddCmd)
	boardCmd.AddCommand(boardRemoveCmd)
	rootCmd.AddCommand(boardCmd)
}
