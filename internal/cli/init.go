package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/config"
	"github.com/aidanlsb/corvid/internal/snapshot"
	"github.com/aidanlsb/corvid/internal/ui"
)

var (
	initName string
	initUse  bool
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a new board",
	Long: `Creates a new board at the specified path.

Creates:
  - board.json   (the board itself: cards and navigation path)
  - .corvid/     (search index directory)
  - .gitignore   (ignores derived files)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if snapshot.Exists(path) {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("board already exists at %s", path), "")
		}

		if err := os.MkdirAll(path, 0755); err != nil {
			return handleError(ErrFileWriteError,
				fmt.Errorf("failed to create board directory: %w", err), "")
		}

		if err := os.MkdirAll(filepath.Join(path, snapshot.DataDir), 0755); err != nil {
			return handleError(ErrFileWriteError,
				fmt.Errorf("failed to create %s directory: %w", snapshot.DataDir, err), "")
		}

		if err := snapshot.Save(path, board.NewState()); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if err := ensureGitignore(path); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		registered, err := registerBoard(path)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if jsonOutput {
			outputSuccess(map[string]interface{}{
				"path":       path,
				"registered": registered,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Initialized board at %s", path))
		if registered != "" {
			fmt.Println(ui.Successf("Registered as '%s'", registered))
		}
		fmt.Println()
		fmt.Println(ui.Hint("Add your first card with: cvd add \"My first card\""))
		return nil
	},
}

// ensureGitignore creates or extends .gitignore so the index stays out of
// version control.
func ensureGitignore(path string) error {
	gitignorePath := filepath.Join(path, ".gitignore")
	entry := snapshot.DataDir + "/"

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}
	if strings.Contains(existing, entry) {
		return nil
	}

	content := existing
	if content == "" {
		content = "# Corvid search index (rebuilt with 'cvd reindex')\n" + entry + "\n"
	} else {
		content = strings.TrimRight(content, "\n") + "\n\n# Corvid\n" + entry + "\n"
	}

	if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return nil
}

// registerBoard adds the board to config when --name is given, returning
// the registered name.
func registerBoard(path string) (string, error) {
	if initName == "" {
		return "", nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	loadedCfg, cfgPath, err := loadGlobalConfigWithPath()
	if err != nil {
		return "", err
	}
	if loadedCfg.Boards == nil {
		loadedCfg.Boards = map[string]string{}
	}
	loadedCfg.Boards[initName] = abs
	if loadedCfg.DefaultBoard == "" {
		loadedCfg.DefaultBoard = initName
	}

	if err := config.SaveTo(cfgPath, loadedCfg); err != nil {
		return "", err
	}

	if initUse {
		statePath := config.ResolveStatePath(statePathFlag, cfgPath, loadedCfg)
		state, err := config.LoadState(statePath)
		if err != nil {
			return "", err
		}
		state.ActiveBoard = initName
		if err := config.SaveState(statePath, state); err != nil {
			return "", err
		}
	}

	return initName, nil
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Register the board under this name in config")
	initCmd.Flags().BoolVar(&initUse, "use", false, "Also set the new board as active (requires --name)")
	rootCmd.AddCommand(initCmd)
}
