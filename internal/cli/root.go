// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/corvid/internal/config"
	"github.com/aidanlsb/corvid/internal/snapshot"
	"github.com/aidanlsb/corvid/internal/ui"
)

var (
	// Global flags
	boardName     string // Named board from config
	boardPathFlag string // Explicit path (rare)
	configPath    string
	statePathFlag string

	// Resolved values
	resolvedBoardPath  string
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cvd",
	Short: "Corvid - a zoomable card board in your terminal",
	Long: `Corvid keeps nested note cards on an infinite board and lets you zoom
into any card as if it were a board of its own. Boards are plain JSON on
disk with a full-text search index alongside.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip board resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "board", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "board") {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Resolve board path: explicit path > named board > active state >
		// default > current directory containing board.json
		if boardPathFlag != "" {
			resolvedBoardPath = boardPathFlag
		} else if boardName != "" {
			resolvedBoardPath, err = cfg.GetBoardPath(boardName)
			if err != nil {
				return fmt.Errorf("board '%s' not found\n\nRun 'cvd board list' to see configured boards", boardName)
			}
		} else {
			state, stateErr := config.LoadState(resolvedStatePath)
			if stateErr != nil {
				return fmt.Errorf("failed to load state: %w", stateErr)
			}

			activeBoardName := strings.TrimSpace(state.ActiveBoard)
			if activeBoardName != "" {
				resolvedBoardPath, err = cfg.GetBoardPath(activeBoardName)
				if err != nil {
					resolvedBoardPath, err = cfg.GetDefaultBoardPath()
					if err != nil {
						return fmt.Errorf("active board '%s' not found in config and no default board configured\n\nRun 'cvd board use <name>' or set default_board in config.toml", activeBoardName)
					}
					if !jsonOutput {
						fmt.Fprintf(os.Stderr, "warning: active board '%s' not found in config, falling back to default\n", activeBoardName)
					}
				}
			} else if resolvedBoardPath, err = cfg.GetDefaultBoardPath(); err != nil {
				if cwd, cwdErr := os.Getwd(); cwdErr == nil && snapshot.Exists(cwd) {
					resolvedBoardPath = cwd
				} else {
					return fmt.Errorf(`no board specified

Either:
  1. Use --board <name> (from config)
  2. Use --board-path /path/to/board
  3. Run 'cvd board use <name>' to set active_board in state.toml
  4. Set default_board in ~/.config/corvid/config.toml
  5. Run 'cvd init /path/to/new/board' to create one`)
				}
			}
		}

		// Verify board directory exists
		if _, err := os.Stat(resolvedBoardPath); os.IsNotExist(err) {
			return fmt.Errorf("board not found: %s\n\nRun 'cvd init %s' to create it", resolvedBoardPath, resolvedBoardPath)
		}

		resolvedBoardPath = filepath.Clean(resolvedBoardPath)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&boardName, "board", "b", "", "Named board from config")
	rootCmd.PersistentFlags().StringVar(&boardPathFlag, "board-path", "", "Explicit path to board directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getBoardPath returns the resolved board path.
func getBoardPath() string {
	return resolvedBoardPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

// getStatePath returns the resolved global state path.
func getStatePath() string {
	return resolvedStatePath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}
