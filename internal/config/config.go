// Package config handles global Corvid configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global Corvid configuration.
type Config struct {
	// DefaultBoard is the name of the default board (from Boards map).
	DefaultBoard string `toml:"default_board"`

	// Boards is a map of board names to paths.
	Boards map[string]string `toml:"boards"`

	// StateFile overrides the state.toml location. Relative values resolve
	// against the config file's directory.
	StateFile string `toml:"state_file"`

	// Editor is the editor to use for card content (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// EditorMode controls how the editor is launched: auto, terminal, or gui.
	EditorMode string `toml:"editor_mode"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Search controls full-text search behavior.
	Search SearchConfig `toml:"search"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// SearchConfig represents full-text search preferences.
type SearchConfig struct {
	// EmptyQuery controls what an empty search query returns:
	// "none" (default) returns no results, "all" lists every card in tree order.
	EmptyQuery string `toml:"empty_query"`
}

// EmptyQueryAll reports whether an empty search query should list all cards.
func (c *Config) EmptyQueryAll() bool {
	return c.Search.EmptyQuery == "all"
}

// GetBoardPath returns the path for a named board.
// If name is empty, returns the default board path.
func (c *Config) GetBoardPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultBoard
	}

	if c.Boards != nil {
		if path, ok := c.Boards[name]; ok {
			return path, nil
		}
	}

	if name == "" {
		return "", fmt.Errorf("no default board configured")
	}

	return "", fmt.Errorf("board '%s' not found in config", name)
}

// GetDefaultBoardPath returns the default board path.
func (c *Config) GetDefaultBoardPath() (string, error) {
	return c.GetBoardPath("")
}

// ListBoards returns all configured boards with their paths.
func (c *Config) ListBoards() map[string]string {
	result := make(map[string]string)
	for name, path := range c.Boards {
		result[name] = path
	}
	return result
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/corvid/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "corvid", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "corvid", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/corvid/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "corvid", "config.toml"), nil
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Corvid Configuration

# Default board name (must exist in [boards] below)
# default_board = "personal"

# Named boards
# [boards]
# personal = "/path/to/your/board"
# work = "/path/to/work/board"

# Editor for card content (defaults to $EDITOR)
# editor = "code"
#
# How to launch the editor:
#   auto     - detect common terminal editors
#   terminal - always run in the foreground with TTY attached
#   gui      - always run in the background (non-blocking)
# editor_mode = "auto"

# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"

# What an empty search query returns: "none" or "all"
# [search]
# empty_query = "none"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}
