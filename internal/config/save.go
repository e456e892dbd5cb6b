package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/corvid/internal/atomicfile"
)

type persistedConfig struct {
	DefaultBoard *string              `toml:"default_board,omitempty"`
	StateFile    *string              `toml:"state_file,omitempty"`
	Boards       map[string]string    `toml:"boards,omitempty"`
	Editor       *string              `toml:"editor,omitempty"`
	EditorMode   *string              `toml:"editor_mode,omitempty"`
	UI           *persistedUISettings `toml:"ui,omitempty"`
	Search       *persistedSearch     `toml:"search,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

type persistedSearch struct {
	EmptyQuery *string `toml:"empty_query,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		DefaultBoard: nonEmptyPtr(cfg.DefaultBoard),
		StateFile:    nonEmptyPtr(cfg.StateFile),
		Editor:       nonEmptyPtr(cfg.Editor),
		EditorMode:   nonEmptyPtr(cfg.EditorMode),
	}
	if len(cfg.Boards) > 0 {
		out.Boards = cfg.Boards
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	if emptyQuery := nonEmptyPtr(cfg.Search.EmptyQuery); emptyQuery != nil {
		out.Search = &persistedSearch{EmptyQuery: emptyQuery}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
