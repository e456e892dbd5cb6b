package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
default_board = "personal"
editor = "nvim"

[boards]
personal = "/home/u/boards/personal"
work = "/home/u/boards/work"

[ui]
accent = "39"
code_theme = "dracula"

[search]
empty_query = "all"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultBoard != "personal" {
		t.Errorf("DefaultBoard = %q", cfg.DefaultBoard)
	}
	if cfg.Editor != "nvim" {
		t.Errorf("Editor = %q", cfg.Editor)
	}
	if cfg.Boards["work"] != "/home/u/boards/work" {
		t.Errorf("Boards[work] = %q", cfg.Boards["work"])
	}
	if cfg.UI.Accent != "39" || cfg.UI.CodeTheme != "dracula" {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if !cfg.EmptyQueryAll() {
		t.Error("EmptyQueryAll = false, want true")
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := writeConfig(t, "default_board = [broken")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetBoardPath(t *testing.T) {
	cfg := &Config{
		DefaultBoard: "personal",
		Boards: map[string]string{
			"personal": "/boards/personal",
			"work":     "/boards/work",
		},
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"named", "work", "/boards/work", false},
		{"default", "", "/boards/personal", false},
		{"unknown", "missing", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.GetBoardPath(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}

	empty := &Config{}
	if _, err := empty.GetDefaultBoardPath(); err == nil {
		t.Error("expected error for empty config")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := &Config{
		DefaultBoard: "personal",
		Boards:       map[string]string{"personal": "/boards/personal"},
		Editor:       "vim",
		EditorMode:   "terminal",
		UI:           UIConfig{Accent: "#ff8800"},
		Search:       SearchConfig{EmptyQuery: "all"},
	}

	if err := SaveTo(path, in); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	out, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if out.DefaultBoard != in.DefaultBoard || out.Editor != in.Editor ||
		out.EditorMode != in.EditorMode || out.UI.Accent != in.UI.Accent ||
		out.Search.EmptyQuery != in.Search.EmptyQuery {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestSaveToOmitsEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTo(path, &Config{DefaultBoard: "b", Boards: map[string]string{"b": "/b"}}); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, section := range []string{"[ui]", "[search]", "editor"} {
		if strings.Contains(string(data), section) {
			t.Errorf("saved config contains %q:\n%s", section, data)
		}
	}
}

func TestGetEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "emacs")

	cfg := &Config{Editor: "vim"}
	if got := cfg.GetEditor(); got != "vim" {
		t.Errorf("GetEditor = %q, want vim", got)
	}

	cfg = &Config{}
	if got := cfg.GetEditor(); got != "emacs" {
		t.Errorf("GetEditor = %q, want emacs", got)
	}
}
