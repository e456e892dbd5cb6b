package editor

import (
	"errors"
	"testing"

	"github.com/aidanlsb/corvid/internal/config"
)

func TestLaunchesInTerminal(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		editor string
		want   bool
	}{
		{"auto vim", "", "vim", true},
		{"auto nvim path", "", "/usr/bin/nvim", true},
		{"auto gui editor", "", "code", false},
		{"auto compound command", "", "open -a Cursor", false},
		{"terminal forces blocking", "terminal", "code", true},
		{"gui forces background", "gui", "vim", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{EditorMode: tt.mode}
			if got := launchesInTerminal(cfg, tt.editor); got != tt.want {
				t.Errorf("launchesInTerminal(%q, %q) = %v, want %v", tt.mode, tt.editor, got, tt.want)
			}
		})
	}
}

func TestCommandQuoting(t *testing.T) {
	cmd := command("open -a Cursor", "/tmp/has space.md")
	if cmd.Args[0] != "sh" || cmd.Args[1] != "-c" {
		t.Fatalf("compound editor not run via shell: %v", cmd.Args)
	}
	if cmd.Args[2] != "open -a Cursor '/tmp/has space.md'" {
		t.Errorf("shell command = %q", cmd.Args[2])
	}

	cmd = command("vim", "/tmp/card.md")
	if cmd.Args[0] != "vim" || cmd.Args[1] != "/tmp/card.md" {
		t.Errorf("simple editor args = %v", cmd.Args)
	}
}

func TestOpenNoEditor(t *testing.T) {
	t.Setenv("EDITOR", "")

	_, err := Open(&config.Config{}, "/tmp/card.md")
	if !errors.Is(err, ErrNoEditor) {
		t.Errorf("err = %v, want ErrNoEditor", err)
	}
}
