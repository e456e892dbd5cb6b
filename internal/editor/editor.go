// Package editor launches the user's editor for card content.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/corvid/internal/config"
	"github.com/aidanlsb/corvid/internal/shellquote"
)

// terminalEditors are editors known to run inside the terminal; used by
// editor_mode "auto" to decide between blocking and background launch.
var terminalEditors = map[string]bool{
	"vi":    true,
	"vim":   true,
	"nvim":  true,
	"nano":  true,
	"emacs": true,
	"hx":    true,
	"helix": true,
	"kak":   true,
	"micro": true,
}

// ErrNoEditor indicates no editor is configured and $EDITOR is unset.
var ErrNoEditor = fmt.Errorf("no editor configured")

// launchesInTerminal decides whether the editor should run in the
// foreground with the TTY attached.
func launchesInTerminal(cfg *config.Config, editor string) bool {
	switch cfg.EditorMode {
	case "terminal":
		return true
	case "gui":
		return false
	}

	// auto: compound commands ("open -a Cursor") are GUI launches,
	// known terminal editors block.
	if strings.Contains(editor, " ") {
		return false
	}
	return terminalEditors[filepath.Base(editor)]
}

func command(editor, path string) *exec.Cmd {
	// Compound commands go through the shell so their arguments survive.
	if strings.Contains(editor, " ") {
		return exec.Command("sh", "-c", editor+" "+shellquote.Quote(path))
	}
	return exec.Command(editor, path)
}

// Open opens a file in the configured editor. Terminal editors run in the
// foreground and block until the user quits; GUI editors are started in the
// background. Returns whether the call blocked.
func Open(cfg *config.Config, path string) (blocked bool, err error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	editor := cfg.GetEditor()
	if editor == "" {
		return false, ErrNoEditor
	}

	cmd := command(editor, path)

	if launchesInTerminal(cfg, editor) && isatty.IsTerminal(os.Stdin.Fd()) {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return true, fmt.Errorf("editor '%s' failed: %w", editor, err)
		}
		return true, nil
	}

	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to launch editor '%s': %w", editor, err)
	}
	return false, nil
}

// EditTemp writes initial content to a temp file, opens it in the editor,
// and returns the edited bytes plus whether they differ from the input.
// The temp file is removed afterwards.
func EditTemp(cfg *config.Config, name string, initial []byte) (edited []byte, changed bool, err error) {
	tmp, err := os.CreateTemp("", "corvid-*-"+name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(initial); err != nil {
		tmp.Close()
		return nil, false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, false, err
	}

	blocked, err := Open(cfg, path)
	if err != nil {
		return nil, false, err
	}
	if !blocked {
		// A background editor gives us no completion signal; the caller
		// has to treat the buffer as unchanged.
		return initial, false, nil
	}

	edited, err = os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read edited file: %w", err)
	}

	return edited, string(edited) != string(initial), nil
}
