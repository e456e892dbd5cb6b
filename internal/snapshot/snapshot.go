// Package snapshot persists board state to disk and loads it back.
//
// A board is a directory; the snapshot lives in board.json at its root as
// {path, isDarkMode, cards}. The derived search index lives alongside it
// under .corvid/ and is never part of the snapshot.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aidanlsb/corvid/internal/atomicfile"
	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
)

// FileName is the snapshot file inside a board directory.
const FileName = "board.json"

// DataDir is the board-local directory for derived data (search index).
const DataDir = ".corvid"

// file is the on-disk layout. Field names are part of the persisted format.
type file struct {
	Path     []string              `json:"path"`
	DarkMode bool                  `json:"isDarkMode"`
	Cards    map[string]model.Card `json:"cards"`
}

// Path returns the snapshot file path for a board directory.
func Path(boardPath string) string {
	return filepath.Join(boardPath, FileName)
}

// Exists reports whether boardPath contains a snapshot.
func Exists(boardPath string) bool {
	_, err := os.Stat(Path(boardPath))
	return err == nil
}

// Save writes the state to the board directory atomically. The in-memory
// state stays authoritative if this fails; callers report the error and
// carry on.
func Save(boardPath string, s board.State) error {
	out := file{Path: s.Path, DarkMode: s.DarkMode, Cards: s.Cards}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')
	if err := atomicfile.WriteFile(Path(boardPath), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads and validates the snapshot in boardPath. A missing file yields
// the minimal default state with no error. Corrupt or invalid snapshots are
// rejected with board.ErrInvalidSnapshot wrapped in the return.
func Load(boardPath string) (board.State, error) {
	data, err := os.ReadFile(Path(boardPath))
	if errors.Is(err, os.ErrNotExist) {
		return board.NewState(), nil
	}
	if err != nil {
		return board.State{}, fmt.Errorf("read snapshot: %w", err)
	}

	var in file
	if err := json.Unmarshal(data, &in); err != nil {
		return board.State{}, fmt.Errorf("%w: %v", board.ErrInvalidSnapshot, err)
	}

	s := board.State{Path: in.Path, DarkMode: in.DarkMode, Cards: in.Cards}

	// Missing sections fall back to defaults rather than failing load.
	if s.Cards == nil {
		s = board.NewState()
		s.DarkMode = in.DarkMode
		return s, nil
	}
	if len(s.Path) == 0 {
		s.Path = []string{model.RootID}
	}
	for id, c := range s.Cards {
		if c.Children == nil {
			c.Children = []string{}
			s.Cards[id] = c
		}
	}

	if err := s.Validate(); err != nil {
		return board.State{}, err
	}
	return s, nil
}

// LoadOrDefault loads the snapshot, failing closed: any corruption yields
// the minimal valid default state and recovered=true so the caller can warn
// instead of crashing.
func LoadOrDefault(boardPath string) (s board.State, recovered bool) {
	s, err := Load(boardPath)
	if err != nil {
		return board.NewState(), true
	}
	return s, false
}
