// Package testutil provides reusable test utilities for Corvid integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
	"github.com/aidanlsb/corvid/internal/snapshot"
)

// TestBoard represents a temporary board directory for testing.
type TestBoard struct {
	Path  string
	t     *testing.T
	cards []seedCard
}

type seedCard struct {
	id      string
	parent  string
	title   string
	content string
}

// NewTestBoard creates a new test board builder.
// Call Build() to create the actual board directory.
func NewTestBoard(t *testing.T) *TestBoard {
	t.Helper()
	return &TestBoard{t: t}
}

// WithCard adds a card to the board. Parent must be a previously added card
// id, or empty for the root.
func (b *TestBoard) WithCard(id, parent, title, content string) *TestBoard {
	b.cards = append(b.cards, seedCard{id: id, parent: parent, title: title, content: content})
	return b
}

// Build creates the board directory with its seeded cards.
// Returns the TestBoard for method chaining.
func (b *TestBoard) Build() *TestBoard {
	b.t.Helper()

	b.Path = b.t.TempDir()
	s := board.NewState()
	for _, c := range b.cards {
		parent := c.parent
		if parent == "" {
			parent = model.RootID
		}
		add := board.NewAddCard(parent, c.title, nil)
		add.ID = c.id

		next, err := board.Apply(s, add)
		if err != nil {
			b.t.Fatalf("failed to seed card %s: %v", c.id, err)
		}
		if c.content != "" {
			next, err = board.Apply(next, board.UpdateContent{Card: c.id, Content: model.PlainDocument(c.content)})
			if err != nil {
				b.t.Fatalf("failed to seed content for %s: %v", c.id, err)
			}
		}
		s = next
	}

	if err := snapshot.Save(b.Path, s); err != nil {
		b.t.Fatalf("failed to write board snapshot: %v", err)
	}

	// An empty config keeps RunCLI off the developer's real one.
	if err := os.MkdirAll(filepath.Join(b.Path, ".corvid"), 0o755); err != nil {
		b.t.Fatalf("failed to create board metadata dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(b.Path, ".corvid", "config.toml"), nil, 0o644); err != nil {
		b.t.Fatalf("failed to write test config: %v", err)
	}
	return b
}

// State reloads the board snapshot from disk.
func (b *TestBoard) State() board.State {
	b.t.Helper()
	s, err := snapshot.Load(b.Path)
	if err != nil {
		b.t.Fatalf("failed to load board snapshot: %v", err)
	}
	return s
}

// SnapshotPath returns the path to the board.json file.
func (b *TestBoard) SnapshotPath() string {
	return filepath.Join(b.Path, "board.json")
}
