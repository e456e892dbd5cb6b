// Package session owns the live state of one open board: the current
// snapshot, the route into it, and the search index kept lazily in sync.
package session

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/config"
	"github.com/aidanlsb/corvid/internal/index"
	"github.com/aidanlsb/corvid/internal/route"
	"github.com/aidanlsb/corvid/internal/snapshot"
)

// Session binds a board directory to its in-memory state and search index.
// It is not safe for concurrent use.
type Session struct {
	boardPath string
	cfg       *config.Config

	state board.State

	db      *index.Database
	stale   bool
	saveErr error
}

// Open loads the board at boardPath. A missing snapshot yields a fresh
// board; a corrupt one is replaced by a fresh board with recovered=true so
// callers can warn. The search index is opened lazily on first query.
func Open(boardPath string, cfg *config.Config) (s *Session, recovered bool, err error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	state, recovered := snapshot.LoadOrDefault(boardPath)
	return &Session{
		boardPath: boardPath,
		cfg:       cfg,
		state:     state,
		stale:     true,
	}, recovered, nil
}

// State returns the current board snapshot.
func (s *Session) State() board.State {
	return s.state
}

// BoardPath returns the board directory this session is bound to.
func (s *Session) BoardPath() string {
	return s.boardPath
}

// Route returns the fragment encoding of the current navigation path.
func (s *Session) Route() string {
	return route.Encode(s.state.Path)
}

// Dispatch applies a command, adopts the resulting snapshot, and marks the
// search index stale. The snapshot is then written to disk; a write failure
// does not undo the command. The in-memory state stays authoritative and the
// failure is kept for SaveError so callers can surface it as a warning.
func (s *Session) Dispatch(cmd board.Command) error {
	next, err := board.Apply(s.state, cmd)
	if err != nil {
		return err
	}

	s.state = next
	s.stale = true

	if err := snapshot.Save(s.boardPath, next); err != nil {
		s.saveErr = fmt.Errorf("save board: %w", err)
	} else {
		s.saveErr = nil
	}
	return nil
}

// SaveError returns the persistence failure from the most recent Dispatch,
// or nil when the snapshot was written.
func (s *Session) SaveError() error {
	return s.saveErr
}

// Search runs a full-text query over the board. An empty query returns
// either nothing or every card in tree order, per the configured
// empty-query behavior.
func (s *Session) Search(query string, limit int) ([]index.SearchResult, error) {
	db, err := s.ensureIndex()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		if s.cfg.EmptyQueryAll() {
			return db.AllCards(limit)
		}
		return nil, nil
	}

	return db.Search(query, limit)
}

// CompleteMention suggests cards whose title starts with prefix.
func (s *Session) CompleteMention(prefix string, limit int) ([]index.Completion, error) {
	db, err := s.ensureIndex()
	if err != nil {
		return nil, err
	}
	return db.CompleteMention(prefix, limit)
}

// Backlinks returns every card whose content mentions the given card.
func (s *Session) Backlinks(cardID string) ([]index.BacklinkResult, error) {
	if _, ok := s.state.Card(cardID); !ok {
		return nil, fmt.Errorf("%w: %s", board.ErrCardNotFound, cardID)
	}

	db, err := s.ensureIndex()
	if err != nil {
		return nil, err
	}
	return db.Backlinks(cardID)
}

// Reindex forces a full rebuild of the search index, recreating the
// database when its schema is incompatible. Returns whether the database
// file was recreated.
func (s *Session) Reindex() (recreated bool, err error) {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}

	db, recreated, err := index.OpenWithRebuild(s.boardPath)
	if err != nil {
		return false, err
	}
	if err := db.Rebuild(s.state); err != nil {
		db.Close()
		return recreated, err
	}

	s.db = db
	s.stale = false
	return recreated, nil
}

// ensureIndex opens the index on first use and rebuilds it when commands
// have been applied since the last query.
func (s *Session) ensureIndex() (*index.Database, error) {
	if s.db == nil {
		db, err := index.Open(s.boardPath)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.stale = true
	}

	if s.stale {
		if err := s.db.Rebuild(s.state); err != nil {
			return nil, err
		}
		s.stale = false
	}

	return s.db, nil
}

// Close releases the session's index handle.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
