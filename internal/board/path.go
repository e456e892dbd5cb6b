package board

import (
	"fmt"

	"github.com/aidanlsb/corvid/internal/model"
)

// ZoomInto descends one level: cardID becomes the new focus. The target must
// be a child of the current focus.
func (s State) ZoomInto(cardID string) (State, error) {
	if _, ok := s.Cards[cardID]; !ok {
		return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	focus, ok := s.Cards[s.Focus()]
	if !ok || !focus.HasChild(cardID) {
		return State{}, fmt.Errorf("%w: %s", ErrNotChild, cardID)
	}

	path := append(s.clonePath(len(s.Path)), cardID)
	return State{Path: path, DarkMode: s.DarkMode, Cards: s.Cards}, nil
}

// ZoomOutTo truncates the path to its first depth elements. depth counts
// from 1 (the root); the current length is a no-op, anything outside
// [1, len(path)] is rejected.
func (s State) ZoomOutTo(depth int) (State, error) {
	if depth < 1 || depth > len(s.Path) {
		return State{}, fmt.Errorf("%w: %d (path length %d)", ErrInvalidDepth, depth, len(s.Path))
	}
	return State{Path: s.clonePath(depth), DarkMode: s.DarkMode, Cards: s.Cards}, nil
}

// SetFocus jumps directly to an arbitrary card, rebuilding the full path by
// walking parent links up to the root. Used for mention jumps and search
// results.
func (s State) SetFocus(cardID string) (State, error) {
	if _, ok := s.Cards[cardID]; !ok {
		return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}

	var reversed []string
	visited := map[string]bool{}
	for id := cardID; ; {
		if visited[id] {
			return State{}, fmt.Errorf("%w: parent cycle at %s", ErrInvalidSnapshot, id)
		}
		visited[id] = true
		reversed = append(reversed, id)
		card, ok := s.Cards[id]
		if !ok {
			return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
		}
		if card.Parent == "" {
			break
		}
		id = card.Parent
	}

	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return State{Path: path, DarkMode: s.DarkMode, Cards: s.Cards}, nil
}

// SetPath replaces the path wholesale. The input is untrusted (it usually
// comes from a route fragment or a persisted snapshot): every id is checked
// against the store and every consecutive pair must be parent/child. On any
// break the path downgrades to the deepest valid prefix instead of entering
// an invalid state; if even the first element is not the root the result is
// the root alone.
func (s State) SetPath(path []string) State {
	valid := []string{model.RootID}
	if len(path) > 0 && path[0] == model.RootID {
		for i := 1; i < len(path); i++ {
			parent, ok := s.Cards[path[i-1]]
			if !ok || !parent.HasChild(path[i]) {
				break
			}
			if _, ok := s.Cards[path[i]]; !ok {
				break
			}
			valid = append(valid, path[i])
		}
	}
	return State{Path: valid, DarkMode: s.DarkMode, Cards: s.Cards}
}
