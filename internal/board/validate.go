package board

import (
	"fmt"

	"github.com/aidanlsb/corvid/internal/model"
)

// Validate checks the full set of structural invariants:
//
//   - the root card exists with no parent
//   - every map key matches its card's ID
//   - every non-root card has a parent that exists and lists it as a child
//     exactly once
//   - every children entry resolves, and the child points back at the parent
//   - every card is reachable from the root
//   - the path is a root-first chain of existing parent/child pairs
//
// It is used by LoadState (rejecting malformed snapshots) and by tests as
// the referential-integrity oracle.
func (s State) Validate() error {
	root, ok := s.Cards[model.RootID]
	if !ok {
		return fmt.Errorf("%w: missing root card", ErrInvalidSnapshot)
	}
	if root.Parent != "" {
		return fmt.Errorf("%w: root has parent %q", ErrInvalidSnapshot, root.Parent)
	}

	for id, card := range s.Cards {
		if card.ID != id {
			return fmt.Errorf("%w: card keyed %q has id %q", ErrInvalidSnapshot, id, card.ID)
		}
		if id != model.RootID {
			if card.Parent == "" {
				return fmt.Errorf("%w: card %s has no parent", ErrInvalidSnapshot, id)
			}
			parent, ok := s.Cards[card.Parent]
			if !ok {
				return fmt.Errorf("%w: card %s has missing parent %s", ErrInvalidSnapshot, id, card.Parent)
			}
			if n := countChild(parent.Children, id); n != 1 {
				return fmt.Errorf("%w: card %s appears %d times in parent %s", ErrInvalidSnapshot, id, n, card.Parent)
			}
		}
		for _, child := range card.Children {
			cc, ok := s.Cards[child]
			if !ok {
				return fmt.Errorf("%w: card %s references missing child %s", ErrInvalidSnapshot, id, child)
			}
			if cc.Parent != id {
				return fmt.Errorf("%w: child %s of %s claims parent %q", ErrInvalidSnapshot, child, id, cc.Parent)
			}
		}
	}

	// Consistent backrefs can still hide detached cycles; require everything
	// to hang off the root.
	reachable := map[string]bool{model.RootID: true}
	for _, id := range s.descendants(model.RootID) {
		reachable[id] = true
	}
	for id := range s.Cards {
		if !reachable[id] {
			return fmt.Errorf("%w: card %s unreachable from root", ErrInvalidSnapshot, id)
		}
	}

	if len(s.Path) == 0 || s.Path[0] != model.RootID {
		return fmt.Errorf("%w: path does not start at root", ErrInvalidSnapshot)
	}
	for i := 1; i < len(s.Path); i++ {
		parent, ok := s.Cards[s.Path[i-1]]
		if !ok || !parent.HasChild(s.Path[i]) {
			return fmt.Errorf("%w: path element %q is not a child of %q", ErrInvalidSnapshot, s.Path[i], s.Path[i-1])
		}
	}

	return nil
}

func countChild(children []string, id string) int {
	n := 0
	for _, c := range children {
		if c == id {
			n++
		}
	}
	return n
}
