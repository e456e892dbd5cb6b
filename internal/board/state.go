// Package board holds the card tree state and its mutation protocol.
//
// State is an immutable snapshot: every operation returns a fresh State and
// never modifies its receiver, so prior snapshots stay valid (the property
// the animation layer and persistence rely on). Copies share structure where
// safe; anything an operation touches is cloned first.
package board

import "github.com/aidanlsb/corvid/internal/model"

// State is one snapshot of the whole board: the flat card mapping, the
// navigation path from root to the focused card, and the theme flag (a
// presentation concern, carried here so it persists with the board).
type State struct {
	Path     []string
	DarkMode bool
	Cards    map[string]model.Card
}

// NewState returns the minimal valid state: a single root card, focused.
func NewState() State {
	return State{
		Path: []string{model.RootID},
		Cards: map[string]model.Card{
			model.RootID: {
				ID:       model.RootID,
				Children: []string{},
				Content:  model.DefaultDocument(),
			},
		},
	}
}

// Focus returns the id of the currently focused card (the last path element).
func (s State) Focus() string {
	if len(s.Path) == 0 {
		return model.RootID
	}
	return s.Path[len(s.Path)-1]
}

// VisibleChildren returns the child ids of the focused card, in display
// order. This is the set the canvas renders.
func (s State) VisibleChildren() []string {
	focus, ok := s.Cards[s.Focus()]
	if !ok {
		return nil
	}
	return focus.Children
}

// Card returns the card with the given id.
func (s State) Card(id string) (model.Card, bool) {
	c, ok := s.Cards[id]
	return c, ok
}

// Count returns the total number of cards in the store.
func (s State) Count() int { return len(s.Cards) }

// cloneCards shallow-copies the card mapping. Card values that are about to
// change must still be replaced wholesale (see updateCard); the shallow copy
// only buys structural sharing for untouched entries.
func (s State) cloneCards() map[string]model.Card {
	out := make(map[string]model.Card, len(s.Cards))
	for id, c := range s.Cards {
		out[id] = c
	}
	return out
}

// clonePath copies the first n path elements into a fresh slice so truncated
// paths never alias a prior snapshot's backing array.
func (s State) clonePath(n int) []string {
	return append([]string(nil), s.Path[:n]...)
}

// descendants returns the ids of every card in the subtree rooted at id,
// excluding id itself, depth-first over children. A visited set guards
// against cycles in corrupt stores so collection always terminates.
func (s State) descendants(id string) []string {
	var out []string
	visited := map[string]bool{id: true}
	stack := append([]string(nil), childrenOf(s, id)...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[next] {
			continue
		}
		visited[next] = true
		out = append(out, next)
		stack = append(stack, childrenOf(s, next)...)
	}
	return out
}

func childrenOf(s State, id string) []string {
	c, ok := s.Cards[id]
	if !ok {
		return nil
	}
	return c.Children
}
