package board

import (
	"fmt"

	"github.com/aidanlsb/corvid/internal/ids"
	"github.com/aidanlsb/corvid/internal/model"
)

// CreateCard adds a new child card under parentID and returns the new state
// and the created id. If id is empty a fresh one is allocated. The child is
// appended to the parent's children, so sibling order is insertion order.
//
// The default title is positional: "Card N" where N counts the parent's
// children including the new card.
func (s State) CreateCard(parentID, id, title string, pos *model.Position) (State, string, error) {
	parent, ok := s.Cards[parentID]
	if !ok {
		return State{}, "", fmt.Errorf("%w: %s", ErrCardNotFound, parentID)
	}

	if id == "" {
		id = ids.New()
		for _, taken := s.Cards[id]; taken; _, taken = s.Cards[id] {
			id = ids.New()
		}
	} else if _, taken := s.Cards[id]; taken {
		return State{}, "", fmt.Errorf("%w: %s", ErrCardExists, id)
	}

	if title == "" {
		title = fmt.Sprintf("Card %d", len(parent.Children)+1)
	}

	position := model.Position{}
	if pos != nil {
		position = *pos
	}

	cards := s.cloneCards()
	parent.Children = append(append([]string(nil), parent.Children...), id)
	cards[parentID] = parent
	cards[id] = model.Card{
		ID:       id,
		Title:    title,
		Content:  model.DefaultDocument(),
		Position: position,
		Size:     model.DefaultSize(),
		Children: []string{},
		Parent:   parentID,
	}

	return State{Path: s.Path, DarkMode: s.DarkMode, Cards: cards}, id, nil
}

// UpdateTitle replaces a card's title.
func (s State) UpdateTitle(id, title string) (State, error) {
	return s.updateCard(id, func(c *model.Card) { c.Title = title })
}

// UpdateContent replaces a card's document body. The document is cloned on
// the way in so the caller cannot alias the stored copy.
func (s State) UpdateContent(id string, doc model.Document) (State, error) {
	doc = doc.Clone()
	return s.updateCard(id, func(c *model.Card) { c.Content = doc })
}

// UpdatePosition replaces a card's canvas position.
func (s State) UpdatePosition(id string, pos model.Position) (State, error) {
	return s.updateCard(id, func(c *model.Card) { c.Position = pos })
}

// UpdateSize replaces a card's visual footprint.
func (s State) UpdateSize(id string, size model.Size) (State, error) {
	return s.updateCard(id, func(c *model.Card) { c.Size = size })
}

// updateCard replaces exactly one card with a mutated copy. Relations and
// every other card are untouched.
func (s State) updateCard(id string, mutate func(*model.Card)) (State, error) {
	card, ok := s.Cards[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	card = card.Clone()
	mutate(&card)

	cards := s.cloneCards()
	cards[id] = card
	return State{Path: s.Path, DarkMode: s.DarkMode, Cards: cards}, nil
}

// DeleteCard removes the card and its entire subtree, and prunes the id from
// parentID's children. parentID must be the card's actual parent. Either the
// whole subtree goes or, on error, nothing changes.
//
// If the removed subtree intersects the navigation path, the path is
// truncated to the nearest surviving ancestor.
func (s State) DeleteCard(cardID, parentID string) (State, error) {
	if cardID == model.RootID {
		return State{}, ErrRootDeletion
	}
	card, ok := s.Cards[cardID]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	parent, ok := s.Cards[parentID]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, parentID)
	}
	if card.Parent != parentID || !parent.HasChild(cardID) {
		return State{}, fmt.Errorf("%w: %s is not a child of %s", ErrCardNotFound, cardID, parentID)
	}

	removed := map[string]bool{cardID: true}
	for _, id := range s.descendants(cardID) {
		removed[id] = true
	}

	cards := s.cloneCards()
	for id := range removed {
		delete(cards, id)
	}

	pruned := make([]string, 0, len(parent.Children)-1)
	for _, child := range parent.Children {
		if child != cardID {
			pruned = append(pruned, child)
		}
	}
	parent.Children = pruned
	cards[parentID] = parent

	next := State{Path: s.Path, DarkMode: s.DarkMode, Cards: cards}
	next.Path = survivingPrefix(s, removed)
	return next, nil
}

// DeleteAllChildren removes every direct child's subtree in one batch,
// leaving the parent's children empty.
func (s State) DeleteAllChildren(parentID string) (State, error) {
	parent, ok := s.Cards[parentID]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, parentID)
	}

	removed := map[string]bool{}
	for _, child := range parent.Children {
		removed[child] = true
		for _, id := range s.descendants(child) {
			removed[id] = true
		}
	}

	cards := s.cloneCards()
	for id := range removed {
		delete(cards, id)
	}
	parent.Children = []string{}
	cards[parentID] = parent

	next := State{Path: s.Path, DarkMode: s.DarkMode, Cards: cards}
	next.Path = survivingPrefix(s, removed)
	return next, nil
}

// survivingPrefix truncates the path at the first removed element. Deleting
// a card that lies on the active path would otherwise leave the path
// dangling.
func survivingPrefix(s State, removed map[string]bool) []string {
	for i, id := range s.Path {
		if removed[id] {
			return s.clonePath(i)
		}
	}
	return s.Path
}
