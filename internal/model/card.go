// Package model defines the core card data types shared across Corvid.
package model

// RootID is the id of the distinguished root card. The root always exists,
// has no parent, and is never deleted.
const RootID = "root"

// DefaultCardSize is the edge length (in canvas units) of a freshly
// created card.
const DefaultCardSize = 200

// Position is a card's coordinate in parent-relative canvas space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the card's visual footprint on the canvas.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSize returns the size assigned to new cards.
func DefaultSize() Size {
	return Size{Width: DefaultCardSize, Height: DefaultCardSize}
}

// Card is a single note on the canvas. It is both a content unit and a
// container: Children lists the ids of the cards nested inside it, in
// insertion order (the order drives display and default numbering).
//
// Cards are stored in a flat id-keyed mapping, never nested, so any card is
// an O(1) lookup regardless of depth. Parent is the owning card's id, empty
// only for the root.
type Card struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Content  Document `json:"content,omitempty"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	Children []string `json:"children"`
	Parent   string   `json:"parent,omitempty"`
}

// HasChild reports whether id appears in the card's children.
func (c Card) HasChild(id string) bool {
	for _, child := range c.Children {
		if child == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the card. Children and Content are copied so
// mutations on the clone never leak into prior state snapshots.
func (c Card) Clone() Card {
	out := c
	if c.Children != nil {
		out.Children = append([]string(nil), c.Children...)
	}
	out.Content = c.Content.Clone()
	return out
}
