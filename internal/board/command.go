package board

import (
	"fmt"

	"github.com/aidanlsb/corvid/internal/ids"
	"github.com/aidanlsb/corvid/internal/model"
)

// Command is the closed set of state transitions. Apply is the single
// authority through which all mutation happens; UI collaborators dispatch
// commands and consume the resulting snapshot read-only.
type Command interface {
	isCommand()
}

// AddCard creates a new child card. Parent defaults to the current focus
// when empty. ID is the id the new card will get; NewAddCard pre-allocates
// one so the dispatcher knows the id of the card it created.
type AddCard struct {
	ID       string
	Parent   string
	Title    string
	Position *model.Position
}

// NewAddCard builds an AddCard with a freshly allocated id.
func NewAddCard(parent, title string, pos *model.Position) AddCard {
	return AddCard{ID: ids.New(), Parent: parent, Title: title, Position: pos}
}

// UpdateTitle replaces one card's title.
type UpdateTitle struct {
	Card  string
	Title string
}

// UpdateContent replaces one card's document body.
type UpdateContent struct {
	Card    string
	Content model.Document
}

// UpdatePosition replaces one card's canvas position.
type UpdatePosition struct {
	Card     string
	Position model.Position
}

// UpdateSize replaces one card's footprint.
type UpdateSize struct {
	Card string
	Size model.Size
}

// RemoveCard deletes a card and its whole subtree. Parent must be the
// card's actual parent; it defaults to the card's recorded parent when
// empty.
type RemoveCard struct {
	Card   string
	Parent string
}

// RemoveAllCards deletes every child subtree of Parent. Parent defaults to
// the current focus when empty.
type RemoveAllCards struct {
	Parent string
}

// ZoomToLevel descends into a child of the current focus.
type ZoomToLevel struct {
	Card string
}

// ZoomOutToLevel truncates the path to Depth elements.
type ZoomOutToLevel struct {
	Depth int
}

// SetLevel jumps to an arbitrary card, recomputing the path via parent
// links.
type SetLevel struct {
	Card string
}

// SetPath replaces the path wholesale from untrusted input (route
// fragments, history navigation). Invalid tails are dropped, never
// rejected.
type SetPath struct {
	Path []string
}

// LoadState replaces the entire state with a loaded snapshot, after
// validation.
type LoadState struct {
	State State
}

// ToggleDarkMode flips the persisted theme flag.
type ToggleDarkMode struct{}

func (AddCard) isCommand()        {}
func (UpdateTitle) isCommand()    {}
func (UpdateContent) isCommand()  {}
func (UpdatePosition) isCommand() {}
func (UpdateSize) isCommand()     {}
func (RemoveCard) isCommand()     {}
func (RemoveAllCards) isCommand() {}
func (ZoomToLevel) isCommand()    {}
func (ZoomOutToLevel) isCommand() {}
func (SetLevel) isCommand()       {}
func (SetPath) isCommand()        {}
func (LoadState) isCommand()      {}
func (ToggleDarkMode) isCommand() {}

// Apply maps (state, command) to a new state. It never mutates its input:
// on success the result is a fresh snapshot, on failure the zero State is
// returned and the caller's snapshot is untouched. There is no
// partially-applied outcome.
func Apply(s State, cmd Command) (State, error) {
	switch c := cmd.(type) {
	case AddCard:
		parent := c.Parent
		if parent == "" {
			parent = s.Focus()
		}
		next, _, err := s.CreateCard(parent, c.ID, c.Title, c.Position)
		return next, err

	case UpdateTitle:
		return s.UpdateTitle(c.Card, c.Title)

	case UpdateContent:
		return s.UpdateContent(c.Card, c.Content)

	case UpdatePosition:
		return s.UpdatePosition(c.Card, c.Position)

	case UpdateSize:
		return s.UpdateSize(c.Card, c.Size)

	case RemoveCard:
		parent := c.Parent
		if parent == "" {
			card, ok := s.Cards[c.Card]
			if !ok {
				return State{}, fmt.Errorf("%w: %s", ErrCardNotFound, c.Card)
			}
			parent = card.Parent
		}
		return s.DeleteCard(c.Card, parent)

	case RemoveAllCards:
		parent := c.Parent
		if parent == "" {
			parent = s.Focus()
		}
		return s.DeleteAllChildren(parent)

	case ZoomToLevel:
		return s.ZoomInto(c.Card)

	case ZoomOutToLevel:
		return s.ZoomOutTo(c.Depth)

	case SetLevel:
		return s.SetFocus(c.Card)

	case SetPath:
		return s.SetPath(c.Path), nil

	case LoadState:
		if err := c.State.Validate(); err != nil {
			return State{}, err
		}
		return c.State, nil

	case ToggleDarkMode:
		return State{Path: s.Path, DarkMode: !s.DarkMode, Cards: s.Cards}, nil

	default:
		return State{}, fmt.Errorf("unknown command %T", cmd)
	}
}
