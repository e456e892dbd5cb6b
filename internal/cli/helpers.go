package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/cardlink"
	"github.com/aidanlsb/corvid/internal/session"
	"github.com/aidanlsb/corvid/internal/ui"
)

// openBoardSession opens a session for the resolved board, warning when a
// corrupt snapshot was replaced with a fresh board.
func openBoardSession() (*session.Session, []Warning, error) {
	s, recovered, err := session.Open(getBoardPath(), getConfig())
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if recovered {
		warnings = append(warnings, Warning{
			Code:    WarnSnapshotRecovered,
			Message: "board.json was unreadable; starting from an empty board",
		})
		if !jsonOutput {
			fmt.Fprintln(os.Stderr, ui.Warning("board.json was unreadable; starting from an empty board"))
		}
	}

	return s, warnings, nil
}

// dispatch applies a command through the session. The command itself can
// fail; a snapshot write failure cannot, it only adds a warning because the
// in-memory state already carries the change.
func dispatch(s *session.Session, cmd board.Command, warnings []Warning) ([]Warning, error) {
	if err := s.Dispatch(cmd); err != nil {
		return warnings, err
	}

	if err := s.SaveError(); err != nil {
		warnings = append(warnings, Warning{
			Code:    WarnSnapshotSaveFailed,
			Message: fmt.Sprintf("board not saved: %v", err),
		})
		if !jsonOutput {
			fmt.Fprintln(os.Stderr, ui.Warningf("board not saved: %v", err))
		}
	}
	return warnings, nil
}

// resolveCard turns a command argument into a card id. Exact ids win;
// otherwise a case-insensitive title match is accepted when unambiguous.
func resolveCard(s *session.Session, arg string) (string, error) {
	// A mention literal pasted from card content works as a card argument.
	if id, _, ok := cardlink.ParseExact(arg); ok {
		arg = id
	}

	state := s.State()
	if _, ok := state.Card(arg); ok {
		return arg, nil
	}

	var matches []string
	wanted := strings.ToLower(strings.TrimSpace(arg))
	for id, card := range state.Cards {
		if strings.ToLower(card.Title) == wanted {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: %s", board.ErrCardNotFound, arg)
	default:
		return "", fmt.Errorf("title '%s' matches %d cards, use an id", arg, len(matches))
	}
}

// cardJSON is the JSON shape for one card in command output.
type cardJSON struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Parent   string  `json:"parent,omitempty"`
	Children int     `json:"children"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

func cardToJSON(s board.State, id string) (cardJSON, bool) {
	card, ok := s.Card(id)
	if !ok {
		return cardJSON{}, false
	}
	return cardJSON{
		ID:       card.ID,
		Title:    card.Title,
		Parent:   card.Parent,
		Children: len(card.Children),
		X:        card.Position.X,
		Y:        card.Position.Y,
		Width:    card.Size.Width,
		Height:   card.Size.Height,
	}, true
}

// titleOrID returns the card's title, or its id when the title is empty.
func titleOrID(s board.State, id string) string {
	card, ok := s.Card(id)
	if !ok {
		return id
	}
	if strings.TrimSpace(card.Title) == "" {
		return card.ID
	}
	return card.Title
}

// breadcrumbTitles maps the navigation path to display titles.
func breadcrumbTitles(s board.State) []string {
	titles := make([]string, 0, len(s.Path))
	for _, id := range s.Path {
		titles = append(titles, titleOrID(s, id))
	}
	return titles
}
