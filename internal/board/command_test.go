package board

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aidanlsb/corvid/internal/model"
)

func TestApplyAddCardAtFocus(t *testing.T) {
	s := NewState()

	cmd := NewAddCard("", "", &model.Position{X: 10, Y: 20})
	next, err := Apply(s, cmd)
	if err != nil {
		t.Fatalf("Apply(AddCard): %v", err)
	}
	card, ok := next.Card(cmd.ID)
	if !ok {
		t.Fatalf("card %s not created", cmd.ID)
	}
	if card.Parent != model.RootID {
		t.Errorf("parent = %q, want focus (root)", card.Parent)
	}
	if card.Position != (model.Position{X: 10, Y: 20}) {
		t.Errorf("position = %+v", card.Position)
	}
}

func TestApplyRemoveCardDefaultsParent(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})

	next, err := Apply(s, RemoveCard{Card: "b"})
	if err != nil {
		t.Fatalf("Apply(RemoveCard): %v", err)
	}
	if _, ok := next.Card("b"); ok {
		t.Error("card b survived")
	}

	if _, err := Apply(s, RemoveCard{Card: "ghost"}); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("err = %v, want ErrCardNotFound", err)
	}
}

func TestApplyFailureLeavesStateUsable(t *testing.T) {
	s := buildTree(t, [][2]string{{model.RootID, "a"}})

	for _, cmd := range []Command{
		UpdateTitle{Card: "ghost", Title: "x"},
		RemoveCard{Card: "ghost"},
		ZoomToLevel{Card: "ghost"},
		ZoomOutToLevel{Depth: 99},
		SetLevel{Card: "ghost"},
	} {
		if _, err := Apply(s, cmd); err == nil {
			t.Errorf("Apply(%T) unexpectedly succeeded", cmd)
		}
	}

	// The prior snapshot is still fully intact and valid.
	if err := s.Validate(); err != nil {
		t.Errorf("state invalid after failed commands: %v", err)
	}
	if s.Count() != 2 {
		t.Errorf("card count = %d, want 2", s.Count())
	}
}

func TestApplyZoomSequence(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})

	s, err := Apply(s, ZoomToLevel{Card: "a"})
	if err != nil {
		t.Fatalf("zoom a: %v", err)
	}
	s, err = Apply(s, ZoomToLevel{Card: "b"})
	if err != nil {
		t.Fatalf("zoom b: %v", err)
	}
	s, err = Apply(s, ZoomOutToLevel{Depth: 2})
	if err != nil {
		t.Fatalf("zoom out: %v", err)
	}
	if !reflect.DeepEqual(s.Path, []string{model.RootID, "a"}) {
		t.Errorf("path = %v, want [root a]", s.Path)
	}
}

func TestApplyLoadState(t *testing.T) {
	s := NewState()
	loaded := buildTree(t, [][2]string{{model.RootID, "a"}})

	next, err := Apply(s, LoadState{State: loaded})
	if err != nil {
		t.Fatalf("Apply(LoadState): %v", err)
	}
	if next.Count() != 2 {
		t.Errorf("count = %d", next.Count())
	}

	// Malformed snapshots are rejected wholesale.
	corrupt := loaded
	corrupt.Cards = loaded.cloneCards()
	card := corrupt.Cards["a"]
	card.Children = []string{"dangling"}
	corrupt.Cards["a"] = card
	if _, err := Apply(s, LoadState{State: corrupt}); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestApplyToggleDarkMode(t *testing.T) {
	s := NewState()
	next, err := Apply(s, ToggleDarkMode{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !next.DarkMode {
		t.Error("dark mode not enabled")
	}
	next, err = Apply(next, ToggleDarkMode{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.DarkMode {
		t.Error("dark mode not toggled back")
	}
}

// Referential integrity holds across an arbitrary command sequence.
func TestCommandSequenceKeepsIntegrity(t *testing.T) {
	s := NewState()

	add := func(parent string) string {
		cmd := NewAddCard(parent, "", nil)
		next, err := Apply(s, cmd)
		if err != nil {
			t.Fatalf("AddCard under %s: %v", parent, err)
		}
		s = next
		return cmd.ID
	}

	a := add("")
	b := add(a)
	c := add(b)
	add(a)

	var err error
	s, err = Apply(s, SetLevel{Card: c})
	if err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	s, err = Apply(s, UpdateContent{Card: b, Content: model.PlainDocument("body")})
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	s, err = Apply(s, RemoveCard{Card: b, Parent: a})
	if err != nil {
		t.Fatalf("RemoveCard: %v", err)
	}
	s, err = Apply(s, SetPath{Path: []string{model.RootID, a}})
	if err != nil {
		t.Fatalf("SetPath: %v", err)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("integrity broken: %v", err)
	}
	// b's subtree is gone, a and its second child remain.
	if s.Count() != 3 {
		t.Errorf("count = %d, want 3", s.Count())
	}
}
