package board

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aidanlsb/corvid/internal/model"
)

// buildTree creates a state with the given parent -> children edges applied
// in order. Ids double as titles for readability.
func buildTree(t *testing.T, edges [][2]string) State {
	t.Helper()
	s := NewState()
	for _, e := range edges {
		var err error
		s, _, err = s.CreateCard(e[0], e[1], e[1], nil)
		if err != nil {
			t.Fatalf("CreateCard(%s, %s): %v", e[0], e[1], err)
		}
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return s
}

func TestCreateCardUnderRoot(t *testing.T) {
	s := NewState()

	next, id, err := s.CreateCard(model.RootID, "", "", nil)
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	if next.Count() != 2 {
		t.Errorf("card count = %d, want 2", next.Count())
	}
	if got := next.Cards[model.RootID].Children; !reflect.DeepEqual(got, []string{id}) {
		t.Errorf("root children = %v, want [%s]", got, id)
	}
	card, ok := next.Card(id)
	if !ok {
		t.Fatalf("created card %s missing from store", id)
	}
	if card.Title != "Card 1" {
		t.Errorf("default title = %q, want %q", card.Title, "Card 1")
	}
	if card.Size != model.DefaultSize() {
		t.Errorf("default size = %+v", card.Size)
	}
	if card.Parent != model.RootID {
		t.Errorf("parent = %q, want root", card.Parent)
	}

	// Prior snapshot untouched.
	if s.Count() != 1 {
		t.Errorf("prior snapshot grew to %d cards", s.Count())
	}
	if len(s.Cards[model.RootID].Children) != 0 {
		t.Errorf("prior snapshot root children = %v", s.Cards[model.RootID].Children)
	}
}

func TestCreateCardDefaults(t *testing.T) {
	s := buildTree(t, [][2]string{{model.RootID, "a"}})

	pos := &model.Position{X: 40, Y: -12.5}
	next, id, err := s.CreateCard(model.RootID, "", "", pos)
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	card := next.Cards[id]
	if card.Title != "Card 2" {
		t.Errorf("title = %q, want Card 2 (second child)", card.Title)
	}
	if card.Position != *pos {
		t.Errorf("position = %+v, want %+v", card.Position, *pos)
	}
	if !card.Content.IsEmpty() {
		t.Errorf("new card content should be empty, got %+v", card.Content)
	}
}

func TestCreateCardErrors(t *testing.T) {
	s := buildTree(t, [][2]string{{model.RootID, "a"}})

	if _, _, err := s.CreateCard("ghost", "", "", nil); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing parent: err = %v, want ErrCardNotFound", err)
	}
	if _, _, err := s.CreateCard(model.RootID, "a", "", nil); !errors.Is(err, ErrCardExists) {
		t.Errorf("duplicate id: err = %v, want ErrCardExists", err)
	}
}

func TestUpdateOneProperty(t *testing.T) {
	s := buildTree(t, [][2]string{{model.RootID, "a"}})

	next, err := s.UpdateTitle("a", "Garden Notes")
	if err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}
	if next.Cards["a"].Title != "Garden Notes" {
		t.Errorf("title = %q", next.Cards["a"].Title)
	}
	if s.Cards["a"].Title != "a" {
		t.Errorf("prior snapshot title changed to %q", s.Cards["a"].Title)
	}

	next, err = next.UpdatePosition("a", model.Position{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}
	if next.Cards["a"].Position != (model.Position{X: 1, Y: 2}) {
		t.Errorf("position = %+v", next.Cards["a"].Position)
	}
	// Title survived the position update.
	if next.Cards["a"].Title != "Garden Notes" {
		t.Errorf("title lost on position update: %q", next.Cards["a"].Title)
	}

	next, err = next.UpdateSize("a", model.Size{Width: 300, Height: 150})
	if err != nil {
		t.Fatalf("UpdateSize: %v", err)
	}
	if next.Cards["a"].Size != (model.Size{Width: 300, Height: 150}) {
		t.Errorf("size = %+v", next.Cards["a"].Size)
	}

	doc := model.PlainDocument("hello")
	next, err = next.UpdateContent("a", doc)
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if got := next.Cards["a"].Content.PlainText(); got != "hello" {
		t.Errorf("content text = %q", got)
	}
	// Caller's document is not aliased by the store.
	doc[0].Children[0].Text = "mutated"
	if got := next.Cards["a"].Content.PlainText(); got != "hello" {
		t.Errorf("stored content aliased caller's document: %q", got)
	}

	if _, err := next.UpdateTitle("ghost", "x"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("update missing card: err = %v", err)
	}
}

func TestDeleteCardRemovesSibling(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "first"},
		{model.RootID, "second"},
	})

	next, err := s.DeleteCard("first", model.RootID)
	if err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if got := next.Cards[model.RootID].Children; !reflect.DeepEqual(got, []string{"second"}) {
		t.Errorf("root children = %v, want [second]", got)
	}
	if _, ok := next.Card("first"); ok {
		t.Error("deleted card still present")
	}
	if err := next.Validate(); err != nil {
		t.Errorf("state invalid after delete: %v", err)
	}
}

func TestDeleteCardCascades(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "x"},
		{"x", "y"},
		{"y", "z"},
		{model.RootID, "keep"},
	})

	before := s.Count()
	next, err := s.DeleteCard("x", model.RootID)
	if err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	// Exactly {x} and its descendants are gone.
	if got, want := before-next.Count(), 3; got != want {
		t.Errorf("removed %d cards, want %d", got, want)
	}
	for _, id := range []string{"x", "y", "z"} {
		if _, ok := next.Card(id); ok {
			t.Errorf("card %s survived cascading delete", id)
		}
	}
	if _, ok := next.Card("keep"); !ok {
		t.Error("unrelated card removed")
	}
	if err := next.Validate(); err != nil {
		t.Errorf("state invalid after cascade: %v", err)
	}
}

func TestDeleteCardErrors(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})

	if _, err := s.DeleteCard("ghost", model.RootID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing card: err = %v", err)
	}
	if _, err := s.DeleteCard("b", model.RootID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("wrong parent: err = %v", err)
	}
	if _, err := s.DeleteCard(model.RootID, model.RootID); !errors.Is(err, ErrRootDeletion) {
		t.Errorf("root delete: err = %v", err)
	}

	// Failed deletes leave everything in place.
	if s.Count() != 3 {
		t.Errorf("card count changed on failed delete: %d", s.Count())
	}
}

func TestDeleteTruncatesPath(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
		{"b", "c"},
	})
	s, err := s.SetFocus("c")
	if err != nil {
		t.Fatalf("SetFocus: %v", err)
	}

	// Deleting b (an ancestor on the path) must pull focus back to a.
	next, err := s.DeleteCard("b", "a")
	if err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if !reflect.DeepEqual(next.Path, []string{model.RootID, "a"}) {
		t.Errorf("path = %v, want [root a]", next.Path)
	}
	if err := next.Validate(); err != nil {
		t.Errorf("state invalid: %v", err)
	}
}

func TestDeleteAllChildren(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "x"},
		{"x", "y"},
		{"y", "z"},
	})

	next, err := s.DeleteAllChildren(model.RootID)
	if err != nil {
		t.Fatalf("DeleteAllChildren: %v", err)
	}
	if next.Count() != 1 {
		t.Errorf("card count = %d, want only root", next.Count())
	}
	if got := next.Cards[model.RootID].Children; len(got) != 0 {
		t.Errorf("root children = %v, want empty", got)
	}
	for _, id := range []string{"x", "y", "z"} {
		if _, ok := next.Card(id); ok {
			t.Errorf("card %s survived", id)
		}
	}

	if _, err := s.DeleteAllChildren("ghost"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing parent: err = %v", err)
	}
}

func TestDeleteAllChildrenTruncatesPath(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})
	s, err := s.SetFocus("b")
	if err != nil {
		t.Fatalf("SetFocus: %v", err)
	}

	next, err := s.DeleteAllChildren(model.RootID)
	if err != nil {
		t.Fatalf("DeleteAllChildren: %v", err)
	}
	if !reflect.DeepEqual(next.Path, []string{model.RootID}) {
		t.Errorf("path = %v, want [root]", next.Path)
	}
}
