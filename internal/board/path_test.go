package board

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aidanlsb/corvid/internal/model"
)

func TestZoomInto(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})

	s, err := s.ZoomInto("a")
	if err != nil {
		t.Fatalf("ZoomInto(a): %v", err)
	}
	if !reflect.DeepEqual(s.Path, []string{model.RootID, "a"}) {
		t.Errorf("path = %v", s.Path)
	}
	if s.Focus() != "a" {
		t.Errorf("focus = %q", s.Focus())
	}
	if got := s.VisibleChildren(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("visible children = %v, want [b]", got)
	}
}

func TestZoomIntoRejectsNonChild(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})

	// b exists but is a grandchild of the focus (root).
	if _, err := s.ZoomInto("b"); !errors.Is(err, ErrNotChild) {
		t.Errorf("grandchild zoom: err = %v, want ErrNotChild", err)
	}
	if _, err := s.ZoomInto("ghost"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing zoom: err = %v, want ErrCardNotFound", err)
	}
}

func TestZoomOutTo(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
	})
	s, err := s.SetFocus("b")
	if err != nil {
		t.Fatalf("SetFocus: %v", err)
	}

	// path = [root a b]; truncate to 2.
	next, err := s.ZoomOutTo(2)
	if err != nil {
		t.Fatalf("ZoomOutTo(2): %v", err)
	}
	if !reflect.DeepEqual(next.Path, []string{model.RootID, "a"}) {
		t.Errorf("path = %v, want [root a]", next.Path)
	}

	for _, depth := range []int{0, -1, 4} {
		if _, err := s.ZoomOutTo(depth); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("ZoomOutTo(%d): err = %v, want ErrInvalidDepth", depth, err)
		}
	}

	// Extending the truncated path must not clobber the longer snapshot's
	// path through a shared backing array.
	next, _, err = next.CreateCard("a", "a2", "a2", nil)
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	next, err = next.ZoomInto("a2")
	if err != nil {
		t.Fatalf("ZoomInto(a2): %v", err)
	}
	if !reflect.DeepEqual(s.Path, []string{model.RootID, "a", "b"}) {
		t.Errorf("prior path mutated: %v", s.Path)
	}
	if !reflect.DeepEqual(next.Path, []string{model.RootID, "a", "a2"}) {
		t.Errorf("extended path = %v", next.Path)
	}
}

func TestSetFocusWalksParentChain(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
		{"b", "c"},
	})

	next, err := s.SetFocus("c")
	if err != nil {
		t.Fatalf("SetFocus: %v", err)
	}
	if !reflect.DeepEqual(next.Path, []string{model.RootID, "a", "b", "c"}) {
		t.Errorf("path = %v", next.Path)
	}

	if _, err := s.SetFocus("ghost"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing card: err = %v", err)
	}
}

func TestSetFocusDetectsParentCycle(t *testing.T) {
	s := buildTree(t, [][2]string{{model.RootID, "a"}})

	// Corrupt the store directly: a points at itself.
	corrupt := s.cloneCards()
	card := corrupt["a"]
	card.Parent = "a"
	corrupt["a"] = card
	s.Cards = corrupt

	if _, err := s.SetFocus("a"); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("cycle: err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestSetPathDowngradesToValidPrefix(t *testing.T) {
	s := buildTree(t, [][2]string{
		{model.RootID, "a"},
		{"a", "b"},
		{model.RootID, "c"},
	})

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"full valid chain", []string{"root", "a", "b"}, []string{"root", "a", "b"}},
		{"broken tail dropped", []string{"root", "a", "ghost"}, []string{"root", "a"}},
		{"non-child link dropped", []string{"root", "a", "c"}, []string{"root", "a"}},
		{"skipped level dropped", []string{"root", "b"}, []string{"root"}},
		{"does not start at root", []string{"a", "b"}, []string{"root"}},
		{"empty input", nil, []string{"root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := s.SetPath(tt.in)
			if !reflect.DeepEqual(next.Path, tt.want) {
				t.Errorf("SetPath(%v) path = %v, want %v", tt.in, next.Path, tt.want)
			}
			if err := next.Validate(); err != nil {
				t.Errorf("resulting state invalid: %v", err)
			}
		})
	}
}
