package cli

import (
	"errors"
	"testing"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/config"
	"github.com/aidanlsb/corvid/internal/model"
	"github.com/aidanlsb/corvid/internal/session"
	"github.com/aidanlsb/corvid/internal/snapshot"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()

	s := board.NewState()
	for _, c := range []struct{ id, title string }{
		{"garden", "Garden Notes"},
		{"seeds", "Seed Order"},
		{"seeds2", "seed order"},
	} {
		add := board.AddCard{ID: c.id, Parent: model.RootID, Title: c.title}
		next, err := board.Apply(s, add)
		if err != nil {
			t.Fatalf("seed %s: %v", c.id, err)
		}
		s = next
	}

	dir := t.TempDir()
	if err := snapshot.Save(dir, s); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	sess, _, err := session.Open(dir, &config.Config{})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func TestResolveCardByID(t *testing.T) {
	s := testSession(t)
	got, err := resolveCard(s, "garden")
	if err != nil {
		t.Fatal(err)
	}
	if got != "garden" {
		t.Fatalf("resolveCard = %q, want garden", got)
	}
}

func TestResolveCardByTitle(t *testing.T) {
	s := testSession(t)
	got, err := resolveCard(s, "Garden Notes")
	if err != nil {
		t.Fatal(err)
	}
	if got != "garden" {
		t.Fatalf("resolveCard = %q, want garden", got)
	}
}

func TestResolveCardMentionLiteral(t *testing.T) {
	s := testSession(t)
	for _, arg := range []string{"[[garden]]", "[[garden|Garden Notes]]"} {
		got, err := resolveCard(s, arg)
		if err != nil {
			t.Fatalf("resolveCard(%q): %v", arg, err)
		}
		if got != "garden" {
			t.Fatalf("resolveCard(%q) = %q, want garden", arg, got)
		}
	}
}

func TestResolveCardAmbiguousTitle(t *testing.T) {
	s := testSession(t)
	// "Seed Order" and "seed order" both match case-insensitively.
	if _, err := resolveCard(s, "SEED ORDER"); err == nil {
		t.Fatal("expected ambiguity error")
	}
}

func TestResolveCardMissing(t *testing.T) {
	s := testSession(t)
	_, err := resolveCard(s, "no such card")
	if !errors.Is(err, board.ErrCardNotFound) {
		t.Fatalf("err = %v, want ErrCardNotFound", err)
	}
}

func TestTitleOrID(t *testing.T) {
	s := testSession(t)
	state := s.State()
	if got := titleOrID(state, "garden"); got != "Garden Notes" {
		t.Fatalf("titleOrID = %q", got)
	}
	if got := titleOrID(state, model.RootID); got != model.RootID {
		t.Fatalf("titleOrID(root) = %q, want the id back", got)
	}
	if got := titleOrID(state, "ghost"); got != "ghost" {
		t.Fatalf("titleOrID(ghost) = %q", got)
	}
}
