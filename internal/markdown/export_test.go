package markdown

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
)

func exportFixture(t *testing.T) board.State {
	t.Helper()
	s := board.NewState()

	var err error
	s, _, err = s.CreateCard(model.RootID, "garden", "Garden Notes", &model.Position{X: 40, Y: 80})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	s, _, err = s.CreateCard("garden", "seeds", "Seed Orders", nil)
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	s, _, err = s.CreateCard(model.RootID, "reading", "Reading List", nil)
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	s, err = s.UpdateContent("seeds", model.Document{
		model.Paragraph(
			model.Text("Order from "),
			model.Mention("garden", "Garden Notes"),
			model.Text(" by March."),
		),
		model.CodeBlock("tomato: 12\nbasil: 3"),
	})
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	s, err = s.UpdateSize("reading", model.Size{Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("UpdateSize: %v", err)
	}
	return s
}

func TestExportLayout(t *testing.T) {
	dir := t.TempDir()
	if err := Export(exportFixture(t), dir); err != nil {
		t.Fatalf("Export: %v", err)
	}

	for _, path := range []string{
		"index.md",
		"01-garden-notes/index.md",
		"01-garden-notes/01-seed-orders.md",
		"02-reading-list.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, path)); err != nil {
			t.Errorf("expected %s: %v", path, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "01-garden-notes", "01-seed-orders.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("missing frontmatter fence:\n%s", content)
	}
	if !strings.Contains(content, "id: seeds") {
		t.Errorf("frontmatter missing id:\n%s", content)
	}
	if !strings.Contains(content, "[[garden|Garden Notes]]") {
		t.Errorf("mention not rendered as link literal:\n%s", content)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := exportFixture(t)
	if err := Export(src, dir); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := Import(dir)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if got.Count() != src.Count() {
		t.Fatalf("card count = %d, want %d", got.Count(), src.Count())
	}
	for _, id := range []string{model.RootID, "garden", "seeds", "reading"} {
		want, _ := src.Card(id)
		card, ok := got.Card(id)
		if !ok {
			t.Fatalf("imported board missing %s", id)
		}
		if card.Title != want.Title {
			t.Errorf("%s title = %q, want %q", id, card.Title, want.Title)
		}
		if card.Parent != want.Parent {
			t.Errorf("%s parent = %q, want %q", id, card.Parent, want.Parent)
		}
		if !reflect.DeepEqual(card.Children, want.Children) {
			t.Errorf("%s children = %v, want %v", id, card.Children, want.Children)
		}
		if card.Position != want.Position {
			t.Errorf("%s position = %v, want %v", id, card.Position, want.Position)
		}
		if card.Size != want.Size {
			t.Errorf("%s size = %v, want %v", id, card.Size, want.Size)
		}
		if card.Content.PlainText() != want.Content.PlainText() {
			t.Errorf("%s content = %q, want %q", id, card.Content.PlainText(), want.Content.PlainText())
		}
	}

	seeds, _ := got.Card("seeds")
	if ids := seeds.Content.Mentions(); !reflect.DeepEqual(ids, []string{"garden"}) {
		t.Errorf("seeds mentions = %v, want [garden]", ids)
	}
}

func TestImportIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Export(exportFixture(t), dir); err != nil {
		t.Fatalf("Export: %v", err)
	}
	for _, name := range []string{"README.md", ".DS_Store", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("ignore me"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Import(dir)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.Count() != 4 {
		t.Errorf("card count = %d, want 4", got.Count())
	}
}

func TestImportRejectsBrokenTree(t *testing.T) {
	t.Run("missing frontmatter", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("just text\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Import(dir); err == nil {
			t.Fatal("expected error for fenceless card file")
		}
	})

	t.Run("missing root index", func(t *testing.T) {
		if _, err := Import(t.TempDir()); err == nil {
			t.Fatal("expected error for empty directory")
		}
	})

	t.Run("child without id", func(t *testing.T) {
		dir := t.TempDir()
		root := "---\nid: root\n---\n"
		if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(root), 0o644); err != nil {
			t.Fatal(err)
		}
		child := "---\ntitle: Nameless\n---\n"
		if err := os.WriteFile(filepath.Join(dir, "01-nameless.md"), []byte(child), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Import(dir); err == nil {
			t.Fatal("expected error for child card without id")
		}
	})
}
