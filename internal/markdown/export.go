package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/corvid/internal/atomicfile"
	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
	"github.com/aidanlsb/corvid/internal/slugs"
)

// Board export layout: every card becomes a markdown file with YAML
// frontmatter carrying its identity and canvas geometry. A card with
// children becomes a directory holding index.md plus one entry per child,
// prefixed with a two-digit sibling ordinal so insertion order survives the
// filesystem:
//
//	export/
//	  index.md          root card
//	  01-garden-notes/
//	    index.md        "Garden Notes"
//	    01-seeds.md     leaf child
//	  02-reading.md
type frontmatter struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title,omitempty"`
	Position model.Position `yaml:"position"`
	Size     model.Size     `yaml:"size"`
}

// indexFile is the per-directory card file name.
const indexFile = "index.md"

// ErrImportLayout indicates an export tree that cannot be read back.
var ErrImportLayout = errors.New("unrecognized export layout")

// Export writes the whole board as a markdown tree rooted at dir. dir is
// created if needed; existing contents are not cleared, but colliding files
// are overwritten.
func Export(s board.State, dir string) error {
	root, ok := s.Card(model.RootID)
	if !ok {
		return fmt.Errorf("%w: %s", board.ErrCardNotFound, model.RootID)
	}
	return exportCard(s, root, dir, true)
}

func exportCard(s board.State, card model.Card, dir string, asDir bool) error {
	if asDir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	for i, childID := range card.Children {
		child, ok := s.Card(childID)
		if !ok {
			return fmt.Errorf("%w: %s", board.ErrCardNotFound, childID)
		}
		name := fmt.Sprintf("%02d-%s", i+1, slugs.Title(child.Title))
		if len(child.Children) > 0 {
			if err := exportCard(s, child, filepath.Join(dir, name), true); err != nil {
				return err
			}
		} else {
			if err := writeCardFile(filepath.Join(dir, name+".md"), child); err != nil {
				return err
			}
		}
	}

	return writeCardFile(filepath.Join(dir, indexFile), card)
}

func writeCardFile(path string, card model.Card) error {
	meta, err := yaml.Marshal(frontmatter{
		ID:       card.ID,
		Title:    card.Title,
		Position: card.Position,
		Size:     card.Size,
	})
	if err != nil {
		return fmt.Errorf("encode frontmatter for %s: %w", card.ID, err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(meta)
	sb.WriteString("---\n")
	if body := Render(card.Content); body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
	}

	if err := atomicfile.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Import reads an export tree back into a fresh board state. The resulting
// state is validated before being returned, so a mangled tree can never
// produce a broken board.
func Import(dir string) (board.State, error) {
	s := board.State{
		Path:  []string{model.RootID},
		Cards: map[string]model.Card{},
	}

	rootID, err := importDir(&s, dir, model.RootID, "")
	if err != nil {
		return board.State{}, err
	}
	if rootID != model.RootID {
		return board.State{}, fmt.Errorf("%w: root card id is %q", ErrImportLayout, rootID)
	}
	if err := s.Validate(); err != nil {
		return board.State{}, err
	}
	return s, nil
}

// importDir reads one directory: its index.md becomes the card with the
// given fallback id, its ordered entries become children. The stored card's
// id is returned so the parent can record it.
func importDir(s *board.State, dir, fallbackID, parent string) (string, error) {
	card, err := readCardFile(filepath.Join(dir, indexFile), fallbackID)
	if err != nil {
		return "", err
	}
	card.Parent = parent

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read export directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name() != indexFile && ordered(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	card.Children = []string{}
	for _, name := range names {
		childPath := filepath.Join(dir, name)
		info, err := os.Stat(childPath)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			childID, err := importDir(s, childPath, "", card.ID)
			if err != nil {
				return "", err
			}
			card.Children = append(card.Children, childID)
			continue
		}
		child, err := readCardFile(childPath, "")
		if err != nil {
			return "", err
		}
		child.Parent = card.ID
		s.Cards[child.ID] = child
		card.Children = append(card.Children, child.ID)
	}

	s.Cards[card.ID] = card
	return card.ID, nil
}

func readCardFile(path, fallbackID string) (model.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Card{}, fmt.Errorf("read card file: %w", err)
	}

	meta, body, err := splitFrontmatter(string(data))
	if err != nil {
		return model.Card{}, fmt.Errorf("%s: %w", path, err)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return model.Card{}, fmt.Errorf("%s: parse frontmatter: %w", path, err)
	}
	if fm.ID == "" {
		fm.ID = fallbackID
	}
	if fm.ID == "" {
		return model.Card{}, fmt.Errorf("%w: %s has no id", ErrImportLayout, path)
	}

	return model.Card{
		ID:       fm.ID,
		Title:    fm.Title,
		Content:  Parse(body),
		Position: fm.Position,
		Size:     fm.Size,
		Children: []string{},
	}, nil
}

// splitFrontmatter separates the leading --- fenced YAML block from the
// markdown body. Frontmatter is required in export files.
func splitFrontmatter(content string) (meta, body string, err error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", "", fmt.Errorf("%w: missing frontmatter", ErrImportLayout)
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("%w: unclosed frontmatter", ErrImportLayout)
}

// ordered reports whether an export entry name carries the NN- ordinal
// prefix. Anything else in the directory is ignored on import.
func ordered(name string) bool {
	if len(name) < 3 {
		return false
	}
	return name[0] >= '0' && name[0] <= '9' && name[1] >= '0' && name[1] <= '9' && name[2] == '-'
}
