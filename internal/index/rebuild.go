package index

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aidanlsb/corvid/internal/board"
	"github.com/aidanlsb/corvid/internal/model"
)

// Rebuild replaces the entire index with the contents of the given board
// state. The swap happens in one transaction, so readers never observe a
// half-built index.
func (d *Database) Rebuild(s board.State) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"cards", "mentions", "fts_cards"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	cardStmt, err := tx.Prepare(`
		INSERT INTO cards (id, title, parent_id, depth, ord, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	mentionStmt, err := tx.Prepare(`
		INSERT INTO mentions (source_id, target_id, label)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer mentionStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO fts_cards (card_id, title, content)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer ftsStmt.Close()

	now := time.Now().Unix()
	ord := 0
	var walk func(id string, depth int) error
	walk = func(id string, depth int) error {
		card, ok := s.Card(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrCardNotIndexed, id)
		}

		var parent sql.NullString
		if card.Parent != "" {
			parent = sql.NullString{String: card.Parent, Valid: true}
		}
		if _, err := cardStmt.Exec(card.ID, card.Title, parent, depth, ord, now); err != nil {
			return fmt.Errorf("index card %s: %w", card.ID, err)
		}
		ord++

		if _, err := ftsStmt.Exec(card.ID, card.Title, card.Content.PlainText()); err != nil {
			return fmt.Errorf("index card text %s: %w", card.ID, err)
		}

		for _, m := range contentMentions(card.Content) {
			var label sql.NullString
			if m.label != "" {
				label = sql.NullString{String: m.label, Valid: true}
			}
			if _, err := mentionStmt.Exec(card.ID, m.target, label); err != nil {
				return fmt.Errorf("index mention %s -> %s: %w", card.ID, m.target, err)
			}
		}

		for _, child := range card.Children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(model.RootID, 0); err != nil {
		return err
	}

	return tx.Commit()
}

type mention struct {
	target string
	label  string
}

func contentMentions(doc model.Document) []mention {
	var out []mention
	for _, block := range doc {
		for _, in := range block.Children {
			if in.Kind == model.InlineMention && in.CardID != "" {
				out = append(out, mention{target: in.CardID, label: in.Label})
			}
		}
	}
	return out
}
