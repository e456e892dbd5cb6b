package index

import (
	"database/sql"
	"fmt"
	"strings"
)

// SearchResult represents one full-text search hit. Rank comes from bm25,
// where lower is better.
type SearchResult struct {
	CardID  string
	Title   string
	Snippet string
	Rank    float64
}

// BacklinkResult represents one mention of a target card.
type BacklinkResult struct {
	SourceID    string
	SourceTitle string
	Label       *string
}

// Completion is a mention autocomplete candidate.
type Completion struct {
	CardID string
	Title  string
}

// Search performs a full-text search over card titles and content.
// Results are ordered by bm25 rank with titles weighted over body text;
// equally ranked cards come back in tree order.
func (d *Database) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(`
		SELECT
			f.card_id,
			f.title,
			snippet(fts_cards, 2, '»', '«', '...', 32) as snippet,
			bm25(fts_cards, 0.0, 2.0, 1.0) as rank
		FROM fts_cards f
		JOIN cards c ON f.card_id = c.id
		WHERE fts_cards MATCH ?
		ORDER BY rank, c.ord
		LIMIT ?
	`, BuildFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var result SearchResult
		if err := rows.Scan(&result.CardID, &result.Title, &result.Snippet, &result.Rank); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// AllCards returns every indexed card in tree order. Used when the
// configured empty-query behavior is to list the whole board.
func (d *Database) AllCards(limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := d.db.Query(`
		SELECT id, title FROM cards ORDER BY ord LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var result SearchResult
		if err := rows.Scan(&result.CardID, &result.Title); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// CompleteMention returns cards whose title starts with the given prefix,
// shortest titles first. The prefix match is case-insensitive.
func (d *Database) CompleteMention(prefix string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	pattern := likeEscape(strings.TrimSpace(prefix)) + "%"
	rows, err := d.db.Query(`
		SELECT id, title FROM cards
		WHERE title LIKE ? ESCAPE '\'
		ORDER BY length(title), ord
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Completion
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.CardID, &c.Title); err != nil {
			return nil, err
		}
		results = append(results, c)
	}

	return results, rows.Err()
}

// Backlinks returns every card that mentions the given target, in tree order.
func (d *Database) Backlinks(targetID string) ([]BacklinkResult, error) {
	rows, err := d.db.Query(`
		SELECT m.source_id, c.title, m.label
		FROM mentions m
		LEFT JOIN cards c ON m.source_id = c.id
		WHERE m.target_id = ?
		ORDER BY c.ord
	`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []BacklinkResult
	for rows.Next() {
		var result BacklinkResult
		var title sql.NullString
		if err := rows.Scan(&result.SourceID, &title, &result.Label); err != nil {
			return nil, err
		}
		result.SourceTitle = title.String
		results = append(results, result)
	}

	return results, rows.Err()
}

func likeEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// BuildFTSQuery builds a safe FTS5 MATCH query spanning the title and
// content columns, quoting tokens that would otherwise trip the FTS parser.
//
// The returned string is meant to be passed as the RHS of `fts_cards MATCH ?`.
func BuildFTSQuery(userQuery string) string {
	q := strings.TrimSpace(userQuery)
	if q == "" {
		// Match nothing (FTS phrase query for empty string).
		return `title:""`
	}

	// Wrap the expression so the column filter applies to boolean ops.
	return "{title content}: (" + sanitizeFTSQuery(q) + ")"
}

// sanitizeFTSQuery quotes unquoted tokens containing '-' to prevent SQLite
// FTS from interpreting them as operators (which can surface as "no such
// column" errors).
//
// This keeps quoted phrases intact and preserves boolean operators and
// parentheses.
func sanitizeFTSQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)

	inQuotes := false
	i := 0
	for i < len(q) {
		c := q[i]

		// Toggle quoted phrase state; keep the quote.
		if c == '"' {
			inQuotes = !inQuotes
			b.WriteByte(c)
			i++
			continue
		}

		if inQuotes {
			b.WriteByte(c)
			i++
			continue
		}

		// Preserve whitespace as-is.
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			b.WriteByte(c)
			i++
			continue
		}

		// Preserve grouping punctuation.
		if c == '(' || c == ')' {
			b.WriteByte(c)
			i++
			continue
		}

		// Consume a token until whitespace or paren.
		start := i
		for i < len(q) {
			cc := q[i]
			if cc == '"' || cc == '(' || cc == ')' || cc == ' ' || cc == '\t' || cc == '\n' || cc == '\r' {
				break
			}
			i++
		}
		tok := q[start:i]

		upper := strings.ToUpper(tok)
		switch upper {
		case "AND", "OR", "NOT", "NEAR":
			b.WriteString(tok)
			continue
		}

		// Quote hyphenated tokens (but avoid treating unary NOT `-foo` as a
		// phrase).
		if strings.Contains(tok, "-") && !strings.HasPrefix(tok, "-") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(tok, `"`, `""`))
			b.WriteByte('"')
			continue
		}

		b.WriteString(tok)
	}

	return b.String()
}
