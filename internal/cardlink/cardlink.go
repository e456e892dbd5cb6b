// Package cardlink parses card-mention literals in markdown text.
//
// Mention grammar:
//
//	[[card-id]]
//	[[card-id|label]]
//
// The label is the display text captured when the mention was committed
// (usually the target card's title at that moment). Both sides are trimmed
// of surrounding whitespace. The package knows nothing about code fences;
// the markdown layer decides which text segments get scanned.
package cardlink

import (
	"regexp"
	"strings"
)

// Match is one mention literal found in a string.
type Match struct {
	CardID  string
	Label   string // empty when the literal has no |label part
	Start   int
	End     int
	Literal string
}

// re matches [[card-id]] or [[card-id|label]]. The id may not contain
// brackets or pipes.
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// Literal renders a mention back into its markdown form.
func Literal(cardID, label string) string {
	if label == "" {
		return "[[" + cardID + "]]"
	}
	return "[[" + cardID + "|" + label + "]]"
}

// ParseExact parses a string that is exactly one mention literal.
func ParseExact(s string) (cardID, label string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	id, rest, hasLabel := strings.Cut(inner, "|")
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "[]") {
		return "", "", false
	}
	if hasLabel {
		label = strings.TrimSpace(rest)
	}
	return id, label, true
}

// FindAll finds every mention literal in a text segment, left to right.
func FindAll(text string) []Match {
	var out []Match
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if len(m) < 4 {
			continue
		}
		id := strings.TrimSpace(text[m[2]:m[3]])
		if id == "" {
			continue
		}
		match := Match{
			CardID:  id,
			Start:   m[0],
			End:     m[1],
			Literal: text[m[0]:m[1]],
		}
		if len(m) >= 6 && m[4] >= 0 && m[5] >= 0 {
			match.Label = strings.TrimSpace(text[m[4]:m[5]])
		}
		out = append(out, match)
	}
	return out
}
