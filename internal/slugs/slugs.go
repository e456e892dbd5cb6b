// Package slugs derives filesystem-safe names for exported cards.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Title converts a card title to a safe file/directory name component.
// Falls back to a plain lowercase transform when the slug library produces
// nothing (e.g. all-symbol titles).
func Title(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	if slugged == "" {
		slugged = "card"
	}
	return slugged
}
