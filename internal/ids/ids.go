// Package ids allocates opaque card identifiers.
package ids

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// New returns "c-<suffix>" where suffix is 8 chars of lowercase base32
// (no padding). 8 chars base32 ~= 40 bits of space, plenty for a
// single-writer board.
//
// Ids only ever contain [a-z2-7-], so they are safe in route fragments and
// exported file names without escaping.
func New() string {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// sensible recovery for id allocation.
		panic("ids: " + err.Error())
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "c-" + strings.ToLower(enc.EncodeToString(b[:]))
}
