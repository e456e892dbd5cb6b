// Package route encodes the navigation path as a location-fragment string.
//
// The fragment mirrors "where the user is" into navigation history:
// "#/root/c-abc/c-def". Parsing is lenient because fragments arrive from
// outside the process (back/forward navigation, hand-edited URLs); the board
// revalidates the parsed path against the store before adopting it.
package route

import "strings"

// Encode joins a path of card ids into a fragment, with a leading slash:
// "/root/c-abc". An empty path encodes as "/".
func Encode(path []string) string {
	return "/" + strings.Join(path, "/")
}

// Parse splits a fragment back into a card-id path. A leading "#" and any
// leading/duplicate slashes are tolerated; empty segments are dropped. The
// result is untrusted and must go through the board's SetPath validation.
func Parse(fragment string) []string {
	s := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	var path []string
	for _, seg := range strings.Split(s, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			path = append(path, seg)
		}
	}
	return path
}
