package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft blue #7AA2F7): Highlights, card titles, routes
// - Muted (gray): Secondary info, ids, counts
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#7AA2F7"

var accentColor = defaultAccent

var (
	// Accent style for card titles, routes, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, card ids
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// ConfigureTheme overrides the accent color used for styled output.
// Accepts ANSI color codes ("0" to "255") or hex colors ("#RRGGBB");
// anything else keeps the default.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccent(accent)
	if !ok {
		color = defaultAccent
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color when one is configured.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

func normalizeAccent(accent string) (string, bool) {
	accent = strings.TrimSpace(accent)
	if accent == "" {
		return "", false
	}

	if strings.HasPrefix(accent, "#") && len(accent) == 7 {
		if _, err := strconv.ParseUint(accent[1:], 16, 32); err == nil {
			return accent, true
		}
		return "", false
	}

	if n, err := strconv.Atoi(accent); err == nil && n >= 0 && n <= 255 {
		return accent, true
	}

	return "", false
}
