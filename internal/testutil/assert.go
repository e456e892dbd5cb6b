package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist in the board
// directory.
func (b *TestBoard) AssertFileExists(relPath string) {
	b.t.Helper()
	fullPath := filepath.Join(b.Path, relPath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		b.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (b *TestBoard) AssertFileNotExists(relPath string) {
	b.t.Helper()
	fullPath := filepath.Join(b.Path, relPath)
	if _, err := os.Stat(fullPath); err == nil {
		b.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertSnapshotContains fails the test if board.json does not contain the
// substring.
func (b *TestBoard) AssertSnapshotContains(substr string) {
	b.t.Helper()
	content, err := os.ReadFile(b.SnapshotPath())
	if err != nil {
		b.t.Fatalf("failed to read board snapshot: %v", err)
	}
	if !strings.Contains(string(content), substr) {
		b.t.Errorf("expected board.json to contain %q, got:\n%s", substr, content)
	}
}

// AssertCardExists fails the test if the card is not in the on-disk snapshot.
func (b *TestBoard) AssertCardExists(cardID string) {
	b.t.Helper()
	if _, ok := b.State().Card(cardID); !ok {
		b.t.Errorf("expected card to exist: %s", cardID)
	}
}

// AssertCardNotExists fails the test if the card is in the on-disk snapshot.
func (b *TestBoard) AssertCardNotExists(cardID string) {
	b.t.Helper()
	if _, ok := b.State().Card(cardID); ok {
		b.t.Errorf("expected card to not exist: %s", cardID)
	}
}

// AssertSearchCount runs a search and verifies the result count.
func (b *TestBoard) AssertSearchCount(query string, expectedCount int) {
	b.t.Helper()
	result := b.RunCLI("search", query)
	result.MustSucceed(b.t)

	results := result.DataList(b.t)
	if len(results) != expectedCount {
		b.t.Errorf("search %q: expected %d results, got %d\nRaw: %s",
			query, expectedCount, len(results), result.RawJSON)
	}
}

// AssertBacklinks verifies that a card has the expected number of backlinks.
func (b *TestBoard) AssertBacklinks(cardID string, expectedCount int) {
	b.t.Helper()
	result := b.RunCLI("backlinks", cardID)
	result.MustSucceed(b.t)

	results := result.DataList(b.t)
	if len(results) != expectedCount {
		b.t.Errorf("backlinks for %s: expected %d, got %d\nRaw: %s",
			cardID, expectedCount, len(results), result.RawJSON)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}
