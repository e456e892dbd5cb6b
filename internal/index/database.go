// Package index maintains the SQLite search index for a board.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Database is the SQLite index handle for one board.
type Database struct {
	db *sql.DB
}

var (
	// ErrCardNotIndexed indicates the requested card id is not in the index.
	ErrCardNotIndexed = errors.New("card not in index")
	// ErrIndexLocked indicates another process holds the index lock.
	ErrIndexLocked = errors.New("index is locked for rebuild")
)

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Open opens or creates the index database under the board's data directory.
func Open(boardPath string) (*Database, error) {
	dbDir := filepath.Join(boardPath, ".corvid")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .corvid directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, "index.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// OpenWithRebuild opens the database, deleting and recreating it if the
// schema is incompatible. Returns (database, wasRecreated, error).
func OpenWithRebuild(boardPath string) (*Database, bool, error) {
	dbDir := filepath.Join(boardPath, ".corvid")
	dbPath := filepath.Join(dbDir, "index.db")

	lock, err := acquireIndexLock(dbDir)
	if err != nil {
		return nil, false, err
	}
	defer lock.Release()

	if _, err := os.Stat(dbPath); err == nil {
		db, err := sql.Open("sqlite", dbPath)
		if err == nil {
			if !isSchemaCompatible(db) {
				db.Close()
				if err := removeDatabaseFiles(dbPath); err != nil {
					return nil, false, err
				}
				freshDB, err := Open(boardPath)
				return freshDB, true, err
			}
			db.Close()
		}
	}

	db, err := Open(boardPath)
	return db, false, err
}

type indexLock struct {
	file *os.File
}

func acquireIndexLock(dbDir string) (*indexLock, error) {
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .corvid directory: %w", err)
	}

	lockPath := filepath.Join(dbDir, "index.lock")
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := lockFileExclusiveNonBlocking(lockFile); err != nil {
		lockFile.Close()
		if isWouldBlockError(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}

	return &indexLock{file: lockFile}, nil
}

func (l *indexLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// isSchemaCompatible checks if the database schema matches the expected
// structure rather than trusting the recorded version alone.
func isSchemaCompatible(db *sql.DB) bool {
	// The cards table must carry the DFS ordinal column.
	rows, err := db.Query("PRAGMA table_info(cards)")
	if err != nil {
		return false
	}
	defer rows.Close()

	hasOrdColumn := false
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false
		}
		if name == "ord" {
			hasOrdColumn = true
			break
		}
	}
	if !hasOrdColumn {
		return false
	}

	var ftsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='fts_cards'").Scan(&ftsTableName)
	return err == nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// Analyze runs SQLite's ANALYZE command to update query planner statistics.
// Worth calling after a full rebuild of a large board.
func (d *Database) Analyze() error {
	_, err := d.db.Exec("ANALYZE")
	return err
}

// CurrentDBVersion is the current database schema version.
const CurrentDBVersion = 1

// initialize creates the database schema.
func (d *Database) initialize() error {
	schema := `
		-- Enable WAL mode for better concurrency
		PRAGMA journal_mode = WAL;

		-- Performance optimizations
		PRAGMA synchronous = NORMAL;      -- Faster writes (safe with WAL)
		PRAGMA temp_store = MEMORY;       -- Keep temp tables in memory
		PRAGMA cache_size = -64000;       -- 64MB cache (negative = KB)

		-- Metadata table for version tracking
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- One row per card; ord is the depth-first position in the tree,
		-- used as a stable tie-break for equally ranked search hits.
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			parent_id TEXT,
			depth INTEGER NOT NULL,
			ord INTEGER NOT NULL,
			indexed_at INTEGER
		);

		-- Card-to-card mentions extracted from content
		CREATE TABLE IF NOT EXISTS mentions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			label TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_cards_parent ON cards(parent_id);
		CREATE INDEX IF NOT EXISTS idx_cards_ord ON cards(ord);

		CREATE INDEX IF NOT EXISTS idx_mentions_source ON mentions(source_id);
		CREATE INDEX IF NOT EXISTS idx_mentions_target ON mentions(target_id);

		-- Full-text search over titles and card text
		CREATE VIRTUAL TABLE IF NOT EXISTS fts_cards USING fts5(
			card_id UNINDEXED,
			title,
			content,
			tokenize='porter unicode61'
		);
	`

	_, err := d.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	_, err = d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}

	return nil
}
