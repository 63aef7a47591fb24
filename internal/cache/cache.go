// Package cache persists the last successfully synced collections to a
// local sqlite file so the UI has data to render on launch before the
// first network round-trip completes. The backend stays authoritative;
// the cache is overwritten wholesale on every sync.
package cache

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/ederv/plandeck/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Cache wraps the sqlite snapshot database
type Cache struct {
	db *sql.DB
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plandeck"
	}
	return filepath.Join(home, ".local", "share", "plandeck")
}

// DefaultPath returns the default snapshot database file path
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "snapshot.db")
}

// Open opens the snapshot database and runs migrations
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to snapshot database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Cache{db: db}, nil
}

func migrate(db *sql.DB) error {
	// Silence goose logging (it corrupts TUI output)
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Up(db, "migrations")
}

// Close closes the database connection
func (c *Cache) Close() error {
	return c.db.Close()
}

// Snapshot is the cached copy of the three entity collections
type Snapshot struct {
	Tasks    []model.Task
	Projects []model.Project
	Segments []model.TimeSegment
	SyncedAt time.Time
}

// Save replaces the cached snapshot atomically
func (c *Cache) Save(snap Snapshot) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"tasks", "projects", "segments"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := saveRows(tx, "tasks", snap.Tasks, func(t model.Task) string { return t.ID }); err != nil {
		return err
	}
	if err := saveRows(tx, "projects", snap.Projects, func(p model.Project) string { return p.ID }); err != nil {
		return err
	}
	if err := saveRows(tx, "segments", snap.Segments, func(s model.TimeSegment) string { return s.ID }); err != nil {
		return err
	}

	syncedAt := snap.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = time.Now()
	}
	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('synced_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, syncedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	return tx.Commit()
}

// Load reads the cached snapshot. ok is false when nothing has ever been
// synced.
func (c *Cache) Load() (snap Snapshot, ok bool, err error) {
	var syncedAt string
	err = c.db.QueryRow(`SELECT value FROM meta WHERE key = 'synced_at'`).Scan(&syncedAt)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	if t, perr := time.Parse(time.RFC3339, syncedAt); perr == nil {
		snap.SyncedAt = t
	}

	if err := loadRows(c.db, "tasks", &snap.Tasks); err != nil {
		return Snapshot{}, false, err
	}
	if err := loadRows(c.db, "projects", &snap.Projects); err != nil {
		return Snapshot{}, false, err
	}
	if err := loadRows(c.db, "segments", &snap.Segments); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func saveRows[T any](tx *sql.Tx, table string, items []T, id func(T) string) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode %s row: %w", table, err)
		}
		if _, err := tx.Exec("INSERT INTO "+table+" (id, data) VALUES (?, ?)", id(item), data); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func loadRows(db *sql.DB, table string, out interface{}) error {
	rows, err := db.Query("SELECT data FROM " + table)
	if err != nil {
		return err
	}
	defer rows.Close()

	var raw []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return err
		}
		raw = append(raw, data)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	blob, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, out)
}
