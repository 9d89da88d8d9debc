package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is fixed-width so registered_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists registration records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates a SQLite catalog.
// The path should be a file path (e.g., "./dispatch.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database lives per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS registrations (
			registry TEXT NOT NULL,
			module TEXT NOT NULL,
			name TEXT NOT NULL,
			signature TEXT NOT NULL,
			id TEXT NOT NULL,
			registry_id TEXT NOT NULL,
			display TEXT NOT NULL,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			registered_at TEXT NOT NULL,
			PRIMARY KEY (registry, module, name, signature)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_registrations_function
		ON registrations(module, name)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO registrations
			(registry, module, name, signature, id, registry_id, display, file, line, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(registry, module, name, signature) DO UPDATE SET
			id = excluded.id,
			registry_id = excluded.registry_id,
			display = excluded.display,
			file = excluded.file,
			line = excluded.line,
			registered_at = excluded.registered_at
	`, rec.Registry, rec.Module, rec.Name, rec.Signature, rec.ID, rec.RegistryID,
		rec.Display, rec.File, rec.Line, rec.RegisteredAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

const selectColumns = `SELECT registry, module, name, signature, id, registry_id, display, file, line, registered_at
		FROM registrations`

// Get implements Store.
func (s *SQLiteStore) Get(registry, module, name, signature string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrStoreClosed
	}

	rec, err := scanRecord(s.db.QueryRow(selectColumns+`
		WHERE registry = ? AND module = ? AND name = ? AND signature = ?
	`, registry, module, name, signature))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("load record: %w", err)
	}
	return rec, nil
}

// List implements Store.
func (s *SQLiteStore) List(registry string) ([]Record, error) {
	return s.query(selectColumns+`
		WHERE (? = '' OR registry = ?)
		ORDER BY registered_at, rowid
	`, registry, registry)
}

// Find implements Store.
func (s *SQLiteStore) Find(registry, module, name string) ([]Record, error) {
	return s.query(selectColumns+`
		WHERE (? = '' OR registry = ?) AND module = ? AND name = ?
		ORDER BY registered_at, rowid
	`, registry, registry, module, name)
}

func (s *SQLiteStore) query(query string, args ...any) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var registeredAt string
	if err := row.Scan(&rec.Registry, &rec.Module, &rec.Name, &rec.Signature, &rec.ID,
		&rec.RegistryID, &rec.Display, &rec.File, &rec.Line, &registeredAt); err != nil {
		return Record{}, err
	}
	rec.RegisteredAt, _ = time.Parse(timeLayout, registeredAt)
	return rec, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
