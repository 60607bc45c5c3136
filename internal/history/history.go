// Package history keeps a local SQLite log of past conversions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultLimit is the number of entries Recent returns for a zero limit
const DefaultLimit = 20

// Entry is one recorded conversion
type Entry struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Input      string
	Normalized string
	Language   string
	Provider   string
	StatusCode int    // 0 when the request never got an answer
	AudioFile  string // empty when no audio was saved
	Error      string
}

// OK reports whether the conversion produced audio
func (e Entry) OK() bool {
	return e.StatusCode == 200 && e.Error == ""
}

// Store is a history database
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// SQLite serializes writers anyway, and ":memory:" is per connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id text PRIMARY KEY,
			created_at integer NOT NULL,
			input text NOT NULL,
			normalized text NOT NULL,
			language text NOT NULL,
			provider text NOT NULL,
			status_code integer NOT NULL,
			audio_file text NOT NULL,
			error text NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_conversions_created ON conversions (created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// Add stores e. A missing ID or timestamp is filled in.
func (s *Store) Add(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, created_at, input, normalized, language, provider, status_code, audio_file, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(),
		e.CreatedAt.UnixNano(),
		e.Input,
		e.Normalized,
		e.Language,
		e.Provider,
		e.StatusCode,
		e.AudioFile,
		e.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, input, normalized, language, provider, status_code, audio_file, error
		FROM conversions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			id      string
			created int64
		)
		if err := rows.Scan(&id, &created, &e.Input, &e.Normalized, &e.Language,
			&e.Provider, &e.StatusCode, &e.AudioFile, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to read history entry: %w", err)
		}

		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid history entry id %q: %w", id, err)
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
