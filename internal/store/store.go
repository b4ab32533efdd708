// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists harvested publications in SQLite, keyed by a hash
// of their title, and keeps the table in step with the latest harvest.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibcheck/pkg/types"
)

const dbFile = "publications.db"

// dateLayout is the format of the date_added column.
const dateLayout = "2006-01-02"

// ErrNoTitle is returned when a publication without a title is inserted.
var ErrNoTitle = errors.New("publication has no title")

// Store manages the publications database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one stored row.
type Entry struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	DateAdded   string      `json:"date_added" yaml:"date_added"`
	Validated   bool        `json:"validated" yaml:"validated"`
	Publication Publication `json:"publication" yaml:"publication"`
}

// Open opens or creates cfg.Dir/publications.db and its schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS publications (
		id TEXT PRIMARY KEY,
		title TEXT,
		date_added TEXT,
		full_json TEXT,
		validated INTEGER DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Exists reports whether a publication with the given id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM publications WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", id, err)
	}
	return true, nil
}

// Insert stores p unless a publication with the same title is already
// present. It reports whether a row was written.
func (s *Store) Insert(ctx context.Context, p Publication) (bool, error) {
	title := p.Title()
	if title == "" {
		return false, ErrNoTitle
	}
	full, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("encoding %q: %w", title, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO publications (id, title, date_added, full_json, validated)
		 VALUES (?, ?, ?, ?, 0)`,
		ID(title), title, s.now().Format(dateLayout), string(full),
	)
	if err != nil {
		return false, fmt.Errorf("inserting %q: %w", title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting %q: %w", title, err)
	}
	return n > 0, nil
}

// SetValidated marks a publication as checked against the curated
// catalogue.
func (s *Store) SetValidated(ctx context.Context, id string, validated bool) error {
	v := 0
	if validated {
		v = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE publications SET validated = ? WHERE id = ?`, v, id)
	if err != nil {
		return fmt.Errorf("updating %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("publication %s not found", id)
	}
	return nil
}

// All returns every stored publication ordered by title.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, date_added, full_json, validated FROM publications ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			full      sql.NullString
			dateAdded sql.NullString
			validated int
		)
		if err := rows.Scan(&e.ID, &e.Title, &dateAdded, &full, &validated); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		e.DateAdded = dateAdded.String
		e.Validated = validated != 0
		if full.Valid && full.String != "" {
			if err := json.Unmarshal([]byte(full.String), &e.Publication); err != nil {
				return nil, fmt.Errorf("decoding publication %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Records returns the comparison view of every stored publication, ordered
// by title.
func (s *Store) Records(ctx context.Context) ([]types.Record, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]types.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Publication.Record())
	}
	return records, nil
}

// removeMissing deletes every row whose id is not in keep and returns the
// deleted rows.
func (s *Store) removeMissing(ctx context.Context, keep map[string]bool) ([]Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id, title FROM publications ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	var stale []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		if !keep[e.ID] {
			stale = append(stale, e)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}

	for _, e := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM publications WHERE id = ?`, e.ID); err != nil {
			return nil, fmt.Errorf("deleting %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing removals: %w", err)
	}
	return stale, nil
}
