// Package history keeps a sqlite log of generated comics.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an unknown entry.
var ErrNotFound = errors.New("history entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS comics (
	id         TEXT PRIMARY KEY,
	comic_id   TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	transcript TEXT NOT NULL,
	text_path  TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS comics_created_at ON comics (created_at);
`

// Entry is one generated comic.
type Entry struct {
	ID         uuid.UUID
	ComicID    string
	CreatedAt  time.Time
	Seed       uint64
	Transcript string
	TextPath   string
	ImagePath  string
}

// Store is an open history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores e, assigning an ID and creation time when unset.
func (s *Store) Record(ctx context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comics (id, comic_id, created_at, seed, transcript, text_path, image_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.ComicID, e.CreatedAt.UnixNano(), int64(e.Seed),
		e.Transcript, e.TextPath, e.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("recording comic: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less returns all entries.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, comic_id, created_at, seed, transcript, text_path, image_path
		FROM comics ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	return entries, nil
}

// Get returns the entry with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, comic_id, created_at, seed, transcript, text_path, image_path
		FROM comics WHERE id = ?`, id.String())
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (Entry, error) {
	var (
		e       Entry
		id      string
		created int64
		seed    int64
	)
	if err := sc.Scan(&id, &e.ComicID, &created, &seed, &e.Transcript, &e.TextPath, &e.ImagePath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning history entry: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing history entry id: %w", err)
	}
	e.ID = parsed
	e.CreatedAt = time.Unix(0, created)
	e.Seed = uint64(seed)
	return e, nil
}
