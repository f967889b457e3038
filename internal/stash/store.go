package stash

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned when no record carries the requested reference.
var ErrNotFound = errors.New("no record with that reference")

// Record is one stored entry, either an envelope or a key.
type Record struct {
	ID        int64
	Filename  string
	Ref       string
	Content   []byte
	CreatedAt time.Time
}

// Store wraps a Postgres connection pool.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS stash_main (
	id         BIGSERIAL PRIMARY KEY,
	filename   TEXT NOT NULL,
	ref        TEXT NOT NULL,
	content    BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS stash_main_ref_idx ON stash_main (ref);

CREATE TABLE IF NOT EXISTS stash_keys (
	id         BIGSERIAL PRIMARY KEY,
	filename   TEXT NOT NULL,
	ref        TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS stash_keys_ref_idx ON stash_keys (ref);
`

// Open connects to the database named by url, verifies the connection, and
// creates the tables if they do not exist.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores envelope content under ref and returns the row id.
func (s *Store) Insert(ctx context.Context, filename string, content []byte, ref string) (int64, error) {
	var id int64

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO stash_main (filename, ref, content) VALUES ($1, $2, $3) RETURNING id`,
		filename, ref, content,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}

	return id, nil
}

// InsertKey stores a hex key string under ref and returns the row id.
func (s *Store) InsertKey(ctx context.Context, filename, key, ref string) (int64, error) {
	var id int64

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO stash_keys (filename, ref, content) VALUES ($1, $2, $3) RETURNING id`,
		filename, ref, key,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting key record: %w", err)
	}

	return id, nil
}

// GetByRef fetches the most recent envelope record stored under ref.
func (s *Store) GetByRef(ctx context.Context, ref string) (*Record, error) {
	var record Record

	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, ref, content, created_at
		 FROM stash_main WHERE ref = $1 ORDER BY id DESC LIMIT 1`,
		ref,
	).Scan(&record.ID, &record.Filename, &record.Ref, &record.Content, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}

	if err != nil {
		return nil, fmt.Errorf("fetching record: %w", err)
	}

	return &record, nil
}

// GetKeyByRef fetches the most recent key stored under ref.
func (s *Store) GetKeyByRef(ctx context.Context, ref string) (string, error) {
	var key string

	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM stash_keys WHERE ref = $1 ORDER BY id DESC LIMIT 1`,
		ref,
	).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
	}

	if err != nil {
		return "", fmt.Errorf("fetching key record: %w", err)
	}

	return key, nil
}

// List returns all envelope records, newest first, without content.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, ref, created_at FROM stash_main ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []Record

	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.ID, &record.Filename, &record.Ref, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return records, nil
}

// UpdateByRef replaces the content of the most recent envelope record stored
// under ref.
func (s *Store) UpdateByRef(ctx context.Context, ref string, content []byte) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE stash_main SET content = $1
		 WHERE id = (SELECT id FROM stash_main WHERE ref = $2 ORDER BY id DESC LIMIT 1)`,
		content, ref)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, ref)
	}

	return nil
}

// DeleteByRef removes every envelope record stored under ref and reports how
// many rows went away.
func (s *Store) DeleteByRef(ctx context.Context, ref string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM stash_main WHERE ref = $1`, ref)
	if err != nil {
		return 0, fmt.Errorf("deleting records: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting records: %w", err)
	}

	return affected, nil
}
