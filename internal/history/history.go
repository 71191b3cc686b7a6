// Package history keeps a SQLite log of searches and their outcomes.
// Only the query and the resolved artist are stored, never API payloads.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jfmyers9/profiles/internal/artist"
	_ "modernc.org/sqlite"
)

// OutcomeFound is recorded for searches that produced a populated view.
// Failed searches record the failure kind (see artist.Kind.String).
const OutcomeFound = "found"

// Store persists search history using SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Entry represents one recorded search
type Entry struct {
	ID         int64
	Query      string
	ArtistID   string
	ArtistName string
	Outcome    string
	SearchedAt time.Time
}

// Open opens (and creates if needed) the history database at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			artist_id TEXT,
			artist_name TEXT,
			outcome TEXT NOT NULL,
			searched_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_searched_at ON searches(searched_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores the outcome of a search. It satisfies aggregator.Recorder.
func (s *Store) Record(ctx context.Context, query string, result artist.Result) error {
	outcome := OutcomeFound
	var artistID, artistName string

	if result.OK() {
		if a := result.View.Artist; a != nil {
			artistID = a.ID
			artistName = a.Name
		}
	} else {
		outcome = result.Err.Kind.String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (query, artist_id, artist_name, outcome, searched_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		query,
		nullable(artistID),
		nullable(artistName),
		outcome,
		s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}

	return nil
}

// Recent returns the most recent searches, newest first. A limit <= 0
// returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, query, COALESCE(artist_id, ''), COALESCE(artist_name, ''), outcome, searched_at
		FROM searches
		ORDER BY searched_at DESC, id DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var searchedAt int64

		if err := rows.Scan(&e.ID, &e.Query, &e.ArtistID, &e.ArtistName, &e.Outcome, &searchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}

		e.SearchedAt = time.Unix(searchedAt, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating searches: %w", err)
	}

	return entries, nil
}

// Cleanup removes searches older than maxAge and returns how many were
// deleted.
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()

	result, err := s.db.ExecContext(ctx, "DELETE FROM searches WHERE searched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old searches: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// Count returns the number of recorded searches
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searches").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count searches: %w", err)
	}
	return count, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
