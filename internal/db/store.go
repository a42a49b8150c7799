package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"happyminds/internal/domain"
)

var ErrNoEntries = errors.New("no journal entries")

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id BIGSERIAL PRIMARY KEY,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			entry TEXT NOT NULL,
			mood TEXT NOT NULL,
			affirmation TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_recorded_at ON entries(recorded_at DESC);`,
	}

	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) InsertEntry(ctx context.Context, recordedAt time.Time, entry, mood, affirmation string) error {
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO entries(recorded_at, entry, mood, affirmation)
		VALUES ($1, $2, $3, $4)
	`, recordedAt, entry, mood, affirmation)
	return err
}

// FetchEntries returns the full mood log, most recent first.
func (s *Store) FetchEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return s.RecentEntries(ctx, 0)
}

// RecentEntries returns up to limit entries, most recent first. A limit of
// zero or less means no limit.
func (s *Store) RecentEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT recorded_at, entry, mood, affirmation
		FROM entries
		ORDER BY recorded_at DESC
	`
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = s.pool.Query(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		var recordedAt time.Time
		var item domain.JournalEntry
		if err := rows.Scan(&recordedAt, &item.Entry, &item.Mood, &item.Affirmation); err != nil {
			return nil, err
		}
		item.Timestamp = formatTimestamp(recordedAt)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LatestEntry returns the most recent journal entry, or ErrNoEntries when
// the log is empty.
func (s *Store) LatestEntry(ctx context.Context) (domain.JournalEntry, error) {
	var recordedAt time.Time
	var item domain.JournalEntry
	err := s.pool.QueryRow(ctx, `
		SELECT recorded_at, entry, mood, affirmation
		FROM entries
		ORDER BY recorded_at DESC
		LIMIT 1
	`).Scan(&recordedAt, &item.Entry, &item.Mood, &item.Affirmation)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.JournalEntry{}, ErrNoEntries
	}
	if err != nil {
		return domain.JournalEntry{}, err
	}
	item.Timestamp = formatTimestamp(recordedAt)
	return item, nil
}

// ClearEntries deletes the whole log. Meant for tests and demo resets.
func (s *Store) ClearEntries(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM entries`)
	return err
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
