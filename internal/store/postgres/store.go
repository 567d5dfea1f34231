// Package postgres persists notice snapshots in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// DefaultLookbackDays bounds how far back Recent reads.
const DefaultLookbackDays = 90

// querier is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it in tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// Store keeps notices in a notices table with a unique (source_id, link)
// constraint.
type Store struct {
	pool         querier
	clock        notice.Clock
	lookbackDays int
}

// New connects a pool for the given DSN and returns a Store over it.
func New(ctx context.Context, dsn string, clock notice.Clock) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return NewWithPool(pool, clock), nil
}

// NewWithPool wraps an existing pool. Tests use it with pgxmock.
func NewWithPool(pool querier, clock notice.Clock) *Store {
	return &Store{
		pool:         pool,
		clock:        clock,
		lookbackDays: DefaultLookbackDays,
	}
}

// WithLookback overrides the Recent window. Non-positive values keep the
// default.
func (s *Store) WithLookback(days int) *Store {
	if days > 0 {
		s.lookbackDays = days
	}
	return s
}

// Recent returns the titles and links stored for sourceID within the
// lookback window.
func (s *Store) Recent(ctx context.Context, sourceID string) ([]notice.Known, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -s.lookbackDays)

	rows, err := s.pool.Query(ctx,
		`SELECT title, link FROM notices WHERE source_id = $1 AND published >= $2`,
		sourceID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("query notices for %s: %w", sourceID, err)
	}
	defer rows.Close()

	var known []notice.Known
	for rows.Next() {
		var k notice.Known
		if err := rows.Scan(&k.Title, &k.Link); err != nil {
			return nil, fmt.Errorf("scan notice row: %w", err)
		}
		known = append(known, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read notice rows: %w", err)
	}

	return known, nil
}

// SaveAll inserts each notice, skipping links already stored for the
// source. It reports how many rows were actually inserted.
func (s *Store) SaveAll(ctx context.Context, sourceID string, notices []notice.Notice) (int, error) {
	saved := 0
	for _, n := range notices {
		tag, err := s.pool.Exec(ctx,
			`INSERT INTO notices (source_id, title, link, published)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (source_id, link) DO NOTHING`,
			sourceID, n.Title, n.Link, n.Published,
		)
		if err != nil {
			return saved, fmt.Errorf("insert notice %q: %w", n.Title, err)
		}
		saved += int(tag.RowsAffected())
	}
	return saved, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Schema is the DDL the store expects.
const Schema = `
CREATE TABLE IF NOT EXISTS notices (
    id        BIGSERIAL PRIMARY KEY,
    source_id TEXT        NOT NULL,
    title     TEXT        NOT NULL,
    link      TEXT        NOT NULL,
    published TIMESTAMPTZ NOT NULL,
    saved_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (source_id, link)
);
CREATE INDEX IF NOT EXISTS notices_source_published_idx
    ON notices (source_id, published);
`

// EnsureSchema creates the notices table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure notices schema: %w", err)
	}
	return nil
}
