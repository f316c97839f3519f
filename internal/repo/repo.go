// Package repo provides the PostgreSQL feed snapshot archive
package repo

import (
	"context"
	"encoding/json"
	"errors"

	"spacescope/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepo handles feed snapshot persistence
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepo creates a new snapshot repository
func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Write stores a live payload for source
func (r *SnapshotRepo) Write(ctx context.Context, source string, payload json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO feed_snapshot(source, payload) VALUES ($1,$2)",
		source, payload)
	return err
}

// GetLatest gets the newest snapshot for source, or nil when there is none
func (r *SnapshotRepo) GetLatest(ctx context.Context, source string) (*domain.FeedSnapshot, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT id, source, fetched_at, payload FROM feed_snapshot WHERE source = $1 ORDER BY id DESC LIMIT 1",
		source)

	var snap domain.FeedSnapshot
	err := row.Scan(&snap.ID, &snap.Source, &snap.FetchedAt, &snap.Payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Prune deletes all but the newest keep snapshots of source
func (r *SnapshotRepo) Prune(ctx context.Context, source string, keep int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM feed_snapshot
		WHERE source = $1 AND id NOT IN (
			SELECT id FROM feed_snapshot WHERE source = $1 ORDER BY id DESC LIMIT $2
		)`, source, keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InitDB initializes database tables
func InitDB(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS feed_snapshot(
			id BIGSERIAL PRIMARY KEY,
			source TEXT NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			payload JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_feed_snapshot_source
		 ON feed_snapshot(source, fetched_at DESC)`,
	}

	for _, q := range queries {
		if _, err := pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
