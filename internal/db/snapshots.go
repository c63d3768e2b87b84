package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/types"
)

// SnapshotStore implements persistence.Adapter on the cv_snapshots table.
// Each write is a single upsert, so a row always holds one complete snapshot.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore returns an adapter backed by db.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

var _ persistence.Adapter = (*SnapshotStore)(nil)

// Write implements persistence.Adapter.
func (s *SnapshotStore) Write(ctx context.Context, snap *types.Snapshot) error {
	raw, err := persistence.Encode(snap)
	if err != nil {
		return err
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO cv_snapshots (id, title, content, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET title = $2, content = $3, updated_at = $4`,
		persistence.Key(snap.ID()), snap.Document.Title, raw, snap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.ID(), err)
	}
	return nil
}

// Read implements persistence.Adapter.
func (s *SnapshotStore) Read(ctx context.Context, id string) (*types.Snapshot, error) {
	var content []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT content FROM cv_snapshots WHERE id = $1`,
		persistence.Key(id),
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, persistence.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot %s: %w", id, err)
	}
	return persistence.Decode(id, content)
}

// Delete implements persistence.Adapter.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.pool.Exec(ctx,
		`DELETE FROM cv_snapshots WHERE id = $1`,
		persistence.Key(id),
	)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// List implements persistence.Adapter.
func (s *SnapshotStore) List(ctx context.Context) ([]types.Summary, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT id, title, updated_at FROM cv_snapshots ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	summaries := []types.Summary{}
	for rows.Next() {
		var sum types.Summary
		var key string
		if err := rows.Scan(&key, &sum.Title, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		sum.ID = key[len(persistence.KeyPrefix):]
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return summaries, nil
}
