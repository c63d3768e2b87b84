// Package db provides PostgreSQL storage for CV snapshots.
package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// The CLI and the registry issue one statement at a time.
const maxConns = 4

// DB is a pgx pool whose cv_snapshots table is known to exist.
type DB struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// Open connects to databaseURL, checks the connection and applies the
// snapshot schema.
func Open(ctx context.Context, databaseURL string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.MaxConns = maxConns
	if cfg.ConnConfig.RuntimeParams["application_name"] == "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = "cv-builder"
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool, log: log}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Debug("connected to postgres",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database))
	return db, nil
}

// Close releases the pool. It always returns nil.
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

func (db *DB) ensureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
