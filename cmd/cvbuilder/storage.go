package main

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/registry"
	"go.uber.org/zap"
)

// openAdapter connects the storage backend named by cfg.Storage. The
// returned closer may be nil.
func openAdapter(ctx context.Context, cfg *config.Config, log *zap.Logger) (persistence.Adapter, func() error, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return persistence.NewMemoryStore(), nil, nil

	case config.StorageFile, "":
		fs, err := persistence.NewFileStore(cfg.DataDir, log)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil

	case config.StorageRedis:
		rs, err := persistence.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisNamespace, log)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil

	case config.StoragePostgres:
		database, err := db.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		return db.NewSnapshotStore(database), database.Close, nil

	case config.StorageRemote:
		client, err := registry.New(cfg.RegistryURL, &registry.Options{
			Token: cfg.RegistryToken,
			Log:   log,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
