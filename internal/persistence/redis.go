package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps each snapshot under its own key and tracks ids in a sorted
// set scored by update time for listing. SET replaces a value atomically.
type RedisStore struct {
	rdb       *goredis.Client
	namespace string
	log       *zap.Logger
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr, namespace string, log *zap.Logger) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if namespace == "" {
		namespace = "cvbuilder:"
	}
	if log == nil {
		log = zap.NewNop()
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{rdb: rdb, namespace: namespace, log: log.Named("redisstore")}, nil
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

func (r *RedisStore) key(id string) string {
	return r.namespace + Key(id)
}

func (r *RedisStore) indexKey() string {
	return r.namespace + "index"
}

// Write implements Adapter.
func (r *RedisStore) Write(ctx context.Context, snap *types.Snapshot) error {
	raw, err := Encode(snap)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, r.key(snap.ID()), raw, 0)
		pipe.ZAdd(ctx, r.indexKey(), goredis.Z{Score: float64(snap.UpdatedAt.UnixMilli()), Member: snap.ID()})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", snap.ID(), err)
	}
	return nil
}

// Read implements Adapter.
func (r *RedisStore) Read(ctx context.Context, id string) (*types.Snapshot, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	return Decode(id, raw)
}

// Delete implements Adapter.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	var del *goredis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		del = pipe.Del(ctx, r.key(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements Adapter.
func (r *RedisStore) List(ctx context.Context) ([]types.Summary, error) {
	ids, err := r.rdb.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(ids) == 0 {
		return []types.Summary{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	out := make([]types.Summary, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		snap, err := Decode(ids[i], []byte(raw))
		if err != nil {
			r.log.Warn("skipping unreadable snapshot", zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		out = append(out, snap.Summary())
	}
	return out, nil
}
