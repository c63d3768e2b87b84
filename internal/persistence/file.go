package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// FileStore keeps one JSON file per snapshot under a directory. Writes go to a
// temporary file that is renamed over the target, so readers never see a
// partially written snapshot.
type FileStore struct {
	dir string
	log *zap.Logger
}

// NewFileStore creates dir if needed and returns an adapter rooted there.
func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{dir: dir, log: log.Named("filestore")}, nil
}

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, Key(id)+".json")
}

// Write implements Adapter.
func (f *FileStore) Write(_ context.Context, snap *types.Snapshot) error {
	raw, err := Encode(snap)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-"+Key(snap.ID())+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write snapshot %s: %w", snap.ID(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync snapshot %s: %w", snap.ID(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot %s: %w", snap.ID(), err)
	}
	if err := os.Rename(tmpName, f.path(snap.ID())); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", snap.ID(), err)
	}
	return nil
}

// Read implements Adapter.
func (f *FileStore) Read(_ context.Context, id string) (*types.Snapshot, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}
	raw, err := os.ReadFile(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	return Decode(id, raw)
}

// Delete implements Adapter.
func (f *FileStore) Delete(_ context.Context, id string) error {
	if !ValidID(id) {
		return ErrNotFound
	}
	err := os.Remove(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	return nil
}

// List implements Adapter. Unreadable files are logged and skipped.
func (f *FileStore) List(ctx context.Context) ([]types.Summary, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.dir, err)
	}

	out := make([]types.Summary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, KeyPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, KeyPrefix), ".json")
		snap, err := f.Read(ctx, id)
		if err != nil {
			f.log.Warn("skipping unreadable snapshot", zap.String("file", name), zap.Error(err))
			continue
		}
		out = append(out, snap.Summary())
	}
	sortSummaries(out)
	return out, nil
}
