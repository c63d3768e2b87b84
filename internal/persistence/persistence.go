// Package persistence stores CV snapshots keyed by document id.
//
// Every adapter replaces a snapshot atomically: a reader sees either the
// previous write or the next one, never a mix of both.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// ErrNotFound is returned by Read and Delete when no snapshot exists for an id.
var ErrNotFound = errors.New("snapshot not found")

// Adapter is durable storage for CV snapshots.
type Adapter interface {
	// Write fully overwrites any prior snapshot for snap.ID().
	Write(ctx context.Context, snap *types.Snapshot) error
	// Read returns the last written snapshot or ErrNotFound.
	Read(ctx context.Context, id string) (*types.Snapshot, error)
	// Delete removes the snapshot or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// List returns one summary per stored snapshot, most recently updated first.
	List(ctx context.Context) ([]types.Summary, error)
}

// KeyPrefix is prepended to document ids to form storage keys.
const KeyPrefix = "cv_"

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidID reports whether id is safe to use as a storage key and file name.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Key returns the storage key for a document id.
func Key(id string) string {
	return KeyPrefix + id
}

// CorruptSnapshotError reports stored bytes that no longer decode into a valid snapshot.
type CorruptSnapshotError struct {
	ID    string
	Cause error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot %s: %v", e.ID, e.Cause)
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Cause
}

// Encode serializes a snapshot for storage.
func Encode(snap *types.Snapshot) ([]byte, error) {
	if snap == nil || !ValidID(snap.ID()) {
		return nil, fmt.Errorf("snapshot has no valid document id")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot %s: %w", snap.ID(), err)
	}
	return data, nil
}

// Decode validates raw bytes against the snapshot schema and unmarshals them.
func Decode(id string, raw []byte) (*types.Snapshot, error) {
	if err := schemas.ValidateSnapshot(raw); err != nil {
		return nil, &CorruptSnapshotError{ID: id, Cause: err}
	}
	var snap types.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, &CorruptSnapshotError{ID: id, Cause: err}
	}
	return &snap, nil
}
