package store

import "errors"

var (
	// ErrNoDocument is returned by operations that need an active document
	// before CreateNew or Load installed one.
	ErrNoDocument = errors.New("no active document")
	// ErrItemNotFound is returned when an item id (or hobby index) does not
	// exist in its section. The store is left unchanged.
	ErrItemNotFound = errors.New("item not found")
	// ErrUnknownSection is returned for section keys the store does not know.
	ErrUnknownSection = errors.New("unknown section")
)
