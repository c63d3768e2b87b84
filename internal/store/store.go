// Package store holds the CV being edited and is the only place it is mutated.
//
// Field edits (text inputs, selects, checkboxes) are persisted by a debounced
// save; structural edits (adding or deleting items, order, visibility,
// template, language) persist immediately.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

const (
	// DefaultDebounceDelay is the quiet period before a field edit is saved.
	DefaultDebounceDelay = time.Second
	// DefaultSaveTimeout bounds saves triggered by the debounce timer.
	DefaultSaveTimeout = 10 * time.Second
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDebounceDelay overrides DefaultDebounceDelay.
func WithDebounceDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithIDFunc overrides id generation.
func WithIDFunc(fn types.IDFunc) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the time source used for save timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the state container for one active CV. Instances are independent;
// create one per editing session.
type Store struct {
	adapter     persistence.Adapter
	log         *zap.Logger
	newID       types.IDFunc
	now         func() time.Time
	delay       time.Duration
	saveTimeout time.Duration
	debounce    *Debouncer

	// writeMu orders writes so the last write always carries the newest state.
	writeMu sync.Mutex

	mu        sync.Mutex
	doc       types.CVDocument
	layout    types.Layout
	template  string
	language  string
	status    types.SaveStatus
	lastSaved time.Time
	lastErr   error
	revision  uint64
}

// New returns a store persisting through adapter. It has no active document
// until CreateNew or Load is called.
func New(adapter persistence.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:     adapter,
		log:         zap.NewNop(),
		newID:       types.NewID,
		now:         time.Now,
		delay:       DefaultDebounceDelay,
		saveTimeout: DefaultSaveTimeout,
		doc:         types.NewDocument(""),
		layout:      types.DefaultLayout(),
		template:    types.TemplateClassic,
		language:    types.LanguageFrench,
		status:      types.StatusSaved,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("store")
	s.debounce = NewDebouncer(s.delay, s.debouncedSave)
	return s
}

func (s *Store) debouncedSave(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()
	if err := s.Save(ctx); err != nil {
		s.log.Error("debounced save failed", zap.Error(err))
		return err
	}
	return nil
}

// CreateNew installs a fresh empty document and returns its id. Pending edits
// of the previous document are flushed first. Nothing is persisted.
func (s *Store) CreateNew(ctx context.Context) (string, error) {
	return s.install(ctx, types.NewDocument)
}

// CreateFromExample is CreateNew with a document pre-filled with sample content.
func (s *Store) CreateFromExample(ctx context.Context) (string, error) {
	return s.install(ctx, func(id string) types.CVDocument {
		return types.ExampleDocument(id, s.newID)
	})
}

func (s *Store) install(ctx context.Context, build func(id string) types.CVDocument) (string, error) {
	if err := s.Flush(ctx); err != nil {
		return "", err
	}

	id := s.newID(types.PrefixCV)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = build(id)
	s.layout = types.DefaultLayout()
	s.template = types.TemplateClassic
	s.language = types.LanguageFrench
	s.lastSaved = time.Time{}
	s.lastErr = nil
	s.touchLocked()

	s.log.Info("created document", zap.String("id", id))
	return id, nil
}

// Load replaces the active document and layout with the stored snapshot for
// id. It reports false, and leaves the store untouched, when nothing is
// stored under id.
func (s *Store) Load(ctx context.Context, id string) (bool, error) {
	if err := s.Flush(ctx); err != nil {
		return false, err
	}

	snap, err := s.adapter.Read(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", id, err)
	}

	snap.Document.ID = id
	snap.Document.Normalize(s.newID)
	layout := fillLayout(snap.Layout)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = snap.Document
	s.layout = layout
	s.template = orDefault(snap.SelectedTemplate, types.TemplateClassic)
	s.language = orDefault(snap.Language, types.LanguageFrench)
	s.status = types.StatusSaved
	s.lastSaved = snap.UpdatedAt
	s.lastErr = nil
	s.revision++

	s.log.Info("loaded document", zap.String("id", id))
	return true, nil
}

// Save persists the current state. The status is saving while the write is in
// flight and becomes saved only if the write succeeded and nothing changed in
// the meantime. Concurrent calls are serialized; the last one wins.
func (s *Store) Save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.doc.ID == "" {
		s.mu.Unlock()
		return ErrNoDocument
	}
	snap := s.snapshotLocked()
	snap.UpdatedAt = s.now()
	rev := s.revision
	s.status = types.StatusSaving
	s.mu.Unlock()

	err := s.adapter.Write(ctx, &snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.ID != snap.ID() {
		// the active document was switched while writing
		return err
	}
	if err != nil {
		s.status = types.StatusUnsaved
		s.lastErr = err
		s.log.Error("save failed", zap.String("id", snap.ID()), zap.Error(err))
		return fmt.Errorf("failed to save %s: %w", snap.ID(), err)
	}

	s.lastSaved = snap.UpdatedAt
	s.lastErr = nil
	if s.revision == rev {
		s.status = types.StatusSaved
	} else {
		s.status = types.StatusUnsaved
	}
	s.log.Debug("saved document", zap.String("id", snap.ID()))
	return nil
}

// Flush runs a pending debounced save now and waits for one the timer has
// already started, so every edit made before the call is written when it
// returns.
func (s *Store) Flush(ctx context.Context) error {
	return s.debounce.Flush(ctx)
}

// SavePending reports whether a debounced save is scheduled.
func (s *Store) SavePending() bool {
	return s.debounce.Pending()
}

// Close flushes pending edits. The store must not be used afterwards.
func (s *Store) Close(ctx context.Context) error {
	return s.Flush(ctx)
}

// Duplicate persists a copy of the active document under a new id, with
// " (copy)" appended to its title, and returns the new id. The active
// document stays the original and is not modified.
func (s *Store) Duplicate(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.doc.ID == "" {
		s.mu.Unlock()
		return "", ErrNoDocument
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	newID := s.newID(types.PrefixCV)
	snap.Document.ID = newID
	snap.Document.Title += " (copy)"
	snap.UpdatedAt = s.now()

	if err := s.adapter.Write(ctx, &snap); err != nil {
		return "", fmt.Errorf("failed to save duplicate of %s: %w", s.ID(), err)
	}
	s.log.Info("duplicated document", zap.String("from", s.ID()), zap.String("to", newID))
	return newID, nil
}

// Reset replaces the document content with the empty shape, keeping its id.
// The layout is kept. Nothing is persisted until the next save.
func (s *Store) Reset() error {
	return s.edit(func() error {
		s.doc = types.NewDocument(s.doc.ID)
		return nil
	})
}

// Delete removes the stored snapshot for id. Deleting the active document also
// clears it from the store and drops any pending save. It reports false when
// nothing was stored under id.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	active := s.ID() == id
	if active {
		s.debounce.Cancel()
		s.debounce.wait()
	}

	err := s.adapter.Delete(ctx, id)
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return false, fmt.Errorf("failed to delete %s: %w", id, err)
	}

	if active {
		s.mu.Lock()
		s.doc = types.NewDocument("")
		s.layout = types.DefaultLayout()
		s.status = types.StatusSaved
		s.lastSaved = time.Time{}
		s.revision++
		s.mu.Unlock()
	}
	return err == nil, nil
}

// ImportDocument replaces the content of the active document with doc, as
// produced by a document parser, and saves immediately. The active id and
// title are kept; missing sequences and item ids are filled in.
func (s *Store) ImportDocument(ctx context.Context, doc types.CVDocument) error {
	imported := doc.Clone()
	imported.Normalize(s.newID)
	return s.structural(ctx, func() error {
		imported.ID = s.doc.ID
		imported.Title = s.doc.Title
		s.doc = imported
		return nil
	})
}

// UpdateTitle sets the document title.
func (s *Store) UpdateTitle(title string) error {
	return s.field(func() error {
		s.doc.Title = title
		return nil
	})
}

// UpdatePersonalInfoField sets one personal-info field by its JSON name.
// Malformed contact values are stored anyway; see Warnings.
func (s *Store) UpdatePersonalInfoField(field string, value any) error {
	return s.field(func() error {
		return s.doc.PersonalInfo.SetField(field, value)
	})
}

// UpdateSummary sets the summary text.
func (s *Store) UpdateSummary(summary string) error {
	return s.field(func() error {
		s.doc.Summary = summary
		return nil
	})
}

// edit applies fn to the active document under the lock and marks the store
// unsaved when fn succeeds. A failing fn must leave the state untouched.
func (s *Store) edit(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.ID == "" {
		return ErrNoDocument
	}
	if err := fn(); err != nil {
		return err
	}
	s.touchLocked()
	return nil
}

// field is an edit followed by a debounced save.
func (s *Store) field(fn func() error) error {
	if err := s.edit(fn); err != nil {
		return err
	}
	s.debounce.Schedule()
	return nil
}

// structural is an edit followed by an immediate save, which also covers any
// pending debounced one.
func (s *Store) structural(ctx context.Context, fn func() error) error {
	if err := s.edit(fn); err != nil {
		return err
	}
	s.debounce.Cancel()
	return s.Save(ctx)
}

func (s *Store) touchLocked() {
	s.status = types.StatusUnsaved
	s.revision++
}

func (s *Store) snapshotLocked() types.Snapshot {
	return types.Snapshot{
		Document:         s.doc.Clone(),
		SelectedTemplate: s.template,
		Language:         s.language,
		Layout:           s.layout.Clone(),
		UpdatedAt:        s.lastSaved,
	}
}

// ID returns the active document id, empty when there is none.
func (s *Store) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.ID
}

// Snapshot returns a deep copy of the full current state.
func (s *Store) Snapshot() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Document returns a deep copy of the active document.
func (s *Store) Document() types.CVDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Layout returns a deep copy of the layout state.
func (s *Store) Layout() types.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Clone()
}

// Status returns the save status.
func (s *Store) Status() types.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastSaved returns the time of the last successful save, zero if none.
func (s *Store) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// LastError returns the error of the last failed save, nil after a success.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Warnings returns advisory validation messages for the personal info.
func (s *Store) Warnings() []types.FieldWarning {
	return types.ValidatePersonalInfo(s.Document().PersonalInfo)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
