package types

import "time"

// Snapshot is the persisted form of a CV: the document, the layout and the
// scalar preferences. It is what a persistence adapter writes and reads.
type Snapshot struct {
	Document         CVDocument `json:"cvData"`
	SelectedTemplate string     `json:"selectedTemplate"`
	Language         string     `json:"language"`
	Layout
	UpdatedAt time.Time `json:"updatedAt"`
}

// ID returns the document id the snapshot is keyed by.
func (s *Snapshot) ID() string {
	return s.Document.ID
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Document = s.Document.Clone()
	out.Layout = s.Layout.Clone()
	return out
}

// Summary is the registry listing entry for a stored CV.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the listing entry for this snapshot.
func (s *Snapshot) Summary() Summary {
	return Summary{ID: s.Document.ID, Title: s.Document.Title, UpdatedAt: s.UpdatedAt}
}

// SaveStatus is the persistence state of the store's active document.
type SaveStatus string

// Save states. Transitions go unsaved -> saving -> saved; any mutation moves
// back to unsaved.
const (
	StatusUnsaved SaveStatus = "unsaved"
	StatusSaving  SaveStatus = "saving"
	StatusSaved   SaveStatus = "saved"
)
