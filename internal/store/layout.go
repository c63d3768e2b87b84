package store

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-builder/internal/types"
)

// ToggleSectionCollapse flips whether a section's editor is collapsed. It is
// an editing affordance only and does not mark the document unsaved.
func (s *Store) ToggleSectionCollapse(key types.SectionKey) error {
	if !types.IsKnownSection(key) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.layout.CollapsedSections == nil {
		s.layout.CollapsedSections = make(map[types.SectionKey]bool)
	}
	s.layout.CollapsedSections[key] = !s.layout.CollapsedSections[key]
	return nil
}

// ToggleSectionVisibility flips whether a section is rendered and saves.
func (s *Store) ToggleSectionVisibility(ctx context.Context, key types.SectionKey) error {
	if !types.IsKnownSection(key) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	return s.structural(ctx, func() error {
		visible := make(map[types.SectionKey]bool, len(s.layout.VisibleSections)+1)
		for k, v := range s.layout.VisibleSections {
			visible[k] = v
		}
		visible[key] = !visible[key]
		s.layout.VisibleSections = visible
		return nil
	})
}

// ReorderSections replaces the section order with order, stored as given, and
// saves. Unknown or repeated keys are ignored at render time and sections
// left out of order are simply not rendered.
func (s *Store) ReorderSections(ctx context.Context, order []types.SectionKey) error {
	next := append([]types.SectionKey{}, order...)
	return s.structural(ctx, func() error {
		s.layout.SectionsOrder = next
		return nil
	})
}

// ToggleOptionalField flips an optional field of a section and saves.
func (s *Store) ToggleOptionalField(ctx context.Context, section types.SectionKey, field string) error {
	if !types.IsKnownSection(section) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	return s.structural(ctx, func() error {
		optional := s.layout.Clone().OptionalFields
		if optional == nil {
			optional = make(map[types.SectionKey]map[string]bool)
		}
		if optional[section] == nil {
			optional[section] = make(map[string]bool)
		}
		optional[section][field] = !optional[section][field]
		s.layout.OptionalFields = optional
		return nil
	})
}

// UpdateTemplate selects the rendering template and saves.
func (s *Store) UpdateTemplate(ctx context.Context, template string) error {
	return s.structural(ctx, func() error {
		s.template = template
		return nil
	})
}

// UpdateLanguage selects the interface language and saves.
func (s *Store) UpdateLanguage(ctx context.Context, language string) error {
	return s.structural(ctx, func() error {
		s.language = language
		return nil
	})
}

// Template returns the selected template name.
func (s *Store) Template() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// Language returns the selected interface language.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// fillLayout completes a stored layout with defaults for anything missing, so
// snapshots written by older versions load with every flag defined.
func fillLayout(stored types.Layout) types.Layout {
	def := types.DefaultLayout()
	out := stored.Clone()
	if out.SectionsOrder == nil {
		out.SectionsOrder = def.SectionsOrder
	}
	if out.VisibleSections == nil {
		out.VisibleSections = def.VisibleSections
	}
	if out.CollapsedSections == nil {
		out.CollapsedSections = def.CollapsedSections
	}
	if out.OptionalFields == nil {
		out.OptionalFields = def.OptionalFields
	}
	for _, key := range types.AllSections {
		if _, ok := out.VisibleSections[key]; !ok {
			out.VisibleSections[key] = def.VisibleSections[key]
		}
	}
	return out
}
