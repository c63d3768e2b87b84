package store

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-builder/internal/types"
)

// fieldSetter is a pointer to a record that can update one field by name.
type fieldSetter[T any] interface {
	*T
	SetField(field string, value any) error
}

// addItem appends item to a copy of items.
func addItem[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// updateItem returns a copy of items with one field of the record id changed.
// items itself is never modified, so a failed update leaves it intact.
func updateItem[T types.Identified, P fieldSetter[T]](items []T, id, field string, value any) ([]T, error) {
	i := types.IndexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	rec := items[i]
	if err := P(&rec).SetField(field, value); err != nil {
		return nil, err
	}
	out := append([]T(nil), items...)
	out[i] = rec
	return out, nil
}

// deleteItem returns a copy of items without the record id.
func deleteItem[T types.Identified](items []T, id string) ([]T, error) {
	i := types.IndexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}

// AddExperience appends an empty experience, saves, and returns its id.
func (s *Store) AddExperience(ctx context.Context) (string, error) {
	rec := types.NewExperience(s.newID)
	return rec.ID, s.structural(ctx, func() error {
		s.doc.Experiences = addItem(s.doc.Experiences, rec)
		return nil
	})
}

// UpdateExperienceField sets one field of the experience id.
func (s *Store) UpdateExperienceField(id, field string, value any) error {
	return s.field(func() error {
		items, err := updateItem(s.doc.Experiences, id, field, value)
		if err != nil {
			return err
		}
		s.doc.Experiences = items
		return nil
	})
}

// DeleteExperience removes the experience id and saves.
func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	return s.structural(ctx, func() error {
		items, err := deleteItem(s.doc.Experiences, id)
		if err != nil {
			return err
		}
		s.doc.Experiences = items
		return nil
	})
}

// AddEducation appends an empty education entry, saves, and returns its id.
func (s *Store) AddEducation(ctx context.Context) (string, error) {
	rec := types.NewEducation(s.newID)
	return rec.ID, s.structural(ctx, func() error {
		s.doc.Educations = addItem(s.doc.Educations, rec)
		return nil
	})
}

// UpdateEducationField sets one field of the education entry id.
func (s *Store) UpdateEducationField(id, field string, value any) error {
	return s.field(func() error {
		items, err := updateItem(s.doc.Educations, id, field, value)
		if err != nil {
			return err
		}
		s.doc.Educations = items
		return nil
	})
}

// DeleteEducation removes the education entry id and saves.
func (s *Store) DeleteEducation(ctx context.Context, id string) error {
	return s.structural(ctx, func() error {
		items, err := deleteItem(s.doc.Educations, id)
		if err != nil {
			return err
		}
		s.doc.Educations = items
		return nil
	})
}

// AddSkill appends a skill with default level and category.
func (s *Store) AddSkill(ctx context.Context) (string, error) {
	rec := types.NewSkill(s.newID)
	return rec.ID, s.structural(ctx, func() error {
		s.doc.Skills = addItem(s.doc.Skills, rec)
		return nil
	})
}

// UpdateSkillField sets one field of the skill id. Levels are clamped to 1..5.
func (s *Store) UpdateSkillField(id, field string, value any) error {
	return s.field(func() error {
		items, err := updateItem(s.doc.Skills, id, field, value)
		if err != nil {
			return err
		}
		s.doc.Skills = items
		return nil
	})
}

// DeleteSkill removes the skill id and saves.
func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	return s.structural(ctx, func() error {
		items, err := deleteItem(s.doc.Skills, id)
		if err != nil {
			return err
		}
		s.doc.Skills = items
		return nil
	})
}

// AddLanguage appends a spoken language at intermediate level.
func (s *Store) AddLanguage(ctx context.Context) (string, error) {
	rec := types.NewLanguage(s.newID)
	return rec.ID, s.structural(ctx, func() error {
		s.doc.Languages = addItem(s.doc.Languages, rec)
		return nil
	})
}

// UpdateLanguageField sets one field of the language id.
func (s *Store) UpdateLanguageField(id, field string, value any) error {
	return s.field(func() error {
		items, err := updateItem(s.doc.Languages, id, field, value)
		if err != nil {
			return err
		}
		s.doc.Languages = items
		return nil
	})
}

// DeleteLanguage removes the language id and saves.
func (s *Store) DeleteLanguage(ctx context.Context, id string) error {
	return s.structural(ctx, func() error {
		items, err := deleteItem(s.doc.Languages, id)
		if err != nil {
			return err
		}
		s.doc.Languages = items
		return nil
	})
}

// AddCertification appends an empty certification, saves, and returns its id.
func (s *Store) AddCertification(ctx context.Context) (string, error) {
	rec := types.NewCertification(s.newID)
	return rec.ID, s.structural(ctx, func() error {
		s.doc.Certifications = addItem(s.doc.Certifications, rec)
		return nil
	})
}

// UpdateCertificationField sets one field of the certification id.
func (s *Store) UpdateCertificationField(id, field string, value any) error {
	return s.field(func() error {
		items, err := updateItem(s.doc.Certifications, id, field, value)
		if err != nil {
			return err
		}
		s.doc.Certifications = items
		return nil
	})
}

// DeleteCertification removes the certification id and saves.
func (s *Store) DeleteCertification(ctx context.Context, id string) error {
	return s.structural(ctx, func() error {
		items, err := deleteItem(s.doc.Certifications, id)
		if err != nil {
			return err
		}
		s.doc.Certifications = items
		return nil
	})
}

// AddProject appends an empty project, saves, and returns its id.
func (s *Store) AddProject(ctx context.Context) (string, error) {
	rec := types.NewProject(s.newID)
	return rec.ID, s.structural(ctx, func() error {
		s.doc.Projects = addItem(s.doc.Projects, rec)
		return nil
	})
}

// UpdateProjectField sets one field of the project id.
func (s *Store) UpdateProjectField(id, field string, value any) error {
	return s.field(func() error {
		items, err := updateItem(s.doc.Projects, id, field, value)
		if err != nil {
			return err
		}
		s.doc.Projects = items
		return nil
	})
}

// DeleteProject removes the project id and saves.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.structural(ctx, func() error {
		items, err := deleteItem(s.doc.Projects, id)
		if err != nil {
			return err
		}
		s.doc.Projects = items
		return nil
	})
}

// Hobbies are plain strings addressed by position.

// AddHobby appends hobby and saves.
func (s *Store) AddHobby(ctx context.Context, hobby string) error {
	return s.structural(ctx, func() error {
		s.doc.Hobbies = addItem(s.doc.Hobbies, hobby)
		return nil
	})
}

// UpdateHobby replaces the hobby at index.
func (s *Store) UpdateHobby(index int, hobby string) error {
	return s.field(func() error {
		if index < 0 || index >= len(s.doc.Hobbies) {
			return fmt.Errorf("%w: hobby %d", ErrItemNotFound, index)
		}
		items := append([]string(nil), s.doc.Hobbies...)
		items[index] = hobby
		s.doc.Hobbies = items
		return nil
	})
}

// DeleteHobby removes the hobby at index and saves.
func (s *Store) DeleteHobby(ctx context.Context, index int) error {
	return s.structural(ctx, func() error {
		if index < 0 || index >= len(s.doc.Hobbies) {
			return fmt.Errorf("%w: hobby %d", ErrItemNotFound, index)
		}
		items := make([]string, 0, len(s.doc.Hobbies)-1)
		items = append(items, s.doc.Hobbies[:index]...)
		s.doc.Hobbies = append(items, s.doc.Hobbies[index+1:]...)
		return nil
	})
}
