package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()

	assert.Equal(t, AllSections, l.SectionsOrder)
	assert.True(t, l.VisibleSections[SectionExperience])
	assert.False(t, l.VisibleSections[SectionLanguages])
	assert.False(t, l.VisibleSections[SectionHobbies])
	assert.False(t, l.CollapsedSections[SectionPersonalInfo])
	assert.True(t, l.CollapsedSections[SectionSummary])
	assert.False(t, l.OptionalFieldEnabled(SectionPersonalInfo, "linkedin"))
	assert.Len(t, l.OptionalFields[SectionPersonalInfo], len(OptionalPersonalFields))
}

func TestLayoutClone_IsDeep(t *testing.T) {
	l := DefaultLayout()
	cp := l.Clone()

	cp.SectionsOrder[0] = SectionHobbies
	cp.VisibleSections[SectionLanguages] = true
	cp.OptionalFields[SectionPersonalInfo]["gender"] = true

	assert.Equal(t, SectionPersonalInfo, l.SectionsOrder[0])
	assert.False(t, l.VisibleSections[SectionLanguages])
	assert.False(t, l.OptionalFields[SectionPersonalInfo]["gender"])
}

func TestIsKnownSection(t *testing.T) {
	assert.True(t, IsKnownSection(SectionProjects))
	assert.False(t, IsKnownSection("references"))
}
