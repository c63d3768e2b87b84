package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

func TestExperienceRecord_CurrentClearsEndDate(t *testing.T) {
	exp := NewExperience(seqIDs())
	require.NoError(t, exp.SetField("endDate", "2023-12"))
	assert.Equal(t, "2023-12", exp.EndDate)

	require.NoError(t, exp.SetField("current", true))
	assert.True(t, exp.Current)
	assert.Empty(t, exp.EndDate)
}

func TestExperienceRecord_EndDateClearsCurrent(t *testing.T) {
	exp := NewExperience(seqIDs())
	require.NoError(t, exp.SetField("current", "true"))
	require.NoError(t, exp.SetField("endDate", "2024-06"))

	assert.False(t, exp.Current)
	assert.Equal(t, "2024-06", exp.EndDate)
}

func TestExperienceRecord_EmptyEndDateKeepsCurrent(t *testing.T) {
	exp := NewExperience(seqIDs())
	require.NoError(t, exp.SetField("current", true))
	require.NoError(t, exp.SetField("endDate", ""))
	assert.True(t, exp.Current)
}

func TestEducationRecord_CurrentExclusivity(t *testing.T) {
	edu := NewEducation(seqIDs())
	require.NoError(t, edu.SetField("endDate", "2019"))
	require.NoError(t, edu.SetField("current", true))
	assert.Empty(t, edu.EndDate)

	require.NoError(t, edu.SetField("endDate", "2020"))
	assert.False(t, edu.Current)
}

func TestSetField_Errors(t *testing.T) {
	tests := []struct {
		name    string
		set     func() error
		wantErr error
	}{
		{
			name:    "unknown experience field",
			set:     func() error { e := NewExperience(seqIDs()); return e.SetField("salary", "1") },
			wantErr: ErrUnknownField,
		},
		{
			name:    "id is not settable",
			set:     func() error { s := NewSkill(seqIDs()); return s.SetField("id", "x") },
			wantErr: ErrUnknownField,
		},
		{
			name:    "bool field with garbage",
			set:     func() error { e := NewEducation(seqIDs()); return e.SetField("current", "maybe") },
			wantErr: ErrFieldType,
		},
		{
			name:    "string field with number",
			set:     func() error { l := NewLanguage(seqIDs()); return l.SetField("name", 42) },
			wantErr: ErrFieldType,
		},
		{
			name:    "int field with text",
			set:     func() error { s := NewSkill(seqIDs()); return s.SetField("level", "high") },
			wantErr: ErrFieldType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetField_FailureLeavesRecordUntouched(t *testing.T) {
	exp := NewExperience(seqIDs())
	require.NoError(t, exp.SetField("company", "Acme"))

	err := exp.SetField("company", 12)
	require.Error(t, err)
	assert.Equal(t, "Acme", exp.Company)
}

func TestSkillRecord_LevelClamped(t *testing.T) {
	skill := NewSkill(seqIDs())
	require.NoError(t, skill.SetField("level", 9))
	assert.Equal(t, 5, skill.Level)
	require.NoError(t, skill.SetField("level", "0"))
	assert.Equal(t, 1, skill.Level)
	require.NoError(t, skill.SetField("level", float64(4)))
	assert.Equal(t, 4, skill.Level)
}

func TestListFields(t *testing.T) {
	exp := NewExperience(seqIDs())
	require.NoError(t, exp.SetField("technologies", "Go, Postgres, ,Redis"))
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, exp.Technologies)

	require.NoError(t, exp.SetField("achievements", []any{"Shipped v2"}))
	assert.Equal(t, []string{"Shipped v2"}, exp.Achievements)

	err := exp.SetField("achievements", []any{"ok", 3})
	assert.ErrorIs(t, err, ErrFieldType)
	assert.Equal(t, []string{"Shipped v2"}, exp.Achievements)
}

func TestPersonalInfo_SetField(t *testing.T) {
	var p PersonalInfo
	require.NoError(t, p.SetField("firstName", "Ada"))
	require.NoError(t, p.SetField("lastName", "Lovelace"))
	require.NoError(t, p.SetField("drivingLicense", "B, A2"))
	require.NoError(t, p.SetField("photo", "data:image/png;base64,AAAA"))

	assert.Equal(t, "Ada Lovelace", p.FullName())
	assert.Equal(t, []string{"B", "A2"}, p.DrivingLicense)
	require.NotNil(t, p.Photo)

	require.NoError(t, p.SetField("photo", ""))
	assert.Nil(t, p.Photo)

	assert.ErrorIs(t, p.SetField("shoeSize", "42"), ErrUnknownField)
}

func TestNewID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := NewID(PrefixExperience)
		assert.Regexp(t, `^exp_\d+_[0-9a-f]{10}$`, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
