package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSnapshot = `{
	"cvData": {
		"id": "cv_1",
		"title": "Mon CV",
		"personalInfo": {"firstName": "Ada", "photo": null, "drivingLicense": []},
		"experiences": [{"id": "exp_1", "company": "Analytical Engines"}],
		"skills": [{"id": "skill_1", "name": "Math", "level": 5}],
		"hobbies": ["chess"]
	},
	"selectedTemplate": "classic",
	"language": "en",
	"sectionsOrder": ["personalInfo", "experience"],
	"visibleSections": {"personalInfo": true, "experience": true},
	"optionalFields": {"personalInfo": {"gender": false}}
}`

func TestValidateSnapshot_Valid(t *testing.T) {
	assert.NoError(t, ValidateSnapshot([]byte(validSnapshot)))
}

func TestValidateSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing cvData", `{"sectionsOrder": [], "visibleSections": {}, "optionalFields": {}}`},
		{"item without id", `{"cvData": {"id": "cv_1", "personalInfo": {}, "educations": [{"school": "x"}]}, "sectionsOrder": [], "visibleSections": {}, "optionalFields": {}}`},
		{"visibility not boolean", `{"cvData": {"id": "cv_1", "personalInfo": {}}, "sectionsOrder": [], "visibleSections": {"summary": "yes"}, "optionalFields": {}}`},
		{"skill level out of range", `{"cvData": {"id": "cv_1", "personalInfo": {}, "skills": [{"id": "s", "level": 9}]}, "sectionsOrder": [], "visibleSections": {}, "optionalFields": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tt.json))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateSnapshot_NotJSON(t *testing.T) {
	err := ValidateSnapshot([]byte("{not json"))
	require.Error(t, err)
}

func TestValidateImport(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"bare document", `{"personalInfo": {"firstName": "Ana"}, "skills": [{"name": "Go", "level": 9}]}`, false},
		{"wrapped snapshot", validSnapshot, false},
		{"items without ids", `{"experiences": [{"company": "Acme"}]}`, false},
		{"hobbies not strings", `{"hobbies": [1, 2]}`, true},
		{"wrapped experiences not a list", `{"cvData": {"experiences": "Acme"}}`, true},
		{"not an object", `["cv"]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImport([]byte(tt.json))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, Import, validationErr.Kind)
			assert.Contains(t, err.Error(), "cv_import validation failed")
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	err := Validate(Kind("resume"), []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, Kind("resume"), loadErr.Kind)
}
