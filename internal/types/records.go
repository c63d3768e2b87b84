package types

// Identified is implemented by every record stored in a repeated section.
type Identified interface {
	GetID() string
}

// ExperienceRecord is one entry of the experience section.
type ExperienceRecord struct {
	ID           string   `json:"id"`
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
}

// NewExperience returns an empty experience with a fresh id.
func NewExperience(id IDFunc) ExperienceRecord {
	return ExperienceRecord{ID: id(PrefixExperience), Achievements: []string{}, Technologies: []string{}}
}

// GetID implements Identified.
func (r ExperienceRecord) GetID() string { return r.ID }

// SetField assigns one field by its JSON name.
// A record is either ongoing or has an end date: setting current=true clears
// endDate and setting a non-empty endDate clears current.
func (r *ExperienceRecord) SetField(field string, value any) error {
	const rec = "experience"
	next := *r
	var err error
	switch field {
	case "jobTitle":
		next.JobTitle, err = asString(rec, field, value)
	case "company":
		next.Company, err = asString(rec, field, value)
	case "location":
		next.Location, err = asString(rec, field, value)
	case "startDate":
		next.StartDate, err = asString(rec, field, value)
	case "endDate":
		var end string
		if end, err = asString(rec, field, value); err == nil {
			next.EndDate = end
			if end != "" {
				next.Current = false
			}
		}
	case "current":
		var current bool
		if current, err = asBool(rec, field, value); err == nil {
			next.Current = current
			if current {
				next.EndDate = ""
			}
		}
	case "description":
		next.Description, err = asString(rec, field, value)
	case "achievements":
		next.Achievements, err = asStrings(rec, field, value)
	case "technologies":
		next.Technologies, err = asStrings(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}

func (r ExperienceRecord) clone() ExperienceRecord {
	r.Achievements = cloneStrings(r.Achievements)
	r.Technologies = cloneStrings(r.Technologies)
	return r
}

// EducationRecord is one entry of the education section.
type EducationRecord struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// NewEducation returns an empty education entry with a fresh id.
func NewEducation(id IDFunc) EducationRecord {
	return EducationRecord{ID: id(PrefixEducation)}
}

// GetID implements Identified.
func (r EducationRecord) GetID() string { return r.ID }

// SetField assigns one field by its JSON name, with the same current/endDate
// rule as ExperienceRecord.
func (r *EducationRecord) SetField(field string, value any) error {
	const rec = "education"
	next := *r
	var err error
	switch field {
	case "degree":
		next.Degree, err = asString(rec, field, value)
	case "school":
		next.School, err = asString(rec, field, value)
	case "location":
		next.Location, err = asString(rec, field, value)
	case "startDate":
		next.StartDate, err = asString(rec, field, value)
	case "endDate":
		var end string
		if end, err = asString(rec, field, value); err == nil {
			next.EndDate = end
			if end != "" {
				next.Current = false
			}
		}
	case "current":
		var current bool
		if current, err = asBool(rec, field, value); err == nil {
			next.Current = current
			if current {
				next.EndDate = ""
			}
		}
	case "description":
		next.Description, err = asString(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}

// Skill categories.
const (
	SkillTechnical = "technical"
	SkillSoft      = "soft"
	SkillLanguage  = "language"
)

// SkillRecord is one entry of the skills section. Level ranges from 1 to 5.
type SkillRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// NewSkill returns a technical skill of level 3 with a fresh id.
func NewSkill(id IDFunc) SkillRecord {
	return SkillRecord{ID: id(PrefixSkill), Level: 3, Category: SkillTechnical}
}

// GetID implements Identified.
func (r SkillRecord) GetID() string { return r.ID }

// SetField assigns one field by its JSON name. Levels are clamped to 1..5.
func (r *SkillRecord) SetField(field string, value any) error {
	const rec = "skill"
	next := *r
	var err error
	switch field {
	case "name":
		next.Name, err = asString(rec, field, value)
	case "level":
		var level int
		if level, err = asInt(rec, field, value); err == nil {
			next.Level = min(max(level, 1), 5)
		}
	case "category":
		next.Category, err = asString(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}

// Language proficiency levels.
const (
	LevelNative       = "native"
	LevelFluent       = "fluent"
	LevelIntermediate = "intermediate"
	LevelBeginner     = "beginner"
)

// LanguageRecord is one entry of the languages section.
type LanguageRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// NewLanguage returns an intermediate-level language with a fresh id.
func NewLanguage(id IDFunc) LanguageRecord {
	return LanguageRecord{ID: id(PrefixLanguage), Level: LevelIntermediate}
}

// GetID implements Identified.
func (r LanguageRecord) GetID() string { return r.ID }

// SetField assigns one field by its JSON name.
func (r *LanguageRecord) SetField(field string, value any) error {
	const rec = "language"
	next := *r
	var err error
	switch field {
	case "name":
		next.Name, err = asString(rec, field, value)
	case "level":
		next.Level, err = asString(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}

// CertificationRecord is one entry of the certifications section.
type CertificationRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// NewCertification returns an empty certification with a fresh id.
func NewCertification(id IDFunc) CertificationRecord {
	return CertificationRecord{ID: id(PrefixCertification)}
}

// GetID implements Identified.
func (r CertificationRecord) GetID() string { return r.ID }

// SetField assigns one field by its JSON name.
func (r *CertificationRecord) SetField(field string, value any) error {
	const rec = "certification"
	next := *r
	var err error
	switch field {
	case "name":
		next.Name, err = asString(rec, field, value)
	case "issuer":
		next.Issuer, err = asString(rec, field, value)
	case "date":
		next.Date, err = asString(rec, field, value)
	case "url":
		next.URL, err = asString(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}

// ProjectRecord is one entry of the projects section.
type ProjectRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Technologies []string `json:"technologies"`
}

// NewProject returns an empty project with a fresh id.
func NewProject(id IDFunc) ProjectRecord {
	return ProjectRecord{ID: id(PrefixProject), Technologies: []string{}}
}

// GetID implements Identified.
func (r ProjectRecord) GetID() string { return r.ID }

// SetField assigns one field by its JSON name.
func (r *ProjectRecord) SetField(field string, value any) error {
	const rec = "project"
	next := *r
	var err error
	switch field {
	case "name":
		next.Name, err = asString(rec, field, value)
	case "description":
		next.Description, err = asString(rec, field, value)
	case "url":
		next.URL, err = asString(rec, field, value)
	case "technologies":
		next.Technologies, err = asStrings(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*r = next
	return nil
}

func (r ProjectRecord) clone() ProjectRecord {
	r.Technologies = cloneStrings(r.Technologies)
	return r
}
