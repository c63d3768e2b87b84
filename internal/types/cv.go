// Package types defines the CV document model, its layout state and the
// persisted snapshot shape.
package types

import "strings"

// DefaultTitle is the title given to documents that were never named.
const DefaultTitle = "CV sans titre"

// PersonalInfo holds the identity and contact block of a CV.
// Photo is a data URI, nil when no photo was uploaded.
type PersonalInfo struct {
	Photo              *string  `json:"photo"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	JobTitle           string   `json:"jobTitle"`
	UseJobTitleAsTitle bool     `json:"useJobTitleAsTitle"`
	Email              string   `json:"email" validate:"omitempty,email"`
	Phone              string   `json:"phone" validate:"omitempty,phone"`
	Address            string   `json:"address"`
	PostalCode         string   `json:"postalCode"`
	City               string   `json:"city"`
	Country            string   `json:"country"`
	BirthDate          string   `json:"birthDate"`
	BirthPlace         string   `json:"birthPlace"`
	DrivingLicense     []string `json:"drivingLicense"`
	Gender             string   `json:"gender"`
	Nationality        string   `json:"nationality"`
	LinkedIn           string   `json:"linkedin" validate:"omitempty,url"`
	Website            string   `json:"website" validate:"omitempty,url"`
}

// FullName joins first and last name, skipping empty parts.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.Join([]string{strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName)}, " "))
}

// SetField assigns one field by its JSON name. An empty photo removes it.
func (p *PersonalInfo) SetField(field string, value any) error {
	const rec = "personalInfo"
	next := *p
	var err error
	switch field {
	case "photo":
		var photo string
		if photo, err = asString(rec, field, value); err == nil {
			next.Photo = nil
			if photo != "" {
				next.Photo = &photo
			}
		}
	case "firstName":
		next.FirstName, err = asString(rec, field, value)
	case "lastName":
		next.LastName, err = asString(rec, field, value)
	case "jobTitle":
		next.JobTitle, err = asString(rec, field, value)
	case "useJobTitleAsTitle":
		next.UseJobTitleAsTitle, err = asBool(rec, field, value)
	case "email":
		next.Email, err = asString(rec, field, value)
	case "phone":
		next.Phone, err = asString(rec, field, value)
	case "address":
		next.Address, err = asString(rec, field, value)
	case "postalCode":
		next.PostalCode, err = asString(rec, field, value)
	case "city":
		next.City, err = asString(rec, field, value)
	case "country":
		next.Country, err = asString(rec, field, value)
	case "birthDate":
		next.BirthDate, err = asString(rec, field, value)
	case "birthPlace":
		next.BirthPlace, err = asString(rec, field, value)
	case "drivingLicense":
		next.DrivingLicense, err = asStrings(rec, field, value)
	case "gender":
		next.Gender, err = asString(rec, field, value)
	case "nationality":
		next.Nationality, err = asString(rec, field, value)
	case "linkedin":
		next.LinkedIn, err = asString(rec, field, value)
	case "website":
		next.Website, err = asString(rec, field, value)
	default:
		return unknownField(rec, field)
	}
	if err != nil {
		return err
	}
	*p = next
	return nil
}

func (p PersonalInfo) clone() PersonalInfo {
	if p.Photo != nil {
		photo := *p.Photo
		p.Photo = &photo
	}
	p.DrivingLicense = cloneStrings(p.DrivingLicense)
	return p
}

// CVDocument is the aggregate edited by the store. ID is assigned once at
// creation; every item of a repeated section carries an id unique within its
// sequence.
type CVDocument struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	PersonalInfo   PersonalInfo          `json:"personalInfo"`
	Summary        string                `json:"summary"`
	Experiences    []ExperienceRecord    `json:"experiences"`
	Educations     []EducationRecord     `json:"educations"`
	Skills         []SkillRecord         `json:"skills"`
	Languages      []LanguageRecord      `json:"languages"`
	Certifications []CertificationRecord `json:"certifications"`
	Projects       []ProjectRecord       `json:"projects"`
	Hobbies        []string              `json:"hobbies"`
}

// NewDocument returns the default empty shape for the given id.
func NewDocument(id string) CVDocument {
	return CVDocument{
		ID:             id,
		Title:          DefaultTitle,
		PersonalInfo:   PersonalInfo{DrivingLicense: []string{}},
		Experiences:    []ExperienceRecord{},
		Educations:     []EducationRecord{},
		Skills:         []SkillRecord{},
		Languages:      []LanguageRecord{},
		Certifications: []CertificationRecord{},
		Projects:       []ProjectRecord{},
		Hobbies:        []string{},
	}
}

// ExampleDocument returns a document pre-filled with sample content, used when
// a new CV should start from an example rather than blank.
func ExampleDocument(docID string, id IDFunc) CVDocument {
	doc := NewDocument(docID)
	doc.Title = "Mon CV"
	doc.PersonalInfo = PersonalInfo{
		FirstName:      "Jean",
		LastName:       "Dupont",
		JobTitle:       "Développeur Full Stack",
		Email:          "jean.dupont@email.com",
		Phone:          "+33 6 12 34 56 78",
		Address:        "123 Rue Example",
		PostalCode:     "75001",
		City:           "Paris",
		Country:        "France",
		DrivingLicense: []string{},
		LinkedIn:       "https://linkedin.com/in/jeandupont",
		Website:        "https://jeandupont.com",
	}
	doc.Summary = "Développeur Full Stack passionné avec 5+ ans d'expérience dans la création d'applications web modernes. Expert en React, Node.js et architectures cloud."

	exp := NewExperience(id)
	exp.JobTitle, exp.Company, exp.Location = "Senior Developer", "TechCorp", "Paris"
	exp.StartDate, exp.EndDate = "2021-01", "2023-12"
	exp.Description = "Développement d'applications web modernes avec React et Node.js. Gestion d'une équipe de 5 développeurs."
	doc.Experiences = append(doc.Experiences, exp)

	edu := NewEducation(id)
	edu.Degree, edu.School, edu.Location = "Master en Informatique", "Université Paris-Saclay", "Paris"
	edu.StartDate, edu.EndDate = "2017", "2019"
	edu.Description = "Spécialisation en Intelligence Artificielle"
	doc.Educations = append(doc.Educations, edu)

	for _, s := range []struct {
		name  string
		level int
	}{{"React", 5}, {"Node.js", 4}, {"TypeScript", 4}, {"Python", 3}} {
		skill := NewSkill(id)
		skill.Name, skill.Level = s.name, s.level
		doc.Skills = append(doc.Skills, skill)
	}

	fr := NewLanguage(id)
	fr.Name, fr.Level = "Français", LevelNative
	en := NewLanguage(id)
	en.Name, en.Level = "Anglais", LevelFluent
	doc.Languages = append(doc.Languages, fr, en)

	doc.Hobbies = []string{"Photographie", "Randonnée", "Gaming"}
	return doc
}

// Clone returns a deep copy.
func (d CVDocument) Clone() CVDocument {
	out := d
	out.PersonalInfo = d.PersonalInfo.clone()
	out.Experiences = cloneRecords(d.Experiences, ExperienceRecord.clone)
	out.Educations = cloneRecords(d.Educations, nil)
	out.Skills = cloneRecords(d.Skills, nil)
	out.Languages = cloneRecords(d.Languages, nil)
	out.Certifications = cloneRecords(d.Certifications, nil)
	out.Projects = cloneRecords(d.Projects, ProjectRecord.clone)
	out.Hobbies = cloneStrings(d.Hobbies)
	return out
}

func cloneRecords[T any](in []T, deep func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, r := range in {
		if deep != nil {
			r = deep(r)
		}
		out[i] = r
	}
	return out
}

// Normalize makes a document coming from outside the store (a parser, an old
// snapshot) safe to edit: nil sequences become empty and items without an id,
// or with an id already used earlier in the same sequence, get a fresh one.
// The title is left as is: an empty title is a valid user choice.
func (d *CVDocument) Normalize(id IDFunc) {
	if d.PersonalInfo.DrivingLicense == nil {
		d.PersonalInfo.DrivingLicense = []string{}
	}
	if d.Hobbies == nil {
		d.Hobbies = []string{}
	}
	d.Experiences = normalizeRecords(d.Experiences, PrefixExperience, id, func(r *ExperienceRecord, v string) { r.ID = v })
	d.Educations = normalizeRecords(d.Educations, PrefixEducation, id, func(r *EducationRecord, v string) { r.ID = v })
	d.Skills = normalizeRecords(d.Skills, PrefixSkill, id, func(r *SkillRecord, v string) { r.ID = v })
	d.Languages = normalizeRecords(d.Languages, PrefixLanguage, id, func(r *LanguageRecord, v string) { r.ID = v })
	d.Certifications = normalizeRecords(d.Certifications, PrefixCertification, id, func(r *CertificationRecord, v string) { r.ID = v })
	d.Projects = normalizeRecords(d.Projects, PrefixProject, id, func(r *ProjectRecord, v string) { r.ID = v })
	for i := range d.Experiences {
		if d.Experiences[i].Current {
			d.Experiences[i].EndDate = ""
		}
		if d.Experiences[i].Achievements == nil {
			d.Experiences[i].Achievements = []string{}
		}
		if d.Experiences[i].Technologies == nil {
			d.Experiences[i].Technologies = []string{}
		}
	}
	for i := range d.Educations {
		if d.Educations[i].Current {
			d.Educations[i].EndDate = ""
		}
	}
	for i := range d.Skills {
		d.Skills[i].Level = min(max(d.Skills[i].Level, 1), 5)
	}
	for i := range d.Projects {
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
}

func normalizeRecords[T Identified](in []T, prefix string, id IDFunc, setID func(*T, string)) []T {
	if in == nil {
		return []T{}
	}
	seen := make(map[string]bool, len(in))
	for i := range in {
		cur := in[i].GetID()
		if cur == "" || seen[cur] {
			cur = id(prefix)
			setID(&in[i], cur)
		}
		seen[cur] = true
	}
	return in
}

// IndexOf returns the position of the item with the given id, or -1.
func IndexOf[T Identified](items []T, id string) int {
	for i, item := range items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}
