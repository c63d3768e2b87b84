package rendering

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Preview is the view model of a rendered CV.
type Preview struct {
	Template string
	Accent   string
	Language string
	Header   *Header
	Sections []Section
}

// Header is the identity block rendered for the personalInfo section.
type Header struct {
	Name     string
	JobTitle string
	Photo    string
	Contact  []string
	Extra    []Field
}

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// Section is one rendered section below the header. Exactly one of Text,
// Entries or Items is set, depending on the section.
type Section struct {
	Key     types.SectionKey
	Heading string
	Text    string
	Entries []Entry
	Items   []Item
}

// Entry is a dated item such as a job or a degree.
type Entry struct {
	Title       string
	Subtitle    string
	Location    string
	Period      string
	Description string
	Bullets     []string
	Tags        []string
}

// Item is a short named item, optionally with a detail or a 1..5 level.
type Item struct {
	Name   string
	Detail string
	Level  int
}

// VisibleSections returns the sections to render, in layout order. Unknown
// keys, repeated keys and hidden sections are skipped.
func VisibleSections(layout types.Layout) []types.SectionKey {
	seen := make(map[types.SectionKey]bool, len(layout.SectionsOrder))
	out := make([]types.SectionKey, 0, len(layout.SectionsOrder))
	for _, key := range layout.SectionsOrder {
		if !types.IsKnownSection(key) || seen[key] || !layout.VisibleSections[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// Compose builds the view model for snap. Sections without content are left
// out.
func Compose(snap *types.Snapshot) Preview {
	language := lang(snap.Language)
	tmpl := templateName(snap.SelectedTemplate)
	p := Preview{
		Template: tmpl,
		Accent:   accents[tmpl],
		Language: language,
	}

	doc := &snap.Document
	for _, key := range VisibleSections(snap.Layout) {
		if key == types.SectionPersonalInfo {
			p.Header = composeHeader(doc.PersonalInfo, snap.Layout, language)
			continue
		}
		section := Section{Key: key, Heading: Heading(language, key)}
		switch key {
		case types.SectionSummary:
			section.Text = strings.TrimSpace(doc.Summary)
		case types.SectionExperience:
			for _, e := range doc.Experiences {
				section.Entries = append(section.Entries, Entry{
					Title:       e.JobTitle,
					Subtitle:    e.Company,
					Location:    e.Location,
					Period:      period(e.StartDate, e.EndDate, e.Current, language),
					Description: e.Description,
					Bullets:     nonEmpty(e.Achievements),
					Tags:        nonEmpty(e.Technologies),
				})
			}
		case types.SectionEducation:
			for _, e := range doc.Educations {
				section.Entries = append(section.Entries, Entry{
					Title:       e.Degree,
					Subtitle:    e.School,
					Location:    e.Location,
					Period:      period(e.StartDate, e.EndDate, e.Current, language),
					Description: e.Description,
				})
			}
		case types.SectionCertifications:
			for _, c := range doc.Certifications {
				section.Entries = append(section.Entries, Entry{
					Title:    c.Name,
					Subtitle: c.Issuer,
					Period:   c.Date,
					Location: c.URL,
				})
			}
		case types.SectionProjects:
			for _, pr := range doc.Projects {
				section.Entries = append(section.Entries, Entry{
					Title:       pr.Name,
					Location:    pr.URL,
					Description: pr.Description,
					Tags:        nonEmpty(pr.Technologies),
				})
			}
		case types.SectionSkills:
			for _, s := range doc.Skills {
				section.Items = append(section.Items, Item{Name: s.Name, Level: s.Level})
			}
		case types.SectionLanguages:
			for _, l := range doc.Languages {
				section.Items = append(section.Items, Item{Name: l.Name, Detail: label(language, l.Level)})
			}
		case types.SectionHobbies:
			for _, h := range nonEmpty(doc.Hobbies) {
				section.Items = append(section.Items, Item{Name: h})
			}
		}
		if section.Text == "" && len(section.Entries) == 0 && len(section.Items) == 0 {
			continue
		}
		p.Sections = append(p.Sections, section)
	}
	return p
}

func composeHeader(info types.PersonalInfo, layout types.Layout, language string) *Header {
	h := &Header{Name: info.FullName(), JobTitle: info.JobTitle}
	if info.UseJobTitleAsTitle && info.JobTitle != "" {
		h.Name, h.JobTitle = info.JobTitle, info.FullName()
	}
	if info.Photo != nil {
		h.Photo = *info.Photo
	}

	address := strings.TrimSpace(strings.Join(nonEmpty([]string{
		info.Address,
		strings.TrimSpace(info.PostalCode + " " + info.City),
		info.Country,
	}), ", "))
	h.Contact = nonEmpty([]string{info.Email, info.Phone, address})

	values := map[string]string{
		"birthDate":      info.BirthDate,
		"birthPlace":     info.BirthPlace,
		"drivingLicense": strings.Join(nonEmpty(info.DrivingLicense), ", "),
		"gender":         info.Gender,
		"nationality":    info.Nationality,
		"linkedin":       info.LinkedIn,
		"website":        info.Website,
	}
	for _, field := range types.OptionalPersonalFields {
		if !layout.OptionalFieldEnabled(types.SectionPersonalInfo, field) || values[field] == "" {
			continue
		}
		h.Extra = append(h.Extra, Field{Label: label(language, field), Value: values[field]})
	}
	return h
}

func period(start, end string, current bool, language string) string {
	if current {
		end = label(language, "present")
	}
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
