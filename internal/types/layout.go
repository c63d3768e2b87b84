package types

// SectionKey names one orderable, toggleable part of a CV.
type SectionKey string

// Known sections, in their default display order.
const (
	SectionPersonalInfo   SectionKey = "personalInfo"
	SectionSummary        SectionKey = "summary"
	SectionExperience     SectionKey = "experience"
	SectionEducation      SectionKey = "education"
	SectionSkills         SectionKey = "skills"
	SectionLanguages      SectionKey = "languages"
	SectionCertifications SectionKey = "certifications"
	SectionProjects       SectionKey = "projects"
	SectionHobbies        SectionKey = "hobbies"
)

// AllSections lists every known section key in default order.
var AllSections = []SectionKey{
	SectionPersonalInfo,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
	SectionProjects,
	SectionHobbies,
}

// IsKnownSection reports whether key is one of AllSections.
func IsKnownSection(key SectionKey) bool {
	for _, k := range AllSections {
		if k == key {
			return true
		}
	}
	return false
}

// OptionalPersonalFields are the personal-info fields hidden until toggled on.
var OptionalPersonalFields = []string{
	"birthDate",
	"birthPlace",
	"drivingLicense",
	"gender",
	"nationality",
	"linkedin",
	"website",
}

// Template names. Rendering falls back to TemplateClassic for anything else.
const (
	TemplateClassic      = "classic"
	TemplateModern       = "modern"
	TemplateMinimalist   = "minimalist"
	TemplateProfessional = "professional"
	TemplateCreative     = "creative"
	TemplateExecutive    = "executive"
	TemplateAcademic     = "academic"
	TemplateTwoColumn    = "twocolumn"
	TemplateColorful     = "colorful"
)

// Templates lists the template names in display order.
var Templates = []string{
	TemplateClassic,
	TemplateModern,
	TemplateMinimalist,
	TemplateProfessional,
	TemplateCreative,
	TemplateExecutive,
	TemplateAcademic,
	TemplateTwoColumn,
	TemplateColorful,
}

// Interface languages.
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
)

// Layout is the UI state stored next to the document. CollapsedSections is a
// pure editing affordance and never affects exported output.
type Layout struct {
	SectionsOrder     []SectionKey                   `json:"sectionsOrder"`
	VisibleSections   map[SectionKey]bool            `json:"visibleSections"`
	CollapsedSections map[SectionKey]bool            `json:"collapsedSections,omitempty"`
	OptionalFields    map[SectionKey]map[string]bool `json:"optionalFields"`
}

// DefaultLayout returns the layout of a freshly created CV: every section in
// default order, the secondary sections hidden and collapsed, no optional
// personal fields.
func DefaultLayout() Layout {
	l := Layout{
		SectionsOrder:     append([]SectionKey{}, AllSections...),
		VisibleSections:   make(map[SectionKey]bool, len(AllSections)),
		CollapsedSections: make(map[SectionKey]bool, len(AllSections)),
		OptionalFields: map[SectionKey]map[string]bool{
			SectionPersonalInfo: make(map[string]bool, len(OptionalPersonalFields)),
		},
	}
	for _, key := range AllSections {
		l.CollapsedSections[key] = key != SectionPersonalInfo
		switch key {
		case SectionLanguages, SectionCertifications, SectionProjects, SectionHobbies:
			l.VisibleSections[key] = false
		default:
			l.VisibleSections[key] = true
		}
	}
	for _, field := range OptionalPersonalFields {
		l.OptionalFields[SectionPersonalInfo][field] = false
	}
	return l
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	out := Layout{
		SectionsOrder:     append([]SectionKey(nil), l.SectionsOrder...),
		VisibleSections:   cloneFlags(l.VisibleSections),
		CollapsedSections: cloneFlags(l.CollapsedSections),
	}
	if l.OptionalFields != nil {
		out.OptionalFields = make(map[SectionKey]map[string]bool, len(l.OptionalFields))
		for section, fields := range l.OptionalFields {
			inner := make(map[string]bool, len(fields))
			for k, v := range fields {
				inner[k] = v
			}
			out.OptionalFields[section] = inner
		}
	}
	return out
}

// OptionalFieldEnabled reports whether an optional field is switched on.
func (l Layout) OptionalFieldEnabled(section SectionKey, field string) bool {
	return l.OptionalFields[section][field]
}

func cloneFlags(in map[SectionKey]bool) map[SectionKey]bool {
	if in == nil {
		return nil
	}
	out := make(map[SectionKey]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
