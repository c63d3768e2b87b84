package rendering

import "github.com/jonathan/cv-builder/internal/types"

var headings = map[string]map[types.SectionKey]string{
	types.LanguageFrench: {
		types.SectionPersonalInfo:   "Informations personnelles",
		types.SectionSummary:        "Profil",
		types.SectionExperience:     "Expérience professionnelle",
		types.SectionEducation:      "Formation",
		types.SectionSkills:         "Compétences",
		types.SectionLanguages:      "Langues",
		types.SectionCertifications: "Certifications",
		types.SectionProjects:       "Projets",
		types.SectionHobbies:        "Centres d'intérêt",
	},
	types.LanguageEnglish: {
		types.SectionPersonalInfo:   "Personal information",
		types.SectionSummary:        "Profile",
		types.SectionExperience:     "Work experience",
		types.SectionEducation:      "Education",
		types.SectionSkills:         "Skills",
		types.SectionLanguages:      "Languages",
		types.SectionCertifications: "Certifications",
		types.SectionProjects:       "Projects",
		types.SectionHobbies:        "Interests",
	},
}

var labels = map[string]map[string]string{
	types.LanguageFrench: {
		"present":        "Présent",
		"birthDate":      "Date de naissance",
		"birthPlace":     "Lieu de naissance",
		"drivingLicense": "Permis",
		"gender":         "Genre",
		"nationality":    "Nationalité",
		"linkedin":       "LinkedIn",
		"website":        "Site web",
		"native":         "Langue maternelle",
		"fluent":         "Courant",
		"intermediate":   "Intermédiaire",
		"beginner":       "Débutant",
	},
	types.LanguageEnglish: {
		"present":        "Present",
		"birthDate":      "Date of birth",
		"birthPlace":     "Place of birth",
		"drivingLicense": "Driving licence",
		"gender":         "Gender",
		"nationality":    "Nationality",
		"linkedin":       "LinkedIn",
		"website":        "Website",
		"native":         "Native",
		"fluent":         "Fluent",
		"intermediate":   "Intermediate",
		"beginner":       "Beginner",
	},
}

// accents maps each template to its accent color.
var accents = map[string]string{
	types.TemplateClassic:      "#1f2937",
	types.TemplateModern:       "#2563eb",
	types.TemplateMinimalist:   "#111827",
	types.TemplateProfessional: "#1e3a8a",
	types.TemplateCreative:     "#db2777",
	types.TemplateExecutive:    "#374151",
	types.TemplateAcademic:     "#7c2d12",
	types.TemplateTwoColumn:    "#0f766e",
	types.TemplateColorful:     "#7c3aed",
}

func lang(language string) string {
	if _, ok := headings[language]; ok {
		return language
	}
	return types.LanguageFrench
}

// Heading returns the localized title of a section. Unknown languages fall
// back to French.
func Heading(language string, key types.SectionKey) string {
	return headings[lang(language)][key]
}

func label(language, key string) string {
	if l, ok := labels[lang(language)][key]; ok {
		return l
	}
	return key
}

func templateName(name string) string {
	if _, ok := accents[name]; ok {
		return name
	}
	return types.TemplateClassic
}
