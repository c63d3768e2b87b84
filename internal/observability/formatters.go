// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOutline outputs the document header, the section order with
// visibility marks and item counts, and any field warnings.
func (p *Printer) PrintOutline(snap types.Snapshot, warnings []types.FieldWarning) {
	doc := snap.Document
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:       %s\n", doc.ID))
	if name := doc.PersonalInfo.FullName(); name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	}
	if doc.PersonalInfo.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Job:      %s\n", doc.PersonalInfo.JobTitle))
	}
	sb.WriteString(fmt.Sprintf("Template: %s\n", snap.SelectedTemplate))
	sb.WriteString(fmt.Sprintf("Language: %s\n", snap.Language))
	sb.WriteString("\nSections:\n")

	for _, key := range snap.SectionsOrder {
		mark := " "
		if snap.VisibleSections[key] {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %-15s %s\n", mark, key, sectionSize(doc, key)))
	}

	if len(warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range warnings {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", w.Field, w.Message))
		}
	}

	p.printBox(strings.ToUpper(doc.Title), strings.TrimSuffix(sb.String(), "\n"))
}

// sectionSize describes how much content a section holds.
func sectionSize(doc types.CVDocument, key types.SectionKey) string {
	switch key {
	case types.SectionExperience:
		return items(len(doc.Experiences))
	case types.SectionEducation:
		return items(len(doc.Educations))
	case types.SectionSkills:
		return items(len(doc.Skills))
	case types.SectionLanguages:
		return items(len(doc.Languages))
	case types.SectionCertifications:
		return items(len(doc.Certifications))
	case types.SectionProjects:
		return items(len(doc.Projects))
	case types.SectionHobbies:
		return items(len(doc.Hobbies))
	case types.SectionSummary:
		if strings.TrimSpace(doc.Summary) == "" {
			return "empty"
		}
	}
	return ""
}

func items(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// PrintExperiences outputs the experience entries with their ids, most
// useful before an update or remove.
func (p *Printer) PrintExperiences(doc types.CVDocument) {
	if len(doc.Experiences) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(doc.Experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := doc.Experiences[i]
		sb.WriteString(fmt.Sprintf("%s\n", exp.ID))
		sb.WriteString(fmt.Sprintf("    %s", exp.JobTitle))
		if exp.Company != "" {
			sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
		}
		sb.WriteString("\n")
		end := exp.EndDate
		if exp.Current {
			end = "now"
		}
		if exp.StartDate != "" || end != "" {
			sb.WriteString(fmt.Sprintf("    %s - %s\n", exp.StartDate, end))
		}
	}
	if len(doc.Experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(doc.Experiences)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}
