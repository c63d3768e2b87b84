package export

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/cv-builder/internal/types"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// FileName returns the download name for doc: CV_<First>_<Last>.<ext> with
// diacritics stripped and anything else unsafe removed. Unless both names are
// usable it falls back to CV_<YYYY-MM-DD>.<ext>, dated in UTC.
func FileName(doc types.CVDocument, ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	first := normalizeNamePart(doc.PersonalInfo.FirstName)
	last := normalizeNamePart(doc.PersonalInfo.LastName)
	if first == "" || last == "" {
		return "CV_" + now.UTC().Format(time.DateOnly) + "." + ext
	}
	return "CV_" + first + "_" + last + "." + ext
}

func normalizeNamePart(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = s
	}
	stripped = whitespace.ReplaceAllString(stripped, "_")
	return strings.Trim(unsafeChars.ReplaceAllString(stripped, ""), "_")
}
