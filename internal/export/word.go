package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
)

const wordHeader = "<html xmlns:o='urn:schemas-microsoft-com:office:office' " +
	"xmlns:w='urn:schemas-microsoft-com:office:word' " +
	"xmlns='http://www.w3.org/TR/REC-html40'>"

// ExportWord wraps the preview markup in an HTML document that word
// processors open as a .doc file. The styles of the surface are carried over.
func ExportWord(surface *Surface, doc types.CVDocument, now time.Time) (*File, error) {
	if surface.empty() {
		return nil, ErrNoSurface
	}
	if now.IsZero() {
		now = time.Now()
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(surface.HTML))
	if err != nil {
		return nil, &Error{Op: "doc", Message: "failed to parse surface", Cause: err}
	}
	root := parsed.Find("#" + rendering.RootID)
	var body string
	if root.Length() > 0 {
		body, err = goquery.OuterHtml(root.First())
	} else {
		body, err = parsed.Find("body").Html()
	}
	if err != nil {
		return nil, &Error{Op: "doc", Message: "failed to extract markup", Cause: err}
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrNoSurface
	}

	var styles strings.Builder
	parsed.Find("head style").Each(func(_ int, s *goquery.Selection) {
		styles.WriteString(s.Text())
	})

	var b strings.Builder
	b.WriteString("\ufeff")
	b.WriteString(wordHeader)
	b.WriteString("<head><meta charset='utf-8'>")
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(doc.Title))
	if styles.Len() > 0 {
		fmt.Fprintf(&b, "<style>%s</style>", styles.String())
	}
	b.WriteString("</head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>")

	return &File{
		Name:        FileName(doc, "doc", now),
		ContentType: "application/msword",
		Data:        []byte(b.String()),
		Pages:       1,
	}, nil
}
