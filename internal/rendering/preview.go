package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
)

// RootID is the id of the element wrapping the whole preview.
const RootID = "cv-preview"

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var (
	previewOnce sync.Once
	previewTmpl *template.Template
	previewErr  error
)

// parseTemplate parses the embedded preview template once.
func parseTemplate() (*template.Template, error) {
	previewOnce.Do(func() {
		tmpl, err := template.New("preview.html.tmpl").Funcs(template.FuncMap{
			"image":  imageURL,
			"levels": levels,
			"rootID": func() string { return RootID },
		}).ParseFS(templateFS, "templates/preview.html.tmpl")
		if err != nil {
			previewErr = &RenderError{Stage: StageParse, Cause: err}
			return
		}
		previewTmpl = tmpl
	})
	return previewTmpl, previewErr
}

// RenderPreview renders snap as a standalone HTML page whose body holds the
// element with id RootID.
func RenderPreview(snap *types.Snapshot) (string, error) {
	if snap == nil {
		return "", &RenderError{Stage: StageInput, Cause: errNoSnapshot}
	}
	tmpl, err := parseTemplate()
	if err != nil {
		return "", err
	}

	data := Compose(snap)
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &RenderError{Stage: StageExecute, CVID: snap.ID(), Cause: err}
	}
	return buf.String(), nil
}

// imageURL lets inline image data URIs through; anything else is dropped.
func imageURL(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	return ""
}

// levels returns five flags, the first n set, for drawing skill dots.
func levels(n int) []bool {
	out := make([]bool, 5)
	for i := 0; i < n && i < 5; i++ {
		out[i] = true
	}
	return out
}
