package rendering

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleSnapshot() *types.Snapshot {
	n := 0
	ids := func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
	return &types.Snapshot{
		Document:         types.ExampleDocument("cv_1", ids),
		SelectedTemplate: types.TemplateModern,
		Language:         types.LanguageFrench,
		Layout:           types.DefaultLayout(),
	}
}

func renderDoc(t *testing.T, snap *types.Snapshot) *goquery.Document {
	t.Helper()
	html, err := RenderPreview(snap)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func sectionKeys(doc *goquery.Document) []string {
	var keys []string
	doc.Find("#" + RootID + " [data-section]").Each(func(_ int, s *goquery.Selection) {
		keys = append(keys, s.AttrOr("data-section", ""))
	})
	return keys
}

func TestVisibleSections(t *testing.T) {
	layout := types.DefaultLayout()
	layout.SectionsOrder = []types.SectionKey{
		types.SectionSkills, "bogus", types.SectionSummary, types.SectionSkills, types.SectionLanguages,
	}

	got := VisibleSections(layout)
	assert.Equal(t, []types.SectionKey{types.SectionSkills, types.SectionSummary}, got)
}

func TestRenderPreview_DefaultLayout(t *testing.T) {
	doc := renderDoc(t, exampleSnapshot())

	root := doc.Find("#" + RootID)
	require.Equal(t, 1, root.Length())
	assert.True(t, root.HasClass("template-modern"))
	assert.Equal(t, []string{"personalInfo", "summary", "experience", "education", "skills"}, sectionKeys(doc))
	assert.Equal(t, "Jean Dupont", strings.TrimSpace(doc.Find(".cv-name").Text()))
	assert.Equal(t, "Compétences", doc.Find(`[data-section="skills"] h2`).Text())
}

func TestRenderPreview_FollowsOrder(t *testing.T) {
	snap := exampleSnapshot()
	snap.SectionsOrder = []types.SectionKey{types.SectionSkills, types.SectionLanguages, types.SectionPersonalInfo}
	snap.VisibleSections[types.SectionLanguages] = true

	doc := renderDoc(t, snap)
	assert.Equal(t, []string{"skills", "languages", "personalInfo"}, sectionKeys(doc))
	assert.Contains(t, doc.Find(`[data-section="languages"]`).Text(), "Langue maternelle")
}

func TestRenderPreview_EnglishHeadings(t *testing.T) {
	snap := exampleSnapshot()
	snap.Language = types.LanguageEnglish

	doc := renderDoc(t, snap)
	assert.Equal(t, "Work experience", doc.Find(`[data-section="experience"] h2`).Text())
}

func TestRenderPreview_OptionalFields(t *testing.T) {
	snap := exampleSnapshot()
	snap.Document.PersonalInfo.Nationality = "Française"

	doc := renderDoc(t, snap)
	assert.NotContains(t, doc.Find(".cv-header").Text(), "Française")

	snap.OptionalFields[types.SectionPersonalInfo]["nationality"] = true
	doc = renderDoc(t, snap)
	assert.Contains(t, doc.Find(".cv-extra").Text(), "Nationalité: Française")
}

func TestRenderPreview_CurrentShowsPresent(t *testing.T) {
	snap := exampleSnapshot()
	snap.Document.Experiences[0].Current = true
	snap.Document.Experiences[0].EndDate = ""

	doc := renderDoc(t, snap)
	assert.Equal(t, "2021-01 - Présent", doc.Find(`[data-section="experience"] .cv-period`).First().Text())
}

func TestRenderPreview_EscapesContent(t *testing.T) {
	snap := exampleSnapshot()
	snap.Document.Summary = `<script>alert("x")</script>`

	html, err := RenderPreview(snap)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderPreview_Photo(t *testing.T) {
	snap := exampleSnapshot()
	photo := "data:image/png;base64,AAAA"
	snap.Document.PersonalInfo.Photo = &photo
	doc := renderDoc(t, snap)
	assert.Equal(t, photo, doc.Find(".cv-header img").AttrOr("src", ""))

	bad := "javascript:alert(1)"
	snap.Document.PersonalInfo.Photo = &bad
	doc = renderDoc(t, snap)
	assert.Equal(t, 0, doc.Find(".cv-header img").Length())
}

func TestRenderPreview_UnknownTemplateFallsBack(t *testing.T) {
	snap := exampleSnapshot()
	snap.SelectedTemplate = "neon"
	snap.Language = "de"

	doc := renderDoc(t, snap)
	assert.True(t, doc.Find("#"+RootID).HasClass("template-classic"))
	assert.Equal(t, "Profil", doc.Find(`[data-section="summary"] h2`).Text())
}

func TestRenderPreview_Nil(t *testing.T) {
	_, err := RenderPreview(nil)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageInput, renderErr.Stage)
	assert.ErrorIs(t, err, errNoSnapshot)
	assert.Equal(t, "preview input failed: no snapshot to render", err.Error())
}

func TestRenderError_Message(t *testing.T) {
	err := &RenderError{Stage: StageExecute, CVID: "cv_1", Cause: errors.New("boom")}
	assert.Equal(t, "preview execute failed for cv_1: boom", err.Error())
}

func TestCompose_SkipsEmptySections(t *testing.T) {
	snap := &types.Snapshot{
		Document: types.NewDocument("cv_1"),
		Layout:   types.DefaultLayout(),
	}
	p := Compose(snap)
	require.NotNil(t, p.Header)
	assert.Empty(t, p.Sections)
}
