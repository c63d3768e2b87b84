package export

import (
	"context"
	"image"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jonathan/cv-builder/internal/rendering"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// TextRasterizer draws the text blocks of a surface without a browser. The
// result follows the preview's structure but not its styling; it is meant
// for environments without Chrome.
type TextRasterizer struct{}

type textBlock struct {
	text  string
	style string
}

const (
	textMargin     = 48.0
	textLineHeight = 1.6
)

// Font sizes at scale 1, in points at 72 DPI (one point per CSS pixel).
var textSizes = map[string]float64{
	"h1": 22,
	"h2": 15,
}

const textBodySize = 11.0

var (
	fontsOnce sync.Once
	regular   *truetype.Font
	bold      *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		bold, fontsErr = truetype.Parse(gobold.TTF)
	})
	return fontsErr
}

// faceFor returns the face used for style, sized for scale.
func faceFor(style string, scale float64) font.Face {
	f, size := regular, textBodySize
	if s, ok := textSizes[style]; ok {
		f, size = bold, s
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Capture lays out the headings, paragraphs and list items of the preview
// root one below the other. Fonts and margins grow with scale.
func (TextRasterizer) Capture(_ context.Context, surface *Surface, scale float64) (image.Image, error) {
	if surface.empty() {
		return nil, ErrNoSurface
	}
	blocks, err := textBlocks(surface.HTML)
	if err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, &Error{Op: "capture", Message: "failed to load fonts", Cause: err}
	}
	if scale <= 0 {
		scale = 1
	}

	width := int(float64(surface.width()) * scale)
	margin := textMargin * scale
	maxWidth := float64(width) - 2*margin

	type line struct {
		text   string
		face   font.Face
		style  string
		height float64
	}
	faces := make(map[string]font.Face)
	// measure with a scratch context, then draw on one sized to fit
	measure := gg.NewContext(1, 1)
	var lines []line
	total := 0.0
	for _, b := range blocks {
		face, ok := faces[b.style]
		if !ok {
			face = faceFor(b.style, scale)
			faces[b.style] = face
		}
		measure.SetFontFace(face)
		lineH := measure.FontHeight() * textLineHeight
		if b.style == "h2" && len(lines) > 0 {
			total += lineH
		}
		for _, text := range measure.WordWrap(b.text, maxWidth) {
			total += lineH
			lines = append(lines, line{text: text, face: face, style: b.style, height: total})
		}
	}
	height := int(2*margin + total)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for _, l := range lines {
		switch l.style {
		case "h1", "h2":
			dc.SetRGB(0.12, 0.23, 0.54)
		default:
			dc.SetRGB(0.12, 0.16, 0.22)
		}
		dc.SetFontFace(l.face)
		dc.DrawString(l.text, margin, margin+l.height)
	}
	return dc.Image(), nil
}

// textBlocks extracts the visible text of the preview root in document order.
func textBlocks(html string) ([]textBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Op: "capture", Message: "failed to parse surface", Cause: err}
	}
	root := doc.Find("#" + rendering.RootID)
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var blocks []textBlock
	root.Find("h1, h2, p, li, .cv-entry-title, .cv-period").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		blocks = append(blocks, textBlock{text: text, style: goquery.NodeName(s)})
	})
	if len(blocks) == 0 {
		return nil, ErrNoSurface
	}
	return blocks, nil
}
