package export

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// A4 dimensions in millimetres.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// PageHeight returns the height in pixels of an A4 page that is width pixels
// wide.
func PageHeight(width int) int {
	return width * 297 / 210
}

// Paginate flattens img onto white and slices it into A4-proportioned pages
// from the top. Every page but the last is exactly one page high; the last
// holds the remainder.
func Paginate(img image.Image) []*image.RGBA {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	pageH := PageHeight(b.Dx())
	if pageH <= 0 {
		pageH = b.Dy()
	}

	var pages []*image.RGBA
	for top := 0; top < b.Dy(); top += pageH {
		h := min(pageH, b.Dy()-top)
		page := image.NewRGBA(image.Rect(0, 0, b.Dx(), h))
		draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(page, page.Bounds(), img, image.Point{X: b.Min.X, Y: b.Min.Y + top}, draw.Over)
		pages = append(pages, page)
	}
	return pages
}
