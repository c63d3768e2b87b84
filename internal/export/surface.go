// Package export turns a rendered CV preview into downloadable PDF and Word
// files.
package export

import (
	"context"
	"image"
	"strings"
)

// DefaultSurfaceWidth is the CSS pixel width of an A4 page at 96 dpi.
const DefaultSurfaceWidth = 794

// MinScale is the lowest pixel density used for PDF rasterization.
const MinScale = 2.0

// Surface is a laid-out preview ready to be exported.
type Surface struct {
	HTML  string
	Width int
}

// NewSurface wraps rendered preview HTML at the default width.
func NewSurface(html string) *Surface {
	return &Surface{HTML: html, Width: DefaultSurfaceWidth}
}

func (s *Surface) empty() bool {
	return s == nil || strings.TrimSpace(s.HTML) == ""
}

func (s *Surface) width() int {
	if s.Width <= 0 {
		return DefaultSurfaceWidth
	}
	return s.Width
}

// Rasterizer renders a surface to an image at the given device scale.
type Rasterizer interface {
	Capture(ctx context.Context, surface *Surface, scale float64) (image.Image, error)
}
