package export

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/cv-builder/internal/types"
)

// File is an exported document ready to be downloaded.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Pages       int
}

// PDFOptions tunes PDF export.
type PDFOptions struct {
	// Scale is the device pixel ratio used for rasterization; values below
	// MinScale are raised to it.
	Scale float64
	Now   time.Time
}

// ExportPDF rasterizes surface, slices the image into A4 pages and embeds
// one image per page.
func ExportPDF(ctx context.Context, r Rasterizer, surface *Surface, doc types.CVDocument, opts PDFOptions) (*File, error) {
	if surface.empty() {
		return nil, ErrNoSurface
	}
	scale := max(opts.Scale, MinScale)
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	img, err := r.Capture(ctx, surface, scale)
	if err != nil {
		return nil, err
	}
	pages := Paginate(img)
	if len(pages) == 0 {
		return nil, &Error{Op: "pdf", Message: "rasterizer returned an empty image"}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.PersonalInfo.FullName(), true)
	pdf.SetCreator("cv-builder", true)
	pdf.SetCreationDate(now)

	widthPx := float64(pages[0].Bounds().Dx())
	for i, page := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, page); err != nil {
			return nil, &Error{Op: "pdf", Message: fmt.Sprintf("failed to encode page %d", i+1), Cause: err}
		}
		name := fmt.Sprintf("page-%d", i+1)
		opt := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.AddPage()
		heightMM := float64(page.Bounds().Dy()) * A4WidthMM / widthPx
		pdf.ImageOptions(name, 0, 0, A4WidthMM, heightMM, false, opt, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, &Error{Op: "pdf", Message: "failed to write document", Cause: err}
	}
	return &File{
		Name:        FileName(doc, "pdf", now),
		ContentType: "application/pdf",
		Data:        out.Bytes(),
		Pages:       len(pages),
	}, nil
}
