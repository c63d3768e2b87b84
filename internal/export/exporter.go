package export

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "doc"
)

// ParseFormat accepts "pdf", "doc" and "word".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "doc", "word":
		return FormatWord, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// State is the phase of the most recent export.
type State string

// Export states: idle -> rendering -> succeeded | failed.
const (
	StateIdle      State = "idle"
	StateRendering State = "rendering"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Exporter renders snapshots and exports them. It never modifies the
// snapshot it is given.
type Exporter struct {
	rasterizer Rasterizer
	scale      float64
	log        *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	running int
	state   State
	lastErr error
}

// NewExporter returns an exporter capturing through r at the given scale.
func NewExporter(r Rasterizer, scale float64, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		rasterizer: r,
		scale:      max(scale, MinScale),
		log:        log.Named("export"),
		now:        time.Now,
		state:      StateIdle,
	}
}

// InProgress reports whether an export is running.
func (e *Exporter) InProgress() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running > 0
}

// State returns the state of the most recent export and its error, if any.
func (e *Exporter) State() (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.lastErr
}

func (e *Exporter) begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running++
	e.state = StateRendering
	e.lastErr = nil
}

func (e *Exporter) end(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running--
	if err != nil {
		e.state = StateFailed
		e.lastErr = err
		return
	}
	if e.running == 0 && e.state != StateFailed {
		e.state = StateSucceeded
	}
}

// Export renders snap and converts it to format.
func (e *Exporter) Export(ctx context.Context, snap *types.Snapshot, format Format) (*File, error) {
	if snap == nil {
		return nil, ErrNoSurface
	}
	e.begin()
	start := time.Now()
	file, err := e.export(ctx, snap, format)
	e.end(err)

	if err != nil {
		e.log.Error("export failed", zap.String("id", snap.ID()), zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}
	e.log.Info("exported document",
		zap.String("id", snap.ID()),
		zap.String("file", file.Name),
		zap.Int("pages", file.Pages),
		zap.Int("bytes", len(file.Data)),
		zap.Duration("took", time.Since(start)),
	)
	return file, nil
}

func (e *Exporter) export(ctx context.Context, snap *types.Snapshot, format Format) (*File, error) {
	html, err := rendering.RenderPreview(snap)
	if err != nil {
		return nil, &Error{Op: string(format), Message: "failed to render preview", Cause: err}
	}
	surface := NewSurface(html)
	switch format {
	case FormatPDF:
		return ExportPDF(ctx, e.rasterizer, surface, snap.Document, PDFOptions{Scale: e.scale, Now: e.now()})
	case FormatWord:
		return ExportWord(surface, snap.Document, e.now())
	default:
		return nil, &Error{Op: string(format), Message: "unsupported format"}
	}
}

// ExportAll exports snap in every format concurrently. Files come back in
// the order of formats; the first failure cancels the rest.
func (e *Exporter) ExportAll(ctx context.Context, snap *types.Snapshot, formats ...Format) ([]*File, error) {
	files := make([]*File, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			file, err := e.Export(gctx, snap, format)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
