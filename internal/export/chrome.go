package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/cv-builder/internal/rendering"
	"go.uber.org/zap"
)

// DefaultCaptureTimeout bounds a single browser capture.
const DefaultCaptureTimeout = 60 * time.Second

// ChromeRasterizer captures the preview root element with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRasterizer struct {
	Timeout time.Duration
	Log     *zap.Logger
}

// Capture loads surface into a fresh browser tab and screenshots the element
// with id rendering.RootID.
func (c *ChromeRasterizer) Capture(ctx context.Context, surface *Surface, scale float64) (image.Image, error) {
	if surface.empty() {
		return nil, ErrNoSurface
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCaptureTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	start := time.Now()
	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(surface.width()), 1123, chromedp.EmulateScale(scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, surface.HTML).Do(ctx)
		}),
		chromedp.WaitReady("#"+rendering.RootID, chromedp.ByQuery),
		chromedp.Screenshot("#"+rendering.RootID, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &Error{Op: "capture", Message: "browser rendering failed", Cause: err}
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, &Error{Op: "capture", Message: "failed to decode screenshot", Cause: err}
	}
	log.Debug("captured surface",
		zap.String("size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())),
		zap.Duration("took", time.Since(start)),
	)
	return img, nil
}
