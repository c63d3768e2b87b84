// Package rendering composes the preview surface of a CV: the HTML that the
// editor shows and that export rasterizes.
package rendering

import (
	"errors"
	"fmt"
)

// Stage names the step of preview rendering that failed.
type Stage string

const (
	StageInput   Stage = "input"
	StageParse   Stage = "parse"
	StageExecute Stage = "execute"
)

var errNoSnapshot = errors.New("no snapshot to render")

// RenderError reports a failed preview render. CVID is empty when the
// failure is not tied to a document.
type RenderError struct {
	Stage Stage
	CVID  string
	Cause error
}

func (e *RenderError) Error() string {
	if e.CVID == "" {
		return fmt.Sprintf("preview %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("preview %s failed for %s: %v", e.Stage, e.CVID, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
