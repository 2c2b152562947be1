package ui

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/ncruces/zenity"

	"github.com/pthm-cable/pulse/shape"
)

// UploadResult is the outcome of one file dialog.
type UploadResult struct {
	Shape *shape.Descriptor
	Err   error
}

// ShapeUploader runs the SVG file picker off the frame goroutine. The
// dialog blocks, so the result is delivered on a channel that Poll drains
// without waiting.
type ShapeUploader struct {
	results chan UploadResult
	pending atomic.Bool

	// Replaceable for tests.
	selectFile func() (string, error)
	load       func(path string) (*shape.Descriptor, error)
}

// NewShapeUploader creates an uploader backed by the native file dialog.
func NewShapeUploader() *ShapeUploader {
	return &ShapeUploader{
		results: make(chan UploadResult, 1),
		selectFile: func() (string, error) {
			return zenity.SelectFile(
				zenity.Title("Upload SVG shape"),
				zenity.FileFilters{{Name: "SVG images", Patterns: []string{"*.svg"}}},
			)
		},
		load: shape.LoadSVG,
	}
}

// Open starts a dialog unless one is already showing. It returns false if
// a dialog is already pending.
func (u *ShapeUploader) Open() bool {
	if !u.pending.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer u.pending.Store(false)
		path, err := u.selectFile()
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		if err != nil {
			u.results <- UploadResult{Err: err}
			return
		}
		d, err := u.load(path)
		if err != nil {
			slog.Warn("svg upload rejected", "path", path, "error", err)
		}
		u.results <- UploadResult{Shape: d, Err: err}
	}()
	return true
}

// Pending reports whether a dialog is currently open.
func (u *ShapeUploader) Pending() bool {
	return u.pending.Load()
}

// Poll returns a finished result if one is ready.
func (u *ShapeUploader) Poll() (UploadResult, bool) {
	select {
	case r := <-u.results:
		return r, true
	default:
		return UploadResult{}, false
	}
}
