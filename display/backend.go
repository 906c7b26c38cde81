// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Backend is the interface that all playback targets implement.
// Backends receive commands in canvas coordinates and translate them to
// their output format (raster pixels, PDF content streams).
//
// Drawing methods do not return errors: a backend logs and skips a command
// it cannot render, and reports fatal problems from End.
type Backend interface {
	// Begin prepares the backend for a canvas of the given dimensions.
	Begin(width, height int) error

	// End finalizes the frame or document.
	End() error

	// Save saves backend-specific state.
	Save()

	// Restore restores the state saved by Save.
	// If the stack is empty, this is a no-op.
	Restore()

	// FillPath fills path with color using rule.
	FillPath(path *gg.Path, color gg.RGBA, rule FillRule)

	// StrokePath strokes path with color and stroke style.
	StrokePath(path *gg.Path, color gg.RGBA, stroke Stroke)

	// FillRect fills an axis-aligned rectangle.
	FillRect(rect Rect, color gg.RGBA)

	// DrawImage draws img scaled into dst with the given opacity.
	// key is a stable identity for caching; zero means uncached.
	DrawImage(img image.Image, key uint64, dst Rect, alpha float64)
}

// WriterBackend extends Backend with the ability to write its output.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content. It must be called after End.
	WriteTo(w io.Writer) (int64, error)
}

// ImageBackend extends Backend with access to rendered pixels.
type ImageBackend interface {
	Backend

	// Image returns the rendered image. It must be called after End.
	Image() image.Image
}
