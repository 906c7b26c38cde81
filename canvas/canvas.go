// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
	"github.com/gogpu/gg-sketch/display/raster"
	"github.com/gogpu/gg-sketch/interact"
	"github.com/gogpu/gg-sketch/scene"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("canvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid, or
	// when a list does not match the canvas size.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithHitMode sets how pointer events on this canvas hit nodes.
// The default is scene.HitShape.
func WithHitMode(mode scene.HitMode) Option {
	return func(c *Canvas) { c.mode = mode }
}

// WithHoverCursor sets the cursor shown over a draggable node.
// The default is interact.CursorPointer.
func WithHoverCursor(cur interact.Cursor) Option {
	return func(c *Canvas) { c.hover = cur }
}

// Canvas wraps a gg.Context that display lists are replayed into.
type Canvas struct {
	name    string
	ctx     *gg.Context
	backend *raster.Backend
	mode    scene.HitMode
	hover   interact.Cursor

	width  int
	height int
	frames uint64

	dirty  bool // frame changed since the last encode
	png    []byte
	closed bool
}

// New creates a canvas with the given name and pixel size.
func New(name string, width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	ctx := gg.NewContext(width, height)
	c := &Canvas{
		name:    name,
		ctx:     ctx,
		backend: raster.NewBackendFor(ctx),
		mode:    scene.HitShape,
		hover:   interact.CursorPointer,
		width:   width,
		height:  height,
		dirty:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the surface name.
func (c *Canvas) Name() string { return c.name }

// HitMode returns the hit mode pointer events on this canvas use.
func (c *Canvas) HitMode() scene.HitMode { return c.mode }

// HoverCursor returns the cursor shown over a draggable node.
func (c *Canvas) HoverCursor() interact.Cursor { return c.hover }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Frames returns how many lists have been rendered.
func (c *Canvas) Frames() uint64 { return c.frames }

// IsDirty reports whether the canvas changed since the last EncodePNG.
func (c *Canvas) IsDirty() bool { return c.dirty }

// Render clears the canvas and replays list into it.
// The list must have the canvas size.
func (c *Canvas) Render(list *display.List) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if list.Width() != c.width || list.Height() != c.height {
		return fmt.Errorf("%w: list %dx%d on canvas %q of %dx%d",
			ErrInvalidDimensions, list.Width(), list.Height(), c.name, c.width, c.height)
	}
	if err := list.Playback(c.backend); err != nil {
		return fmt.Errorf("canvas: render %q: %w", c.name, err)
	}
	c.frames++
	c.dirty = true
	return nil
}

// Image returns the current frame, or nil if the canvas is closed.
func (c *Canvas) Image() image.Image {
	if c.closed {
		return nil
	}
	return c.ctx.Image()
}

// EncodePNG writes the current frame as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if c.dirty || c.png == nil {
		var buf bytes.Buffer
		if err := c.ctx.EncodePNG(&buf); err != nil {
			return fmt.Errorf("canvas: encode %q: %w", c.name, err)
		}
		c.png = buf.Bytes()
		c.dirty = false
	}
	_, err := w.Write(c.png)
	return err
}

// Forget drops cached pixel data for a texture key, so a texture replaced
// under the same key is converted again on the next render.
func (c *Canvas) Forget(key uint64) {
	if c.closed {
		return
	}
	c.backend.Forget(key)
}

// Close releases all resources associated with the Canvas.
// Close is idempotent - multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.png = nil
	if c.ctx != nil {
		_ = c.ctx.Close()
		c.ctx = nil
	}
	c.backend = nil
	return nil
}
