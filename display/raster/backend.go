// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster provides a pixel backend for display lists.
// It renders lists to an RGBA image using gg.Context.
//
// The raster backend is the second surface of a sketch: every frame the
// display list that feeds the primary surface is replayed here, so both
// surfaces show the same picture.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/gg-sketch/display/raster"
//
//	// Export a list as PNG through the format registry
//	f, _ := display.Lookup("png")
//	_ = f.Export(list, display.Document{}, w)
//
//	// Or draw directly
//	backend := raster.NewBackend()
//	_ = list.Playback(backend)
//	img := backend.Image()
package raster

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
)

func init() {
	display.Register(display.Format{
		Name:      "png",
		MediaType: "image/png",
		Extension: "png",
		New:       func(display.Document) display.WriterBackend { return NewBackend() },
	})
}

// Backend renders display lists to a pixel image using gg.Context.
// A Backend may be replayed many times; the context is reused while the
// dimensions stay the same.
type Backend struct {
	ctx    *gg.Context
	owned  bool
	width  int
	height int

	// images caches converted pixel buffers by display.DrawImageCommand.Key.
	images map[uint64]*gg.ImageBuf
}

var (
	_ display.Backend       = (*Backend)(nil)
	_ display.WriterBackend = (*Backend)(nil)
	_ display.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a raster backend that allocates its own context on Begin.
func NewBackend() *Backend {
	return &Backend{owned: true, images: make(map[uint64]*gg.ImageBuf)}
}

// NewBackendFor creates a raster backend that draws into an existing
// context. Begin resizes ctx when the list dimensions differ.
func NewBackendFor(ctx *gg.Context) *Backend {
	return &Backend{ctx: ctx, images: make(map[uint64]*gg.ImageBuf)}
}

// Begin prepares the context for a list of the given dimensions and clears
// it to transparent.
func (b *Backend) Begin(width, height int) error {
	b.width = width
	b.height = height
	if b.ctx == nil {
		b.ctx = gg.NewContext(width, height)
	} else if err := b.ctx.Resize(width, height); err != nil {
		return err
	}
	b.ctx.Identity()
	b.ctx.ClearPath()
	b.ctx.Clear()
	return nil
}

// End flushes pending accelerator work so Image sees every command.
func (b *Backend) End() error {
	return b.ctx.FlushGPU()
}

// Save saves the current graphics state onto a stack.
func (b *Backend) Save() {
	b.ctx.Push()
}

// Restore restores the graphics state from the stack.
func (b *Backend) Restore() {
	b.ctx.Pop()
}

// FillPath fills the given path with a solid color.
func (b *Backend) FillPath(path *gg.Path, c gg.RGBA, rule display.FillRule) {
	if path == nil || c.A <= 0 {
		return
	}
	b.ctx.SetFillBrush(gg.Solid(c))
	b.ctx.SetFillRule(convertFillRule(rule))
	b.setPath(path)
	_ = b.ctx.Fill()
}

// StrokePath strokes the given path with a solid color.
func (b *Backend) StrokePath(path *gg.Path, c gg.RGBA, stroke display.Stroke) {
	if path == nil || c.A <= 0 || stroke.Width <= 0 {
		return
	}
	b.ctx.SetStrokeBrush(gg.Solid(c))
	b.ctx.SetLineWidth(stroke.Width)
	b.ctx.SetLineCap(convertLineCap(stroke.Cap))
	b.ctx.SetLineJoin(convertLineJoin(stroke.Join))
	b.ctx.SetMiterLimit(stroke.MiterLimit)
	b.setPath(path)
	_ = b.ctx.Stroke()
}

// FillRect fills a rectangle given in canvas coordinates.
func (b *Backend) FillRect(rect display.Rect, c gg.RGBA) {
	if rect.IsEmpty() || c.A <= 0 {
		return
	}
	b.ctx.SetFillBrush(gg.Solid(c))
	b.ctx.SetFillRule(gg.FillRuleNonZero)
	b.ctx.Identity()
	b.ctx.ClearPath()
	b.ctx.DrawRectangle(rect.MinX, rect.MinY, rect.Width(), rect.Height())
	_ = b.ctx.Fill()
}

// DrawImage draws img scaled into dst with bilinear sampling.
func (b *Backend) DrawImage(img image.Image, key uint64, dst display.Rect, alpha float64) {
	// gg treats a zero opacity as fully opaque, so invisible images are
	// skipped here.
	if img == nil || dst.IsEmpty() || alpha <= 0 {
		return
	}
	buf := b.imageBuf(img, key)
	if buf == nil {
		return
	}
	b.ctx.Identity()
	b.ctx.DrawImageEx(buf, gg.DrawImageOptions{
		X:             dst.MinX,
		Y:             dst.MinY,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		Interpolation: gg.InterpBilinear,
		Opacity:       alpha,
		BlendMode:     gg.BlendNormal,
	})
}

// Forget drops the cached pixel buffer for key.
func (b *Backend) Forget(key uint64) {
	delete(b.images, key)
}

func (b *Backend) imageBuf(img image.Image, key uint64) *gg.ImageBuf {
	if key == 0 {
		return gg.ImageBufFromImage(img)
	}
	if buf, ok := b.images[key]; ok {
		return buf
	}
	buf := gg.ImageBufFromImage(img)
	b.images[key] = buf
	return buf
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := b.ctx.EncodePNG(cw)
	return cw.n, err
}

// Image returns the rendered image.
func (b *Backend) Image() image.Image {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

// Context returns the underlying gg context, or nil before the first Begin.
func (b *Backend) Context() *gg.Context {
	return b.ctx
}

// Width returns the backend width.
func (b *Backend) Width() int {
	return b.width
}

// Height returns the backend height.
func (b *Backend) Height() int {
	return b.height
}

// Close releases the context if the backend created it.
func (b *Backend) Close() error {
	if b.ctx == nil || !b.owned {
		return nil
	}
	err := b.ctx.Close()
	b.ctx = nil
	return err
}

// setPath loads path into the context. Paths are already in canvas
// coordinates, so the context transform is reset first.
func (b *Backend) setPath(path *gg.Path) {
	b.ctx.Identity()
	b.ctx.ClearPath()
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			b.ctx.MoveTo(c[0], c[1])
		case gg.LineTo:
			b.ctx.LineTo(c[0], c[1])
		case gg.QuadTo:
			b.ctx.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			b.ctx.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			b.ctx.ClosePath()
		}
	})
}

func convertFillRule(rule display.FillRule) gg.FillRule {
	if rule == display.FillRuleEvenOdd {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}

func convertLineCap(lineCap display.LineCap) gg.LineCap {
	switch lineCap {
	case display.LineCapRound:
		return gg.LineCapRound
	case display.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func convertLineJoin(join display.LineJoin) gg.LineJoin {
	switch join {
	case display.LineJoinRound:
		return gg.LineJoinRound
	case display.LineJoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
