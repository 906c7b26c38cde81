// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pdf provides a vector document backend for display lists,
// built on github.com/jung-kurt/gofpdf.
//
// Each list becomes a single page whose size equals the list size in
// points. Paths stay vectors; images are embedded as PNG at their display
// size.
//
//	import _ "github.com/gogpu/gg-sketch/display/pdf"
//
//	f, _ := display.Lookup("pdf")
//	_ = f.Export(list, display.Document{Title: "sketch"}, w)
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
	"github.com/gogpu/gg-sketch/internal/logging"
	"github.com/jung-kurt/gofpdf"
)

func init() {
	display.Register(display.Format{
		Name:      "pdf",
		MediaType: "application/pdf",
		Extension: "pdf",
		New: func(doc display.Document) display.WriterBackend {
			b := NewBackend()
			if doc.Title != "" {
				b.Title = doc.Title
			}
			b.Created = doc.Created
			return b
		},
	})
}

// ErrNoDocument is returned by WriteTo before Begin has been called.
var ErrNoDocument = errors.New("pdf: no document")

// DefaultImageScale is the ratio of embedded pixels to display points.
// Textures larger than their display size times this factor are downsampled.
const DefaultImageScale = 2.0

// Backend renders a display list into a one-page PDF document.
// A Backend produces one document per Begin; WriteTo drains it.
type Backend struct {
	pdf    *gofpdf.Fpdf
	width  int
	height int

	// Title is written to the document information dictionary.
	Title string
	// Created fixes the creation date; zero uses the current time.
	Created time.Time
	// ImageScale overrides DefaultImageScale when positive.
	ImageScale float64

	images map[string]bool
	anon   int
}

var (
	_ display.Backend       = (*Backend)(nil)
	_ display.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a PDF backend.
func NewBackend() *Backend {
	return &Backend{Title: "gg-sketch"}
}

// Begin starts a new document with a single landscape page of
// width x height points.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pdf: invalid page size %dx%d", width, height)
	}
	b.width, b.height = width, height
	b.images = make(map[string]bool)
	b.anon = 0

	// gofpdf swaps the page size for landscape, so the size is given
	// portrait-first.
	orientation := "P"
	size := gofpdf.SizeType{Wd: float64(width), Ht: float64(height)}
	if width > height {
		orientation = "L"
		size = gofpdf.SizeType{Wd: float64(height), Ht: float64(width)}
	}
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	f.SetCompression(true)
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCreator("gg-sketch", true)
	if b.Title != "" {
		f.SetTitle(b.Title, true)
	}
	if !b.Created.IsZero() {
		f.SetCreationDate(b.Created)
	}
	f.AddPage()
	b.pdf = f
	return f.Error()
}

// End reports any error gofpdf accumulated while drawing.
func (b *Backend) End() error {
	if b.pdf == nil {
		return ErrNoDocument
	}
	return b.pdf.Error()
}

// Save is a no-op: every command sets its full graphics state.
func (b *Backend) Save() {}

// Restore is a no-op, see Save.
func (b *Backend) Restore() {}

// FillPath fills path with a solid color.
func (b *Backend) FillPath(path *gg.Path, c gg.RGBA, rule display.FillRule) {
	if path == nil || c.A <= 0 {
		return
	}
	b.setFill(c)
	if !b.writePath(path) {
		return
	}
	if rule == display.FillRuleEvenOdd {
		b.pdf.DrawPath("f*")
	} else {
		b.pdf.DrawPath("f")
	}
}

// StrokePath strokes path with a solid color.
func (b *Backend) StrokePath(path *gg.Path, c gg.RGBA, stroke display.Stroke) {
	if path == nil || c.A <= 0 || stroke.Width <= 0 {
		return
	}
	r, g, bl := rgb255(c)
	b.pdf.SetDrawColor(r, g, bl)
	b.pdf.SetAlpha(c.A, "Normal")
	b.pdf.SetLineWidth(stroke.Width)
	b.pdf.SetLineCapStyle(capStyle(stroke.Cap))
	b.pdf.SetLineJoinStyle(joinStyle(stroke.Join))
	if !b.writePath(path) {
		return
	}
	b.pdf.DrawPath("D")
}

// FillRect fills an axis-aligned rectangle.
func (b *Backend) FillRect(rect display.Rect, c gg.RGBA) {
	if rect.IsEmpty() || c.A <= 0 {
		return
	}
	b.setFill(c)
	b.pdf.Rect(rect.MinX, rect.MinY, rect.Width(), rect.Height(), "F")
}

// DrawImage embeds img as PNG and places it in dst. Images sharing a key
// and display size are embedded once per document. An image that cannot be
// embedded is logged and skipped.
func (b *Backend) DrawImage(img image.Image, key uint64, dst display.Rect, alpha float64) {
	if img == nil || dst.IsEmpty() || alpha <= 0 {
		return
	}
	pw, ph := b.pixelSize(img, dst)

	var name string
	if key != 0 {
		name = fmt.Sprintf("tex%d_%dx%d", key, pw, ph)
	} else {
		b.anon++
		name = fmt.Sprintf("img%d", b.anon)
	}
	if !b.images[name] {
		if err := b.register(name, img, pw, ph); err != nil {
			logging.Logger().Warn("pdf: image skipped", "image", name, "err", err)
			return
		}
		b.images[name] = true
	}

	b.pdf.SetAlpha(math.Min(alpha, 1), "Normal")
	b.pdf.ImageOptions(name, dst.MinX, dst.MinY, dst.Width(), dst.Height(), false,
		gofpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}, 0, "")
}

// WriteTo writes the finished document to w. The document is closed by
// the first call; call Begin again to render another.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.pdf == nil {
		return 0, ErrNoDocument
	}
	cw := &countingWriter{w: w}
	err := b.pdf.Output(cw)
	b.pdf = nil
	return cw.n, err
}

// Width returns the page width in points.
func (b *Backend) Width() int { return b.width }

// Height returns the page height in points.
func (b *Backend) Height() int { return b.height }

func (b *Backend) setFill(c gg.RGBA) {
	r, g, bl := rgb255(c)
	b.pdf.SetFillColor(r, g, bl)
	b.pdf.SetAlpha(c.A, "Normal")
}

// writePath emits the path operators and reports whether anything was written.
func (b *Backend) writePath(path *gg.Path) bool {
	if path.NumVerbs() == 0 {
		return false
	}
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			b.pdf.MoveTo(c[0], c[1])
		case gg.LineTo:
			b.pdf.LineTo(c[0], c[1])
		case gg.QuadTo:
			b.pdf.CurveTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			b.pdf.CurveBezierCubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			b.pdf.ClosePath()
		}
	})
	return true
}

// pixelSize returns the pixel dimensions to embed img at. Images are never
// upsampled.
func (b *Backend) pixelSize(img image.Image, dst display.Rect) (int, int) {
	scale := b.ImageScale
	if scale <= 0 {
		scale = DefaultImageScale
	}
	sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
	pw := int(math.Ceil(dst.Width() * scale))
	ph := int(math.Ceil(dst.Height() * scale))
	if pw >= sw || ph >= sh {
		return sw, sh
	}
	return max(pw, 1), max(ph, 1)
}

func (b *Backend) register(name string, img image.Image, pw, ph int) error {
	// gofpdf reads 8-bit PNG only, so wider source formats are flattened.
	if pw != img.Bounds().Dx() || ph != img.Bounds().Dy() {
		img = transform.Resize(img, pw, ph, transform.Linear)
	} else {
		img = clone.AsRGBA(img)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pdf: encode image %s: %w", name, err)
	}
	b.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := b.pdf.Error(); err != nil {
		b.pdf.ClearError()
		return err
	}
	return nil
}

func rgb255(c gg.RGBA) (int, int, int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func capStyle(lc display.LineCap) string {
	switch lc {
	case display.LineCapRound:
		return "round"
	case display.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinStyle(j display.LineJoin) string {
	switch j {
	case display.LineJoinRound:
		return "round"
	case display.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
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
