// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
)

func rgbaAt(t *testing.T, b *Backend, x, y int) color.RGBA {
	t.Helper()
	rgba, ok := b.Image().(*image.RGBA)
	if !ok {
		t.Fatal("expected *image.RGBA")
	}
	return rgba.RGBAAt(x, y)
}

func TestFormatRegistration(t *testing.T) {
	f, err := display.Lookup("PNG")
	if err != nil {
		t.Fatalf("Lookup(PNG) error = %v", err)
	}
	if f.MediaType != "image/png" || f.Extension != "png" {
		t.Errorf("format = %+v", f)
	}
	if _, ok := f.New(display.Document{}).(*Backend); !ok {
		t.Fatal("backend is not *raster.Backend")
	}

	rec := display.NewRecorder(12, 8)
	rec.ClearWithColor(gg.Red)
	var buf bytes.Buffer
	if err := f.Export(rec.Finish(), display.Document{}, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("exported size = %v, want 12x8", b)
	}
}

func TestBackendLifecycle(t *testing.T) {
	backend := NewBackend()
	if err := backend.Begin(100, 80); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if backend.Width() != 100 || backend.Height() != 80 {
		t.Errorf("size = %dx%d, want 100x80", backend.Width(), backend.Height())
	}
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	bounds := backend.Image().Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("Image bounds = %v, want 100x80", bounds)
	}
	if err := backend.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestBackendFillRect(t *testing.T) {
	backend := NewBackend()
	if err := backend.Begin(100, 100); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	backend.FillRect(display.NewRect(10, 10, 50, 50), gg.Red)
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	pixel := rgbaAt(t, backend, 35, 35)
	if pixel.R < 200 || pixel.G > 50 || pixel.B > 50 {
		t.Errorf("pixel at (35,35) = %v, expected red", pixel)
	}
	if outside := rgbaAt(t, backend, 80, 80); outside.A != 0 {
		t.Errorf("pixel at (80,80) = %v, expected transparent", outside)
	}
}

func TestBackendFillPath(t *testing.T) {
	backend := NewBackend()
	if err := backend.Begin(100, 100); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	path := gg.NewPath()
	path.MoveTo(50, 10)
	path.LineTo(90, 90)
	path.LineTo(10, 90)
	path.Close()
	backend.FillPath(path, gg.Blue, display.FillRuleNonZero)
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	pixel := rgbaAt(t, backend, 50, 60)
	if pixel.B < 200 || pixel.R > 50 || pixel.G > 50 {
		t.Errorf("pixel at (50,60) = %v, expected blue", pixel)
	}
}

func TestBackendStrokePath(t *testing.T) {
	backend := NewBackend()
	if err := backend.Begin(100, 100); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	path := gg.NewPath()
	path.MoveTo(10, 50)
	path.LineTo(90, 50)
	stroke := display.DefaultStroke()
	stroke.Width = 6
	backend.StrokePath(path, gg.Black, stroke)
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if pixel := rgbaAt(t, backend, 50, 50); pixel.A < 200 {
		t.Errorf("pixel at (50,50) = %v, expected opaque stroke", pixel)
	}
	if pixel := rgbaAt(t, backend, 50, 20); pixel.A != 0 {
		t.Errorf("pixel at (50,20) = %v, expected transparent", pixel)
	}
}

func TestBackendDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}

	backend := NewBackend()
	if err := backend.Begin(64, 64); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	backend.DrawImage(src, 1, display.NewRect(16, 16, 32, 32), 1)
	backend.DrawImage(src, 1, display.NewRect(0, 0, 8, 8), 0)
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	if pixel := rgbaAt(t, backend, 32, 32); pixel.G < 200 || pixel.R > 50 {
		t.Errorf("pixel at (32,32) = %v, expected green", pixel)
	}
	if pixel := rgbaAt(t, backend, 4, 4); pixel.A != 0 {
		t.Errorf("zero-alpha image was drawn: %v", pixel)
	}
	if len(backend.images) != 1 {
		t.Errorf("image cache size = %d, want 1", len(backend.images))
	}
	backend.Forget(1)
	if len(backend.images) != 0 {
		t.Error("Forget did not drop the cached image")
	}
}

func TestBackendReuseClears(t *testing.T) {
	backend := NewBackend()
	for i := 0; i < 2; i++ {
		if err := backend.Begin(40, 40); err != nil {
			t.Fatalf("Begin failed: %v", err)
		}
		if i == 0 {
			backend.FillRect(display.NewRect(0, 0, 40, 40), gg.Red)
		}
		if err := backend.End(); err != nil {
			t.Fatalf("End failed: %v", err)
		}
	}
	if pixel := rgbaAt(t, backend, 20, 20); pixel.A != 0 {
		t.Errorf("pixel after second Begin = %v, expected cleared", pixel)
	}
}

func TestPlaybackWriteTo(t *testing.T) {
	rec := display.NewRecorder(32, 32)
	rec.ClearWithColor(gg.White)
	rec.SetFillColor(gg.Red)
	rec.DrawCircle(16, 16, 8)
	rec.Fill()

	backend := NewBackend()
	if err := rec.Finish().Playback(backend); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := backend.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) || n == 0 {
		t.Errorf("WriteTo returned %d, buffer has %d bytes", n, buf.Len())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestNewBackendFor(t *testing.T) {
	ctx := gg.NewContext(10, 10)
	backend := NewBackendFor(ctx)
	if err := backend.Begin(20, 30); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if backend.Context() != ctx {
		t.Error("backend did not draw into the supplied context")
	}
	if ctx.Width() != 20 || ctx.Height() != 30 {
		t.Errorf("context size = %dx%d, want 20x30", ctx.Width(), ctx.Height())
	}
	if err := backend.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if backend.Context() == nil {
		t.Error("Close released a borrowed context")
	}
}
