// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pdf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
)

func renderList(t *testing.T, b *Backend, list *display.List) []byte {
	t.Helper()
	if err := list.Playback(b); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}
	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, buffer has %d bytes", n, buf.Len())
	}
	return buf.Bytes()
}

func TestFormatRegistration(t *testing.T) {
	f, err := display.Lookup("pdf")
	if err != nil {
		t.Fatalf("Lookup(pdf) error = %v", err)
	}
	if f.MediaType != "application/pdf" || f.Extension != "pdf" {
		t.Errorf("format = %+v", f)
	}
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b, ok := f.New(display.Document{Title: "Board", Created: created}).(*Backend)
	if !ok {
		t.Fatal("backend is not *pdf.Backend")
	}
	if b.Title != "Board" || !b.Created.Equal(created) {
		t.Errorf("Title = %q, Created = %v", b.Title, b.Created)
	}
	if b := f.New(display.Document{}).(*Backend); b.Title != "gg-sketch" {
		t.Errorf("default Title = %q", b.Title)
	}
}

func TestLandscapePage(t *testing.T) {
	rec := display.NewRecorder(800, 600)
	rec.ClearWithColor(gg.White)
	rec.SetFillColor(gg.Red)
	rec.DrawEllipse(100, 100, 40, 20)
	rec.Fill()
	rec.SetStrokeColor(gg.Black)
	rec.SetLineWidth(2)
	rec.DrawLine(0, 0, 50, 50)
	rec.Stroke()

	b := NewBackend()
	b.Created = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := renderList(t, b, rec.Finish())

	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with %%PDF-: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out, []byte("/MediaBox [0 0 800.00 600.00]")) {
		t.Error("page is not 800x600 points")
	}
	if b.Width() != 800 || b.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", b.Width(), b.Height())
	}
}

func TestImagesEmbeddedOncePerKey(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 128})

	rec := display.NewRecorder(200, 100)
	rec.DrawImageScaled(src, 42, 10, 10, 16, 16)
	rec.SetAlpha(0.5)
	rec.DrawImageScaled(src, 42, 50, 10, 16, 16)

	b := NewBackend()
	out := renderList(t, b, rec.Finish())

	if got := bytes.Count(out, []byte("/Subtype /Image")); got < 1 {
		t.Errorf("found %d image objects, want at least 1", got)
	}
	if len(b.images) != 1 {
		t.Errorf("registered %d images, want 1", len(b.images))
	}
}

func TestPixelSizeDownsamples(t *testing.T) {
	b := NewBackend()
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	w, h := b.pixelSize(img, display.NewRect(0, 0, 50, 25))
	if w != 100 || h != 50 {
		t.Errorf("pixelSize = %dx%d, want 100x50", w, h)
	}
	w, h = b.pixelSize(img, display.NewRect(0, 0, 300, 150))
	if w != 400 || h != 200 {
		t.Errorf("pixelSize = %dx%d, want source size 400x200", w, h)
	}
}

func TestWriteToWithoutDocument(t *testing.T) {
	b := NewBackend()
	if _, err := b.WriteTo(&bytes.Buffer{}); !errors.Is(err, ErrNoDocument) {
		t.Errorf("WriteTo error = %v, want ErrNoDocument", err)
	}
}

func TestBeginRejectsEmptyPage(t *testing.T) {
	if err := NewBackend().Begin(0, 600); err == nil {
		t.Error("Begin(0, 600) succeeded")
	}
}

func TestChannel(t *testing.T) {
	cases := map[float64]int{-1: 0, 0: 0, 0.5: 128, 1: 255, 2: 255}
	for in, want := range cases {
		if got := channel(in); got != want {
			t.Errorf("channel(%v) = %d, want %d", in, got, want)
		}
	}
}
