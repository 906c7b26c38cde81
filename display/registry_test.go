// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

// mockBackend records the command types it receives.
type mockBackend struct {
	name          string
	width, height int
	calls         []CommandType
	fills         []gg.RGBA
	images        []Rect
	alphas        []float64
	ended         bool
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (b *mockBackend) Begin(width, height int) error {
	b.width, b.height = width, height
	return nil
}

func (b *mockBackend) End() error {
	b.ended = true
	return nil
}

func (b *mockBackend) Save()    { b.calls = append(b.calls, CmdSave) }
func (b *mockBackend) Restore() { b.calls = append(b.calls, CmdRestore) }

func (b *mockBackend) FillPath(_ *gg.Path, c gg.RGBA, _ FillRule) {
	b.calls = append(b.calls, CmdFillPath)
	b.fills = append(b.fills, c)
}

func (b *mockBackend) StrokePath(_ *gg.Path, _ gg.RGBA, _ Stroke) {
	b.calls = append(b.calls, CmdStrokePath)
}

func (b *mockBackend) FillRect(_ Rect, c gg.RGBA) {
	b.calls = append(b.calls, CmdFillRect)
	b.fills = append(b.fills, c)
}

func (b *mockBackend) DrawImage(_ image.Image, _ uint64, dst Rect, alpha float64) {
	b.calls = append(b.calls, CmdDrawImage)
	b.images = append(b.images, dst)
	b.alphas = append(b.alphas, alpha)
}

// writerMock is a mockBackend that can write its output.
type writerMock struct {
	*mockBackend
	doc    Document
	closed bool
}

func (b *writerMock) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s:%dx%d:%d", b.doc.Title, b.width, b.height, len(b.calls))
	return int64(n), err
}

func (b *writerMock) Close() error {
	b.closed = true
	return nil
}

// resetRegistry clears all registered formats for test isolation. The
// saved formats are restored by the returned function.
func resetRegistry() (restore func()) {
	formatsMu.Lock()
	saved := formats
	formats = make(map[string]Format)
	formatsMu.Unlock()
	return func() {
		formatsMu.Lock()
		formats = saved
		formatsMu.Unlock()
	}
}

func mockFormat(name string, last **writerMock) Format {
	return Format{
		Name:      name,
		MediaType: "text/plain",
		Extension: "txt",
		New: func(doc Document) WriterBackend {
			b := &writerMock{mockBackend: newMockBackend(name), doc: doc}
			if last != nil {
				*last = b
			}
			return b
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	defer resetRegistry()()

	Register(mockFormat("Text", nil))

	for _, name := range []string{"text", "TEXT", "Text"} {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if f.Name != "text" || f.Extension != "txt" {
			t.Errorf("Lookup(%q) = %+v", name, f)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	defer resetRegistry()()

	Register(mockFormat("text", nil))
	_, err := Lookup("nope")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Lookup(nope) error = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), "text") {
		t.Errorf("error %q does not list the registered formats", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		f    Format
	}{
		{"empty name", Format{New: mockFormat("x", nil).New}},
		{"nil constructor", Format{Name: "x"}},
		{"duplicate", mockFormat("DUP", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetRegistry()()
			Register(mockFormat("dup", nil))
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			Register(tt.f)
		})
	}
}

func TestFormatsSorted(t *testing.T) {
	defer resetRegistry()()

	for _, name := range []string{"raster", "pdf", "alpha"} {
		Register(mockFormat(name, nil))
	}
	got := Formats()
	want := []string{"alpha", "pdf", "raster"}
	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestFormatExport(t *testing.T) {
	defer resetRegistry()()

	var last *writerMock
	Register(mockFormat("text", &last))
	f, _ := Lookup("text")

	rec := NewRecorder(30, 20)
	rec.ClearWithColor(gg.White)
	rec.SetFillColor(gg.Red)
	rec.DrawRectangle(1, 1, 5, 5)
	rec.Fill()

	var buf bytes.Buffer
	if err := f.Export(rec.Finish(), Document{Title: "doc"}, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := buf.String(); got != "doc:30x20:2" {
		t.Errorf("output = %q, want %q", got, "doc:30x20:2")
	}
	if !last.ended || !last.closed {
		t.Errorf("ended = %v, closed = %v; want both true", last.ended, last.closed)
	}
}
