// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shape defines the drawable items of a sketch.
//
// Every kind implements [Shape]. Geometry is expressed in local
// coordinates; the scene translates each shape by its node position before
// drawing and before hit testing.
package shape

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
)

// Kind identifies a shape type.
type Kind uint8

const (
	KindRectangle Kind = iota
	KindCircle
	KindLine
	KindEllipse
	KindTriangle
	KindDiamond
	KindSprite
)

var kindNames = [...]string{
	KindRectangle: "rectangle",
	KindCircle:    "circle",
	KindLine:      "line",
	KindEllipse:   "ellipse",
	KindTriangle:  "triangle",
	KindDiamond:   "diamond",
	KindSprite:    "sprite",
}

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindRectangle, KindCircle, KindLine, KindEllipse, KindTriangle, KindDiamond, KindSprite}
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsGraphics reports whether k is a vector kind, i.e. anything but a sprite.
func (k Kind) IsGraphics() bool {
	return k < KindSprite
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("shape: unknown kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("shape: unknown kind %q", s)
}

// Style holds the paint of a vector shape. A zero alpha or line width
// disables the matching pass.
type Style struct {
	Fill      gg.RGBA
	Stroke    gg.RGBA
	LineWidth float64
}

// Filled returns a style that only fills with c.
func Filled(c gg.RGBA) Style {
	return Style{Fill: c}
}

// Stroked returns a style that only strokes with c at the given width.
func Stroked(c gg.RGBA, width float64) Style {
	return Style{Stroke: c, LineWidth: width}
}

// paint fills and strokes the recorder's current path according to s.
// The path is rebuilt by build for each pass.
func (s Style) paint(rec *display.Recorder, build func()) {
	if s.Fill.A > 0 {
		rec.SetFillColor(s.Fill)
		build()
		rec.Fill()
	}
	if s.Stroke.A > 0 && s.LineWidth > 0 {
		rec.SetStrokeColor(s.Stroke)
		rec.SetLineWidth(s.LineWidth)
		build()
		rec.Stroke()
	}
}

// Shape is implemented by every drawable kind.
type Shape interface {
	// Kind returns the shape kind.
	Kind() Kind

	// Bounds returns the local bounding box, stroke included.
	Bounds() display.Rect

	// Contains reports whether the local point (x, y) hits the shape.
	Contains(x, y float64) bool

	// Draw records the shape into rec in local coordinates.
	Draw(rec *display.Recorder)

	// Recolor replaces the primary color: the stroke of a line, the fill of
	// any other vector shape. Sprites ignore it.
	Recolor(c gg.RGBA)
}

// RGB24 converts a packed 0xRRGGBB value to an opaque color.
func RGB24(v uint32) gg.RGBA {
	return gg.RGB(
		float64(v>>16&0xff)/255,
		float64(v>>8&0xff)/255,
		float64(v&0xff)/255,
	)
}

// ToRGB24 packs the color channels of c into 0xRRGGBB.
func ToRGB24(c gg.RGBA) uint32 {
	ch := func(v float64) uint32 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 0xff
		}
		return uint32(v*255 + 0.5)
	}
	return ch(c.R)<<16 | ch(c.G)<<8 | ch(c.B)
}
