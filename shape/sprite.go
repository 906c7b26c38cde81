// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shape

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
)

// Sprite draws a texture scaled around an anchor point. The anchor is a
// fraction of the displayed size; (0.5, 0.5) centers the texture on the
// node position.
type Sprite struct {
	Image image.Image
	// Key is the texture ID, used by backends to cache the converted image.
	Key     uint64
	Name    string
	ScaleX  float64
	ScaleY  float64
	AnchorX float64
	AnchorY float64
}

// NewSprite creates a uniformly scaled sprite anchored at its center.
func NewSprite(img image.Image, key uint64, scale float64) *Sprite {
	return &Sprite{
		Image:   img,
		Key:     key,
		ScaleX:  scale,
		ScaleY:  scale,
		AnchorX: 0.5,
		AnchorY: 0.5,
	}
}

// Kind returns KindSprite.
func (s *Sprite) Kind() Kind { return KindSprite }

// Size returns the displayed width and height.
func (s *Sprite) Size() (float64, float64) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float64(b.Dx()) * s.ScaleX, float64(b.Dy()) * s.ScaleY
}

// Bounds returns the displayed rectangle around the anchor.
func (s *Sprite) Bounds() display.Rect {
	w, h := s.Size()
	return display.NewRect(-w*s.AnchorX, -h*s.AnchorY, w, h)
}

// Contains reports whether (x, y) lies inside the displayed texture.
func (s *Sprite) Contains(x, y float64) bool {
	b := s.Bounds()
	return !b.IsEmpty() && b.Contains(x, y)
}

// Draw records the texture scaled to its displayed size.
func (s *Sprite) Draw(rec *display.Recorder) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	rec.DrawImageScaled(s.Image, s.Key, -w*s.AnchorX, -h*s.AnchorY, w, h)
}

// Recolor is a no-op; sprites keep their texture colors.
func (s *Sprite) Recolor(gg.RGBA) {}
