// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package generate produces random shapes and sprites that fit a canvas.
//
// A Generator is seeded, so a fixed seed reproduces the same sequence of
// items. Vector shapes are built at the local origin and placed with the
// returned position; sprites are anchored at their center.
package generate

import (
	"errors"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/assets"
	"github.com/gogpu/gg-sketch/shape"
)

// ErrNoTexture is returned when a sprite is requested but no texture is loaded.
var ErrNoTexture = errors.New("generate: no texture available")

const (
	// graphicsScale is the largest random part of a vector shape's size,
	// as a fraction of the shorter canvas side.
	graphicsScale = 0.1
	// graphicsMinSize is added to every vector shape's size.
	graphicsMinSize = 20
	// spriteScale is the displayed size of a sprite's longer side, as a
	// fraction of the shorter canvas side.
	spriteScale = 0.2
	// fallbackTextureSize replaces a zero texture dimension.
	fallbackTextureSize = 100
	// lineWidth is the stroke width of generated lines.
	lineWidth = 2
)

// TextureSource supplies sprite textures.
type TextureSource interface {
	// Random returns a texture chosen with r, or nil when none is available.
	Random(r *rand.Rand) *assets.Texture
}

// Item is a generated shape and the node position to place it at.
type Item struct {
	Shape shape.Shape
	X, Y  float64
}

// Generator creates random items for a canvas of a fixed size.
// It is not safe for concurrent use.
type Generator struct {
	width, height float64
	rng           *rand.Rand
	textures      TextureSource
}

// New creates a generator for a width x height canvas. textures may be nil,
// in which case every sprite request fails with ErrNoTexture.
func New(width, height int, seed uint64, textures TextureSource) *Generator {
	return &Generator{
		width:    float64(width),
		height:   float64(height),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		textures: textures,
	}
}

// Kind returns a kind chosen uniformly from all kinds.
func (g *Generator) Kind() shape.Kind {
	kinds := shape.Kinds()
	return kinds[g.rng.IntN(len(kinds))]
}

// Next returns an item of a uniformly chosen kind.
func (g *Generator) Next() (Item, error) {
	k := g.Kind()
	if k == shape.KindSprite {
		return g.Sprite()
	}
	return g.Graphics(k), nil
}

// RandomColor returns an opaque color with a uniform 24-bit value.
func (g *Generator) RandomColor() gg.RGBA {
	return shape.RGB24(g.rng.Uint32N(0xFFFFFF))
}

// Graphics returns a vector shape of kind k. Its size is between 20 and
// 20 + min(w, h)/10 and it lies fully inside the canvas when the canvas is
// larger than the shape. k must not be shape.KindSprite.
func (g *Generator) Graphics(k shape.Kind) Item {
	maxSize := min(g.width, g.height) * graphicsScale
	size := g.rng.Float64()*maxSize + graphicsMinSize
	c := g.RandomColor()
	x := g.rng.Float64() * max(0, g.width-size)
	y := g.rng.Float64() * max(0, g.height-size)

	var s shape.Shape
	switch k {
	case shape.KindCircle:
		s = shape.NewCircle(size/2, size/2, size/2, c)
	case shape.KindLine:
		s = shape.NewLine(0, 0, size, size, lineWidth, c)
	case shape.KindEllipse:
		s = shape.NewEllipse(size/2, size/2, size/2, size/3, c)
	case shape.KindTriangle:
		s = shape.NewTriangle(0, 0, size, c)
	case shape.KindDiamond:
		s = shape.NewDiamond(0, 0, size, c)
	default:
		s = shape.NewRect(0, 0, size, size, c)
	}
	return Item{Shape: s, X: x, Y: y}
}

// Sprite returns a sprite of a random texture, scaled so its longer side is
// min(w, h)/5 and centered on a uniform point of the canvas.
func (g *Generator) Sprite() (Item, error) {
	if g.textures == nil {
		return Item{}, ErrNoTexture
	}
	tex := g.textures.Random(g.rng)
	if tex == nil || tex.Image == nil {
		return Item{}, ErrNoTexture
	}

	tw, th := tex.Size()
	if tw == 0 {
		tw = fallbackTextureSize
	}
	if th == 0 {
		th = fallbackTextureSize
	}
	maxSize := min(g.width, g.height) * spriteScale
	scale := maxSize / float64(max(tw, th))

	sp := shape.NewSprite(tex.Image, tex.ID, scale)
	sp.Name = tex.Name
	return Item{
		Shape: sp,
		X:     g.rng.Float64() * g.width,
		Y:     g.rng.Float64() * g.height,
	}, nil
}
