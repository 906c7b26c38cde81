// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"image"

	"github.com/gogpu/gg"
)

// Recorder captures drawing operations as commands.
// It provides a Context-like API:
//
//	rec := display.NewRecorder(800, 600)
//	rec.SetFillColor(gg.RGB(1, 0, 0))
//	rec.DrawCircle(100, 100, 50)
//	rec.Fill()
//	list := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command

	currentPath *gg.Path

	fillColor   gg.RGBA
	strokeColor gg.RGBA
	lineWidth   float64
	alpha       float64
	transform   Matrix

	stateStack []recorderState
}

// recorderState stores the graphics state for Push/Pop.
type recorderState struct {
	fillColor   gg.RGBA
	strokeColor gg.RGBA
	lineWidth   float64
	alpha       float64
	transform   Matrix
}

const defaultMiterLimit = 4.0

// NewRecorder creates a Recorder for a canvas of the given dimensions.
// It starts with black fill and stroke, a 1px line, full opacity and the
// identity transform. Fills use the non-zero rule; strokes use butt caps
// and miter joins.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:       width,
		height:      height,
		commands:    make([]Command, 0, 64),
		currentPath: gg.NewPath(),
		fillColor:   gg.Black,
		strokeColor: gg.Black,
		lineWidth:   1.0,
		alpha:       1.0,
		transform:   Identity(),
		stateStack:  make([]recorderState, 0, 8),
	}
}

// Width returns the canvas width.
func (r *Recorder) Width() int { return r.width }

// Height returns the canvas height.
func (r *Recorder) Height() int { return r.height }

// Finish returns the immutable List of recorded commands.
// The Recorder should not be used afterwards.
func (r *Recorder) Finish() *List {
	return &List{
		width:    r.width,
		height:   r.height,
		commands: r.commands,
	}
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Push saves the current state (colors, line style, alpha, transform).
func (r *Recorder) Push() {
	r.stateStack = append(r.stateStack, recorderState{
		fillColor:   r.fillColor,
		strokeColor: r.strokeColor,
		lineWidth:   r.lineWidth,
		alpha:       r.alpha,
		transform:   r.transform,
	})
	r.commands = append(r.commands, SaveCommand{})
}

// Pop restores the state saved by the matching Push.
// Pop on an empty stack is a no-op.
func (r *Recorder) Pop() {
	if len(r.stateStack) == 0 {
		return
	}
	s := r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]

	r.fillColor = s.fillColor
	r.strokeColor = s.strokeColor
	r.lineWidth = s.lineWidth
	r.alpha = s.alpha
	r.transform = s.transform
	r.commands = append(r.commands, RestoreCommand{})
}

// Translate moves the origin by (x, y).
func (r *Recorder) Translate(x, y float64) {
	r.transform = r.transform.Multiply(Translate(x, y))
}

// Scale scales subsequent drawing by (sx, sy).
func (r *Recorder) Scale(sx, sy float64) {
	r.transform = r.transform.Multiply(Scale(sx, sy))
}

// Transform returns the current transformation matrix.
func (r *Recorder) Transform() Matrix {
	return r.transform
}

// SetAlpha multiplies the current opacity by a. The result is clamped to [0, 1].
func (r *Recorder) SetAlpha(a float64) {
	r.alpha = clamp01(r.alpha * a)
}

// Alpha returns the current opacity.
func (r *Recorder) Alpha() float64 {
	return r.alpha
}

// SetFillColor sets the fill color.
func (r *Recorder) SetFillColor(c gg.RGBA) {
	r.fillColor = c
}

// SetStrokeColor sets the stroke color.
func (r *Recorder) SetStrokeColor(c gg.RGBA) {
	r.strokeColor = c
}

// SetLineWidth sets the stroke width in user units.
func (r *Recorder) SetLineWidth(width float64) {
	r.lineWidth = width
}

// --------------------------------------------------------------------------
// Path Building
// --------------------------------------------------------------------------

// MoveTo starts a new subpath at the given point.
func (r *Recorder) MoveTo(x, y float64) {
	px, py := r.transform.TransformPoint(x, y)
	r.currentPath.MoveTo(px, py)
}

// LineTo adds a line to the current path.
func (r *Recorder) LineTo(x, y float64) {
	px, py := r.transform.TransformPoint(x, y)
	r.currentPath.LineTo(px, py)
}

// CubicTo adds a cubic Bezier curve to the current path.
func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	cp1x, cp1y := r.transform.TransformPoint(c1x, c1y)
	cp2x, cp2y := r.transform.TransformPoint(c2x, c2y)
	px, py := r.transform.TransformPoint(x, y)
	r.currentPath.CubicTo(cp1x, cp1y, cp2x, cp2y, px, py)
}

// ClosePath closes the current subpath.
func (r *Recorder) ClosePath() {
	r.currentPath.Close()
}

// ClearPath discards the current path.
func (r *Recorder) ClearPath() {
	r.currentPath = gg.NewPath()
}

// DrawLine adds a line segment.
func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.MoveTo(x1, y1)
	r.LineTo(x2, y2)
}

// DrawRectangle adds a closed rectangle.
func (r *Recorder) DrawRectangle(x, y, w, h float64) {
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.ClosePath()
}

// DrawCircle adds a circle approximated by four cubic curves.
func (r *Recorder) DrawCircle(x, y, radius float64) {
	r.DrawEllipse(x, y, radius, radius)
}

// DrawEllipse adds an axis-aligned ellipse approximated by four cubic curves.
func (r *Recorder) DrawEllipse(x, y, rx, ry float64) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	r.MoveTo(x+rx, y)
	r.CubicTo(x+rx, y+oy, x+ox, y+ry, x, y+ry)
	r.CubicTo(x-ox, y+ry, x-rx, y+oy, x-rx, y)
	r.CubicTo(x-rx, y-oy, x-ox, y-ry, x, y-ry)
	r.CubicTo(x+ox, y-ry, x+rx, y-oy, x+rx, y)
	r.ClosePath()
}

// DrawPolygon adds a closed polygon through the given points.
// Fewer than two points add nothing.
func (r *Recorder) DrawPolygon(points []gg.Point) {
	if len(points) < 2 {
		return
	}
	r.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.LineTo(p.X, p.Y)
	}
	r.ClosePath()
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// Fill fills the current path and clears it.
func (r *Recorder) Fill() {
	if r.currentPath.NumVerbs() == 0 {
		return
	}
	r.commands = append(r.commands, FillPathCommand{
		Path:  r.currentPath,
		Color: r.withAlpha(r.fillColor),
		Rule:  FillRuleNonZero,
	})
	r.currentPath = gg.NewPath()
}

// Stroke strokes the current path and clears it.
// The line width is scaled by the current transform.
func (r *Recorder) Stroke() {
	if r.currentPath.NumVerbs() == 0 {
		return
	}
	r.commands = append(r.commands, StrokePathCommand{
		Path:  r.currentPath,
		Color: r.withAlpha(r.strokeColor),
		Stroke: Stroke{
			Width:      r.lineWidth * r.transform.ScaleFactor(),
			Cap:        LineCapButt,
			Join:       LineJoinMiter,
			MiterLimit: defaultMiterLimit,
		},
	})
	r.currentPath = gg.NewPath()
}

// ClearWithColor fills the whole canvas with c, ignoring transform and alpha.
func (r *Recorder) ClearWithColor(c gg.RGBA) {
	r.commands = append(r.commands, FillRectCommand{
		Rect:  NewRect(0, 0, float64(r.width), float64(r.height)),
		Color: c,
	})
}

// DrawImageScaled draws img scaled into the rectangle (x, y, w, h).
// key identifies the image across frames; pass 0 when it is not stable.
func (r *Recorder) DrawImageScaled(img image.Image, key uint64, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	r.commands = append(r.commands, DrawImageCommand{
		Image: img,
		Key:   key,
		Dst:   NewRect(x, y, w, h).Transform(r.transform),
		Alpha: r.alpha,
	})
}

func (r *Recorder) withAlpha(c gg.RGBA) gg.RGBA {
	c.A = clamp01(c.A * r.alpha)
	return c
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
