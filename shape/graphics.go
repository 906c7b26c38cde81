// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shape

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Style         Style
}

// NewRect creates a filled rectangle.
func NewRect(x, y, w, h float64, c gg.RGBA) *Rect {
	return &Rect{X: x, Y: y, Width: w, Height: h, Style: Filled(c)}
}

// Kind returns KindRectangle.
func (r *Rect) Kind() Kind { return KindRectangle }

// Bounds returns the bounding rectangle.
func (r *Rect) Bounds() display.Rect {
	return outset(display.NewRect(r.X, r.Y, r.Width, r.Height), r.Style)
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r *Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Draw records the rectangle into rec.
func (r *Rect) Draw(rec *display.Recorder) {
	r.Style.paint(rec, func() { rec.DrawRectangle(r.X, r.Y, r.Width, r.Height) })
}

// Recolor sets the fill color.
func (r *Rect) Recolor(c gg.RGBA) { r.Style.Fill = c }

// Circle is a circle around (CX, CY).
type Circle struct {
	CX, CY float64
	R      float64
	Style  Style
}

// NewCircle creates a filled circle.
func NewCircle(cx, cy, r float64, c gg.RGBA) *Circle {
	return &Circle{CX: cx, CY: cy, R: r, Style: Filled(c)}
}

// Kind returns KindCircle.
func (c *Circle) Kind() Kind { return KindCircle }

// Bounds returns the bounding square of the circle.
func (c *Circle) Bounds() display.Rect {
	return outset(display.NewRect(c.CX-c.R, c.CY-c.R, 2*c.R, 2*c.R), c.Style)
}

// Contains reports whether (x, y) lies inside the circle.
func (c *Circle) Contains(x, y float64) bool {
	dx := x - c.CX
	dy := y - c.CY
	return dx*dx+dy*dy <= c.R*c.R
}

// Draw records the circle into rec.
func (c *Circle) Draw(rec *display.Recorder) {
	c.Style.paint(rec, func() { rec.DrawCircle(c.CX, c.CY, c.R) })
}

// Recolor sets the fill color.
func (c *Circle) Recolor(col gg.RGBA) { c.Style.Fill = col }

// Ellipse is an axis-aligned ellipse around (CX, CY).
type Ellipse struct {
	CX, CY float64
	RX, RY float64
	Style  Style
}

// NewEllipse creates a filled ellipse.
func NewEllipse(cx, cy, rx, ry float64, c gg.RGBA) *Ellipse {
	return &Ellipse{CX: cx, CY: cy, RX: rx, RY: ry, Style: Filled(c)}
}

// Kind returns KindEllipse.
func (e *Ellipse) Kind() Kind { return KindEllipse }

// Bounds returns the bounding rectangle.
func (e *Ellipse) Bounds() display.Rect {
	return outset(display.NewRect(e.CX-e.RX, e.CY-e.RY, 2*e.RX, 2*e.RY), e.Style)
}

// Contains reports whether (x, y) lies inside the ellipse.
func (e *Ellipse) Contains(x, y float64) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx := (x - e.CX) / e.RX
	dy := (y - e.CY) / e.RY
	return dx*dx+dy*dy <= 1
}

// Draw records the ellipse into rec.
func (e *Ellipse) Draw(rec *display.Recorder) {
	e.Style.paint(rec, func() { rec.DrawEllipse(e.CX, e.CY, e.RX, e.RY) })
}

// Recolor sets the fill color.
func (e *Ellipse) Recolor(c gg.RGBA) { e.Style.Fill = c }

// Line is a stroked segment. Its hit area is its bounding box, so thin
// lines stay easy to grab.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Style  Style
}

// NewLine creates a line stroked with c at the given width.
func NewLine(x1, y1, x2, y2, width float64, c gg.RGBA) *Line {
	return &Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Style: Stroked(c, width)}
}

// Kind returns KindLine.
func (l *Line) Kind() Kind { return KindLine }

// Bounds returns the bounding rectangle of the segment, grown by the stroke.
func (l *Line) Bounds() display.Rect {
	return outset(display.NewRectFromPoints(l.X1, l.Y1, l.X2, l.Y2), l.Style)
}

// Contains reports whether (x, y) lies inside Bounds.
func (l *Line) Contains(x, y float64) bool {
	return l.Bounds().Contains(x, y)
}

// Draw records the segment into rec.
func (l *Line) Draw(rec *display.Recorder) {
	l.Style.paint(rec, func() { rec.DrawLine(l.X1, l.Y1, l.X2, l.Y2) })
}

// Recolor sets the stroke color.
func (l *Line) Recolor(c gg.RGBA) { l.Style.Stroke = c }

// Polygon is a closed convex polygon. Triangles and diamonds are polygons
// with their own kind.
type Polygon struct {
	kind   Kind
	Points []gg.Point
	Style  Style
}

// NewTriangle creates the isosceles triangle inscribed in the square
// (x, y, size, size), apex at the top.
func NewTriangle(x, y, size float64, c gg.RGBA) *Polygon {
	return &Polygon{
		kind: KindTriangle,
		Points: []gg.Point{
			{X: x + size/2, Y: y},
			{X: x + size, Y: y + size},
			{X: x, Y: y + size},
		},
		Style: Filled(c),
	}
}

// NewDiamond creates the rhombus touching the edge midpoints of the square
// (x, y, size, size).
func NewDiamond(x, y, size float64, c gg.RGBA) *Polygon {
	return &Polygon{
		kind: KindDiamond,
		Points: []gg.Point{
			{X: x + size/2, Y: y},
			{X: x + size, Y: y + size/2},
			{X: x + size/2, Y: y + size},
			{X: x, Y: y + size/2},
		},
		Style: Filled(c),
	}
}

// Kind returns the kind the polygon was built as.
func (p *Polygon) Kind() Kind { return p.kind }

// Bounds returns the bounding rectangle of the vertices, grown by the stroke.
func (p *Polygon) Bounds() display.Rect {
	if len(p.Points) == 0 {
		return display.Rect{}
	}
	r := display.Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, pt := range p.Points {
		r.MinX = math.Min(r.MinX, pt.X)
		r.MinY = math.Min(r.MinY, pt.Y)
		r.MaxX = math.Max(r.MaxX, pt.X)
		r.MaxY = math.Max(r.MaxY, pt.Y)
	}
	return outset(r, p.Style)
}

// Contains uses a cross-product sign test, so it is exact for convex
// polygons in either winding order.
func (p *Polygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Draw records the polygon into rec.
func (p *Polygon) Draw(rec *display.Recorder) {
	p.Style.paint(rec, func() { rec.DrawPolygon(p.Points) })
}

// Recolor sets the fill color.
func (p *Polygon) Recolor(c gg.RGBA) { p.Style.Fill = c }

// outset grows r by half the stroke width when s strokes.
func outset(r display.Rect, s Style) display.Rect {
	if s.Stroke.A <= 0 || s.LineWidth <= 0 {
		return r
	}
	h := s.LineWidth / 2
	return display.Rect{MinX: r.MinX - h, MinY: r.MinY - h, MaxX: r.MaxX + h, MaxY: r.MaxY + h}
}
