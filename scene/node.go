// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/display"
	"github.com/gogpu/gg-sketch/shape"
)

// NodeID identifies a node within its stage. IDs are never reused.
type NodeID uint64

// HitMode selects how a surface decides whether a point hits a node.
type HitMode uint8

const (
	// HitShape tests the exact shape geometry.
	HitShape HitMode = iota
	// HitBounds tests the node's axis-aligned world bounds.
	HitBounds
)

// String returns the mode name.
func (m HitMode) String() string {
	switch m {
	case HitShape:
		return "shape"
	case HitBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// Node places a shape on the stage.
type Node struct {
	id    NodeID
	stage *Stage
	shape shape.Shape

	x, y        float64
	alpha       float64
	visible     bool
	interactive bool
}

// ID returns the node ID.
func (n *Node) ID() NodeID { return n.id }

// Shape returns the node's shape.
func (n *Node) Shape() shape.Shape { return n.shape }

// Kind returns the kind of the node's shape.
func (n *Node) Kind() shape.Kind { return n.shape.Kind() }

// Position returns the node origin in stage coordinates.
func (n *Node) Position() (x, y float64) { return n.x, n.y }

// Alpha returns the node opacity.
func (n *Node) Alpha() float64 { return n.alpha }

// Visible reports whether the node is drawn.
func (n *Node) Visible() bool { return n.visible }

// Interactive reports whether the node takes part in hit testing.
func (n *Node) Interactive() bool { return n.interactive }

// SetPosition moves the node origin.
func (n *Node) SetPosition(x, y float64) {
	if n.x == x && n.y == y {
		return
	}
	n.x, n.y = x, y
	n.touch()
}

// Translate moves the node by (dx, dy).
func (n *Node) Translate(dx, dy float64) {
	n.SetPosition(n.x+dx, n.y+dy)
}

// SetAlpha sets the opacity, clamped to [0, 1].
func (n *Node) SetAlpha(a float64) {
	a = max(0, min(1, a))
	if n.alpha == a {
		return
	}
	n.alpha = a
	n.touch()
}

// SetVisible shows or hides the node. Hidden nodes are not hit.
func (n *Node) SetVisible(v bool) {
	if n.visible == v {
		return
	}
	n.visible = v
	n.touch()
}

// SetInteractive enables or disables hit testing for the node.
func (n *Node) SetInteractive(v bool) {
	n.interactive = v
}

// SetShape replaces the node's shape. A nil shape is ignored.
func (n *Node) SetShape(s shape.Shape) {
	if s == nil {
		return
	}
	n.shape = s
	n.touch()
}

// Recolor replaces the shape's primary color.
func (n *Node) Recolor(c gg.RGBA) {
	n.shape.Recolor(c)
	n.touch()
}

// Bounds returns the shape bounds in stage coordinates.
func (n *Node) Bounds() display.Rect {
	return n.shape.Bounds().Offset(n.x, n.y)
}

// Hit reports whether the stage point (x, y) hits the node under mode.
func (n *Node) Hit(x, y float64, mode HitMode) bool {
	if mode == HitBounds {
		b := n.Bounds()
		return !b.IsEmpty() && b.Contains(x, y)
	}
	return n.shape.Contains(x-n.x, y-n.y)
}

func (n *Node) draw(rec *display.Recorder) {
	rec.Push()
	rec.Translate(n.x, n.y)
	rec.SetAlpha(n.alpha)
	n.shape.Draw(rec)
	rec.Pop()
}

func (n *Node) touch() {
	if n.stage != nil {
		n.stage.version++
	}
}
