// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"github.com/gogpu/gg-sketch/display"
	"github.com/gogpu/gg-sketch/shape"
)

// Stage is an ordered list of nodes over a fixed-size canvas.
type Stage struct {
	width, height int

	nodes  []*Node
	byID   map[NodeID]*Node
	nextID NodeID

	// version is incremented on every change that affects drawing.
	version uint64
}

// NewStage creates an empty stage of the given size.
func NewStage(width, height int) *Stage {
	return &Stage{
		width:  width,
		height: height,
		nodes:  make([]*Node, 0, 32),
		byID:   make(map[NodeID]*Node),
	}
}

// Width returns the stage width.
func (s *Stage) Width() int { return s.width }

// Height returns the stage height.
func (s *Stage) Height() int { return s.height }

// Version returns a counter that changes whenever the stage would draw
// differently.
func (s *Stage) Version() uint64 { return s.version }

// Len returns the number of nodes.
func (s *Stage) Len() int { return len(s.nodes) }

// Add appends a visible, interactive node for sh at the origin.
// The new node is drawn on top of every existing node.
func (s *Stage) Add(sh shape.Shape) *Node {
	s.nextID++
	n := &Node{
		id:          s.nextID,
		stage:       s,
		shape:       sh,
		alpha:       1,
		visible:     true,
		interactive: true,
	}
	s.nodes = append(s.nodes, n)
	s.byID[n.id] = n
	s.version++
	return n
}

// Remove deletes the node with the given ID and reports whether it existed.
func (s *Stage) Remove(id NodeID) bool {
	n, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	for i, m := range s.nodes {
		if m == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	n.stage = nil
	s.version++
	return true
}

// Node returns the node with the given ID, or nil.
func (s *Stage) Node(id NodeID) *Node {
	return s.byID[id]
}

// Nodes returns the nodes in painter order. The slice is a copy.
func (s *Stage) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Clear removes every node. IDs keep increasing afterwards.
func (s *Stage) Clear() {
	for _, n := range s.nodes {
		n.stage = nil
	}
	s.nodes = s.nodes[:0]
	clear(s.byID)
	s.version++
}

// HitTest returns the topmost visible, interactive node hit by (x, y),
// or nil.
func (s *Stage) HitTest(x, y float64, mode HitMode) *Node {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := s.nodes[i]
		if !n.visible || !n.interactive {
			continue
		}
		if n.Hit(x, y, mode) {
			return n
		}
	}
	return nil
}

// Draw records every visible node in painter order, each translated by its
// position and faded by its alpha. The recorder's own transform and alpha
// apply on top.
func (s *Stage) Draw(rec *display.Recorder) {
	for _, n := range s.nodes {
		if !n.visible || n.alpha <= 0 {
			continue
		}
		n.draw(rec)
	}
}
