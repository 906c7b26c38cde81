// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package interact turns pointer events from any number of surfaces into
// hover cursors and node drags on a shared stage.
//
// Each surface is attached with its own hit mode and hover cursor. A press
// on a node that has handlers captures that pointer on that surface until
// release, so two surfaces (or two pointers) can drag independently.
package interact

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gg-sketch/internal/logging"
	"github.com/gogpu/gg-sketch/scene"
)

// ErrUnknownSurface is returned for events on a surface that was never attached.
var ErrUnknownSurface = errors.New("interact: unknown surface")

// Handlers are the callbacks for a draggable node. Any field may be nil.
type Handlers struct {
	// OnDown fires when a drag starts on the node.
	OnDown func(n *scene.Node)
	// OnDrag fires after each move of a dragged node.
	OnDrag func(n *scene.Node)
	// OnUp fires when the drag ends, including when it is cancelled.
	OnUp func(n *scene.Node)
}

type drag struct {
	node         *scene.Node
	pointerX     float64
	pointerY     float64
	nodeX, nodeY float64
}

// Surface is a view that pointer events come from. Its hit mode and hover
// cursor are read once, when it is attached.
type Surface interface {
	Name() string
	HitMode() scene.HitMode
	HoverCursor() Cursor
}

type surface struct {
	mode   scene.HitMode
	hover  Cursor
	cursor Cursor
	drags  map[int]*drag
}

// Manager dispatches pointer events against a stage.
// It is not safe for concurrent use.
type Manager struct {
	stage    *scene.Stage
	surfaces map[string]*surface
	handlers map[scene.NodeID]Handlers
}

// NewManager creates a manager for stage.
func NewManager(stage *scene.Stage) *Manager {
	return &Manager{
		stage:    stage,
		surfaces: make(map[string]*surface),
		handlers: make(map[scene.NodeID]Handlers),
	}
}

// Attach registers a surface under its name. Its hover cursor is shown over
// a draggable node. Attaching an existing name replaces its settings and
// cancels its drags without callbacks.
func (m *Manager) Attach(s Surface) {
	m.surfaces[s.Name()] = &surface{
		mode:  s.HitMode(),
		hover: s.HoverCursor(),
		drags: make(map[int]*drag),
	}
}

// Surfaces returns the attached surface names in sorted order.
func (m *Manager) Surfaces() []string {
	names := make([]string, 0, len(m.surfaces))
	for name := range m.surfaces {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AddPointerEvents makes n draggable with the given callbacks.
func (m *Manager) AddPointerEvents(n *scene.Node, h Handlers) {
	m.handlers[n.ID()] = h
}

// RemovePointerEvents makes a node inert. Drags in progress on it are
// dropped without callbacks, and surfaces that lost a drag fall back to the
// idle cursor.
func (m *Manager) RemovePointerEvents(id scene.NodeID) {
	delete(m.handlers, id)
	for _, s := range m.surfaces {
		dropped := false
		for p, d := range s.drags {
			if d.node.ID() == id {
				delete(s.drags, p)
				dropped = true
			}
		}
		if dropped {
			s.cursor = s.idleCursor()
		}
	}
}

// Cursor returns the cursor the named surface should show.
func (m *Manager) Cursor(name string) Cursor {
	if s, ok := m.surfaces[name]; ok {
		return s.cursor
	}
	return CursorDefault
}

// Dragging reports whether any pointer is dragging on the named surface.
func (m *Manager) Dragging(name string) bool {
	s, ok := m.surfaces[name]
	return ok && len(s.drags) > 0
}

// Dispatch applies ev and returns the cursor its surface should now show.
func (m *Manager) Dispatch(ev Event) (Cursor, error) {
	s, ok := m.surfaces[ev.Surface]
	if !ok {
		return CursorDefault, fmt.Errorf("%w: %q", ErrUnknownSurface, ev.Surface)
	}

	switch ev.Type {
	case EventDown:
		m.down(s, ev)
	case EventMove:
		m.move(s, ev)
	case EventUp:
		m.up(s, ev)
	case EventLeave:
		m.leave(s, ev)
	default:
		return s.cursor, fmt.Errorf("interact: unknown event type %v", ev.Type)
	}
	return s.cursor, nil
}

func (m *Manager) down(s *surface, ev Event) {
	if d, ok := s.drags[ev.Pointer]; ok {
		// A press without a release; finish the stale drag first.
		delete(s.drags, ev.Pointer)
		m.fire(d.node, func(h Handlers) func(*scene.Node) { return h.OnUp })
	}

	n := m.stage.HitTest(ev.X, ev.Y, s.mode)
	if n == nil {
		s.cursor = s.idleCursor()
		return
	}
	if _, ok := m.handlers[n.ID()]; !ok {
		s.cursor = s.idleCursor()
		return
	}

	nx, ny := n.Position()
	s.drags[ev.Pointer] = &drag{
		node:     n,
		pointerX: ev.X,
		pointerY: ev.Y,
		nodeX:    nx,
		nodeY:    ny,
	}
	s.cursor = CursorGrabbing
	logging.Logger().Debug("interact: drag start",
		"surface", ev.Surface, "node", n.ID(), "pointer", ev.Pointer)
	m.fire(n, func(h Handlers) func(*scene.Node) { return h.OnDown })
}

func (m *Manager) move(s *surface, ev Event) {
	d, ok := s.drags[ev.Pointer]
	if !ok {
		s.cursor = m.hoverCursor(s, ev)
		return
	}
	if m.stage.Node(d.node.ID()) != d.node {
		// Removed from the stage mid-drag.
		delete(s.drags, ev.Pointer)
		s.cursor = m.hoverCursor(s, ev)
		return
	}
	d.node.SetPosition(d.nodeX+ev.X-d.pointerX, d.nodeY+ev.Y-d.pointerY)
	s.cursor = CursorGrabbing
	m.fire(d.node, func(h Handlers) func(*scene.Node) { return h.OnDrag })
}

func (m *Manager) up(s *surface, ev Event) {
	d, ok := s.drags[ev.Pointer]
	if !ok {
		s.cursor = m.hoverCursor(s, ev)
		return
	}
	delete(s.drags, ev.Pointer)
	logging.Logger().Debug("interact: drag end",
		"surface", ev.Surface, "node", d.node.ID(), "pointer", ev.Pointer)
	m.fire(d.node, func(h Handlers) func(*scene.Node) { return h.OnUp })
	s.cursor = m.releaseCursor(s, d.node, ev)
}

// releaseCursor returns the cursor after n is dropped at ev: the hover
// cursor while the pointer is still over n, and the default otherwise.
func (m *Manager) releaseCursor(s *surface, n *scene.Node, ev Event) Cursor {
	if len(s.drags) > 0 {
		return CursorGrabbing
	}
	if _, ok := m.handlers[n.ID()]; !ok {
		return CursorDefault
	}
	if m.stage.Node(n.ID()) != n || !n.Visible() || !n.Interactive() {
		return CursorDefault
	}
	if !n.Hit(ev.X, ev.Y, s.mode) {
		return CursorDefault
	}
	return s.hover
}

func (m *Manager) leave(s *surface, ev Event) {
	pointers := make([]int, 0, len(s.drags))
	for p := range s.drags {
		pointers = append(pointers, p)
	}
	slices.Sort(pointers)
	for _, p := range pointers {
		d := s.drags[p]
		delete(s.drags, p)
		logging.Logger().Debug("interact: drag cancelled",
			"surface", ev.Surface, "node", d.node.ID(), "pointer", p)
		m.fire(d.node, func(h Handlers) func(*scene.Node) { return h.OnUp })
	}
	s.cursor = CursorDefault
}

// hoverCursor returns the cursor for a pointer resting at ev.
func (m *Manager) hoverCursor(s *surface, ev Event) Cursor {
	if len(s.drags) > 0 {
		return CursorGrabbing
	}
	n := m.stage.HitTest(ev.X, ev.Y, s.mode)
	if n == nil {
		return CursorDefault
	}
	if _, ok := m.handlers[n.ID()]; !ok {
		return CursorDefault
	}
	return s.hover
}

func (m *Manager) fire(n *scene.Node, pick func(Handlers) func(*scene.Node)) {
	h, ok := m.handlers[n.ID()]
	if !ok {
		return
	}
	if fn := pick(h); fn != nil {
		fn(n)
	}
}

func (s *surface) idleCursor() Cursor {
	if len(s.drags) > 0 {
		return CursorGrabbing
	}
	return CursorDefault
}
