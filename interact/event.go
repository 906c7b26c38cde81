// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package interact

import (
	"fmt"
	"strings"
)

// EventType identifies a pointer event.
type EventType uint8

const (
	EventDown EventType = iota
	EventMove
	EventUp
	EventLeave
)

var eventTypeNames = [...]string{
	EventDown:  "down",
	EventMove:  "move",
	EventUp:    "up",
	EventLeave: "leave",
}

// String returns the event type name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", t)
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	if int(t) >= len(eventTypeNames) {
		return nil, fmt.Errorf("interact: unknown event type %d", t)
	}
	return []byte(eventTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the DOM
// names pointerdown, mousemove and so on as well as the bare names.
func (t *EventType) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	s = strings.TrimPrefix(s, "pointer")
	s = strings.TrimPrefix(s, "mouse")
	for i, name := range eventTypeNames {
		if name == s {
			*t = EventType(i)
			return nil
		}
	}
	if s == "out" {
		*t = EventLeave
		return nil
	}
	return fmt.Errorf("interact: unknown event type %q", string(text))
}

// Event is a pointer event on a named surface, in surface coordinates.
type Event struct {
	Surface string    `json:"surface"`
	Type    EventType `json:"type"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Pointer int       `json:"pointer"`
}

// Cursor is the pointer cursor a surface should show.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorGrab
	CursorGrabbing
)

var cursorNames = [...]string{
	CursorDefault:  "default",
	CursorPointer:  "pointer",
	CursorGrab:     "grab",
	CursorGrabbing: "grabbing",
}

// String returns the CSS cursor name.
func (c Cursor) String() string {
	if int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return "default"
}

// MarshalText implements encoding.TextMarshaler.
func (c Cursor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

