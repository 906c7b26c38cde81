// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

// List is an immutable sequence of recorded commands.
// It can be replayed to any number of backends, including concurrently.
type List struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recorded canvas.
func (l *List) Width() int { return l.width }

// Height returns the height of the recorded canvas.
func (l *List) Height() int { return l.height }

// Len returns the number of recorded commands.
func (l *List) Len() int { return len(l.commands) }

// Commands returns the recorded commands. The slice must not be modified.
func (l *List) Commands() []Command { return l.commands }

// Playback replays the list to backend, bracketed by Begin and End.
func (l *List) Playback(backend Backend) error {
	if err := backend.Begin(l.width, l.height); err != nil {
		return err
	}

	for _, cmd := range l.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			backend.Save()
		case RestoreCommand:
			backend.Restore()
		case FillPathCommand:
			backend.FillPath(c.Path, c.Color, c.Rule)
		case StrokePathCommand:
			backend.StrokePath(c.Path, c.Color, c.Stroke)
		case FillRectCommand:
			backend.FillRect(c.Rect, c.Color)
		case DrawImageCommand:
			backend.DrawImage(c.Image, c.Key, c.Dst, c.Alpha)
		}
	}

	return backend.End()
}
