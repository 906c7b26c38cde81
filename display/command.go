// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"image"

	"github.com/gogpu/gg"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdSave       CommandType = iota // Save current state
	CmdRestore                       // Restore previous state
	CmdFillPath                      // Fill a path
	CmdStrokePath                    // Stroke a path
	CmdFillRect                      // Fill an axis-aligned rectangle
	CmdDrawImage                     // Draw an image
)

var commandTypeNames = [...]string{
	CmdSave:       "Save",
	CmdRestore:    "Restore",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
	CmdFillRect:   "FillRect",
	CmdDrawImage:  "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// SaveCommand saves the backend state.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the backend state saved by the matching SaveCommand.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// FillPathCommand fills a path with a solid color.
type FillPathCommand struct {
	// Path is in canvas coordinates.
	Path *gg.Path
	// Color already includes the recorder's global alpha.
	Color gg.RGBA
	Rule  FillRule
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path with a solid color.
type StrokePathCommand struct {
	Path   *gg.Path
	Color  gg.RGBA
	Stroke Stroke
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillRectCommand fills an axis-aligned rectangle.
type FillRectCommand struct {
	Rect  Rect
	Color gg.RGBA
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawImageCommand draws an image scaled into a destination rectangle.
type DrawImageCommand struct {
	Image image.Image
	// Key identifies the image across frames so backends can cache converted
	// pixel buffers. Zero disables caching.
	Key uint64
	// Dst is the destination rectangle in canvas coordinates.
	Dst Rect
	// Alpha is the opacity in [0, 1].
	Alpha float64
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Stroke defines the style for stroking paths.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a 1px butt-capped, mitered stroke.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}
