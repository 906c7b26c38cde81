// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package display records a scene as a list of drawing commands that can be
// replayed to any number of backends.
//
// A frame is recorded once and replayed to every live raster surface, and the
// same recording path produces the PDF export. Shapes never talk to a
// backend directly; they only talk to a [Recorder].
//
// # Usage
//
//	rec := display.NewRecorder(800, 600)
//	rec.ClearWithColor(gg.Hex("#E0E0E0"))
//	rec.SetFillColor(gg.RGB(1, 0, 0))
//	rec.DrawCircle(100, 100, 40)
//	rec.Fill()
//	list := rec.Finish()
//
//	f, err := display.Lookup("pdf")
//	if err != nil {
//	    // handle error
//	}
//	err = f.Export(list, display.Document{Title: "sketch"}, w)
//
// # Coordinates
//
// The Recorder applies its current transform while building paths and image
// rectangles, so every command in a [List] is in canvas coordinates and
// backends never need to track a transform.
//
// # Export Formats
//
// Backends that write a file register a [Format] in init(), following the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/gg-sketch/display/raster" // "png"
//	import _ "github.com/gogpu/gg-sketch/display/pdf"    // "pdf"
package display
