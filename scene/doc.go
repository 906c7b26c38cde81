// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene holds the retained model of a sketch: an ordered list of
// nodes, each placing a [shape.Shape] at a position with an opacity.
//
// The stage is the single source of truth for every surface. Each frame it
// is recorded once into a [display.List], and that list is replayed to the
// live raster surfaces and, on export, to the PDF backend:
//
//	st := scene.NewStage(800, 500)
//	n := st.Add(shape.NewCircle(0, 0, 20, gg.Red))
//	n.SetPosition(100, 100)
//
//	rec := display.NewRecorder(st.Width(), st.Height())
//	st.Draw(rec)
//	list := rec.Finish()
//
// Nodes are painted in insertion order; hit testing walks them in reverse,
// so the topmost node wins.
//
// A Stage is not safe for concurrent use.
package scene
