// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas provides named raster surfaces that display lists are
// replayed into.
//
// A sketch shows the same stage on two surfaces. Both are canvases; they
// differ only in how they hit test and which cursor they show while
// hovering a draggable node:
//
//	primary, _ := canvas.New("primary", 800, 500)
//	mirror, _ := canvas.New("mirror", 800, 500,
//		canvas.WithHitMode(scene.HitBounds),
//		canvas.WithHoverCursor(interact.CursorGrab))
//
//	list := recordFrame()
//	_ = primary.Render(list)
//	_ = mirror.Render(list)
//
// # Dirty Tracking
//
// Render marks the canvas dirty. EncodePNG re-encodes only when the canvas
// changed since the last encode, so frequent frame polls are cheap.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use.
package canvas
