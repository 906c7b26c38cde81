// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sketch is an interactive shape sketch built on gg.
//
// # Overview
//
// Random shapes and sprites are dropped onto a stage, dragged around with
// the pointer and exported to a PDF document. The stage is shown on two
// raster surfaces at once: "primary", which hit tests exact shape geometry,
// and "mirror", which hit tests bounding boxes. Both surfaces are redrawn
// from one display list each frame, so they always show the same picture,
// and a drag on either moves the same node.
//
// # Quick Start
//
//	app, err := sketch.New(config.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//
//	_, _ = app.LoadAssets(ctx)
//	for i := 0; i < 20; i++ {
//		_, _ = app.AddRandomShape()
//	}
//	_ = app.ForceSync()
//
//	f, _ := os.Create("export.pdf")
//	defer f.Close()
//	_ = app.ExportPDF(f)
//
// # Architecture
//
// The module is organized into:
//   - shape: the drawable kinds, each drawing itself into a recorder
//   - scene: the retained stage of positioned nodes
//   - display: the display list, its recorder and export format registry
//   - display/raster, display/pdf: gg and gofpdf backends
//   - canvas: named raster surfaces
//   - interact: hover cursors and drags across surfaces
//   - generate, assets: random items and their textures
//   - server: the HTTP and WebSocket front end
//
// # Concurrency
//
// An App is not safe for concurrent use. Wrap it in a [Loop] and post work
// with [Loop.Do]; the loop goroutine also drives the per-frame sync.
package sketch
