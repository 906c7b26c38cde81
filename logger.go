// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/internal/logging"
)

// SetLogger configures the logger for the sketch and all its sub-packages.
// By default nothing is logged. The logger is also handed to gg, so
// rasterizer and accelerator diagnostics share it.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used:
//   - [slog.LevelDebug]: drag start and end, frame syncs
//   - [slog.LevelInfo]: lifecycle events (textures loaded, server started)
//   - [slog.LevelWarn]: skipped work (unreadable texture, sprite without texture)
//
// Example:
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.Logger()
}
