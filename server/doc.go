// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package server exposes a sketch over HTTP.
//
// Every handler posts its work to the sketch.Loop that owns the App, so the
// App is only touched from the loop goroutine. Pointer events arrive over a
// WebSocket, one JSON interact.Event per message, and each is answered with
// the cursor the event's surface should show.
//
// Routes:
//
//	GET    /                               browser client
//	POST   /api/shapes                     add a random shape
//	DELETE /api/shapes                     remove every shape
//	DELETE /api/shapes/{id}                remove one shape
//	GET    /api/scene                      nodes in painter order
//	GET    /api/surfaces/{name}/frame.png  current frame of a surface
//	GET    /api/export.pdf                 PDF export
//	GET    /api/ws                         pointer event socket
package server
