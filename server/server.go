// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	sketch "github.com/gogpu/gg-sketch"
	"github.com/gogpu/gg-sketch/display"
	"github.com/gogpu/gg-sketch/generate"
	"github.com/gogpu/gg-sketch/interact"
	"github.com/gogpu/gg-sketch/internal/logging"
	"github.com/gogpu/gg-sketch/scene"
	"github.com/gogpu/gg-sketch/shape"
	"github.com/gorilla/websocket"
)

//go:embed static
var static embed.FS

// Server serves one sketch.
type Server struct {
	loop     *sketch.Loop
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// New creates a server that runs all App work on loop.
func New(loop *sketch.Loop) *Server {
	s := &Server{
		loop: loop,
		mux:  http.NewServeMux(),
	}
	s.mux.Handle("GET /", http.FileServerFS(mustSub(static, "static")))
	s.mux.HandleFunc("POST /api/shapes", s.addShape)
	s.mux.HandleFunc("DELETE /api/shapes", s.clearShapes)
	s.mux.HandleFunc("DELETE /api/shapes/{id}", s.removeShape)
	s.mux.HandleFunc("GET /api/scene", s.scene)
	s.mux.HandleFunc("GET /api/surfaces/{name}/frame.png", s.frame)
	s.mux.HandleFunc("GET /api/export", s.export)
	s.mux.HandleFunc("GET /api/export.pdf", s.exportPDF)
	s.mux.HandleFunc("GET /api/ws", s.pointer)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down,
// waiting up to timeout for open requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, timeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return s.Serve(ctx, ln, timeout)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, timeout time.Duration) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	logging.Logger().Info("server: listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	logging.Logger().Info("server: stopped")
	return nil
}

type shapeResponse struct {
	ID   scene.NodeID `json:"id"`
	Kind shape.Kind   `json:"kind"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) addShape(w http.ResponseWriter, r *http.Request) {
	var resp shapeResponse
	err := s.loop.Do(r.Context(), func(a *sketch.App) error {
		n, err := a.AddRandomShape()
		if err != nil {
			return err
		}
		resp = shapeResponse{ID: n.ID(), Kind: n.Kind()}
		return nil
	})
	switch {
	case errors.Is(err, generate.ErrNoTexture):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "no texture loaded"})
	case err != nil:
		s.fail(w, "add shape failed", err)
	default:
		writeJSON(w, http.StatusCreated, resp)
	}
}

func (s *Server) removeShape(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var found bool
	err = s.loop.Do(r.Context(), func(a *sketch.App) error {
		found = a.RemoveShape(scene.NodeID(id))
		return nil
	})
	switch {
	case err != nil:
		s.fail(w, "remove shape failed", err)
	case !found:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such shape"})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) clearShapes(w http.ResponseWriter, r *http.Request) {
	err := s.loop.Do(r.Context(), func(a *sketch.App) error {
		a.Clear()
		return nil
	})
	if err != nil {
		s.fail(w, "clear failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) scene(w http.ResponseWriter, r *http.Request) {
	var nodes []sketch.NodeInfo
	err := s.loop.Do(r.Context(), func(a *sketch.App) error {
		nodes = a.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, "scene failed", err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var buf bytes.Buffer
	err := s.loop.Do(r.Context(), func(a *sketch.App) error {
		c, err := a.Surface(name)
		if err != nil {
			return err
		}
		if _, err := a.Sync(); err != nil {
			return err
		}
		return c.EncodePNG(&buf)
	})
	switch {
	case errors.Is(err, sketch.ErrUnknownSurface):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown surface"})
	case err != nil:
		s.fail(w, "render failed", err)
	default:
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(buf.Bytes())
	}
}

// export writes the stage in the format named by ?format=, or the
// configured one.
func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, r.URL.Query().Get("format"))
}

func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	s.writeExport(w, r, "pdf")
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, format string) {
	var (
		buf bytes.Buffer
		f   display.Format
	)
	err := s.loop.Do(r.Context(), func(a *sketch.App) error {
		var err error
		f, err = a.Export(&buf, format)
		return err
	})
	switch {
	case errors.Is(err, display.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.fail(w, "export failed", err)
		return
	}
	w.Header().Set("Content-Type", f.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="export.%s"`, f.Extension))
	_, _ = w.Write(buf.Bytes())
}

// cursorMessage answers each pointer event.
type cursorMessage struct {
	Surface string          `json:"surface"`
	Cursor  interact.Cursor `json:"cursor"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) pointer(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("server: websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Logger().Debug("server: websocket read", "err", err)
			}
			return
		}

		var ev interact.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			logging.Logger().Warn("server: malformed pointer event", "err", err)
			continue
		}

		reply := cursorMessage{Surface: ev.Surface}
		err = s.loop.Do(r.Context(), func(a *sketch.App) error {
			cur, err := a.Pointer(ev)
			reply.Cursor = cur
			return err
		})
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			reply.Error = err.Error()
		}

		out, err := json.Marshal(reply)
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	logging.Logger().Error("server: "+msg, "err", err)
	http.Error(w, msg, http.StatusInternalServerError)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger().Debug("server: write response", "err", err)
	}
}
