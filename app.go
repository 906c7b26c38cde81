// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/assets"
	"github.com/gogpu/gg-sketch/canvas"
	"github.com/gogpu/gg-sketch/config"
	"github.com/gogpu/gg-sketch/display"
	_ "github.com/gogpu/gg-sketch/display/pdf" // "pdf" export format
	"github.com/gogpu/gg-sketch/generate"
	"github.com/gogpu/gg-sketch/interact"
	"github.com/gogpu/gg-sketch/scene"
	"github.com/gogpu/gg-sketch/shape"
)

// Surface names.
const (
	// SurfacePrimary hit tests exact shape geometry and shows a pointer
	// cursor over draggable nodes.
	SurfacePrimary = "primary"
	// SurfaceMirror hit tests bounding boxes and shows a grab cursor.
	SurfaceMirror = "mirror"
)

// ErrUnknownSurface is returned for a surface name the App does not have.
var ErrUnknownSurface = interact.ErrUnknownSurface

// Alpha of a sprite while it is being dragged.
const dragAlpha = 0.5

// Textures reloaded by the watcher that wait for the next sync.
const reloadBacklog = 16

// App owns the stage, its two surfaces and everything that feeds them.
// It is not safe for concurrent use; see Loop.
type App struct {
	cfg config.Config

	stage    *scene.Stage
	manager  *interact.Manager
	gen      *generate.Generator
	library  *assets.Library
	surfaces map[string]*canvas.Canvas
	export   display.Format
	reloads  chan *assets.Texture

	canvasBg gg.RGBA
	exportBg gg.RGBA

	opts   options
	synced uint64 // stage version of the last sync
	frames uint64
	closed bool
}

// New creates an App from cfg. The configuration is validated first.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	canvasBg, err := config.ParseColor(cfg.Canvas.Background)
	if err != nil {
		return nil, err
	}
	exportBg, err := config.ParseColor(cfg.Export.Background)
	if err != nil {
		return nil, err
	}
	export, err := display.Lookup(cfg.Export.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	o := defaultOptions(cfg.Seed)
	for _, opt := range opts {
		opt(&o)
	}
	if o.seed == 0 {
		o.seed = uint64(o.now().UnixNano())
	}
	if o.library == nil {
		o.library = assets.NewLibrary()
	}

	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	stage := scene.NewStage(w, h)
	a := &App{
		cfg:      cfg,
		stage:    stage,
		manager:  interact.NewManager(stage),
		gen:      generate.New(w, h, o.seed, o.library),
		library:  o.library,
		surfaces: make(map[string]*canvas.Canvas, 2),
		export:   export,
		reloads:  make(chan *assets.Texture, reloadBacklog),
		canvasBg: canvasBg,
		exportBg: exportBg,
		opts:     o,
	}

	specs := []struct {
		name  string
		mode  scene.HitMode
		hover interact.Cursor
	}{
		{SurfacePrimary, scene.HitShape, interact.CursorPointer},
		{SurfaceMirror, scene.HitBounds, interact.CursorGrab},
	}
	for _, s := range specs {
		c, err := canvas.New(s.name, w, h, canvas.WithHitMode(s.mode), canvas.WithHoverCursor(s.hover))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.surfaces[s.name] = c
		a.manager.Attach(c)
	}

	Logger().Debug("sketch: app created", "width", w, "height", h, "seed", o.seed)
	return a, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.Config { return a.cfg }

// Seed returns the generation seed in use.
func (a *App) Seed() uint64 { return a.opts.seed }

// Stage returns the scene.
func (a *App) Stage() *scene.Stage { return a.stage }

// Library returns the texture library.
func (a *App) Library() *assets.Library { return a.library }

// Surfaces returns the surface names in sorted order.
func (a *App) Surfaces() []string {
	names := make([]string, 0, len(a.surfaces))
	for name := range a.surfaces {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Surface returns the named surface.
func (a *App) Surface(name string) (*canvas.Canvas, error) {
	c, ok := a.surfaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
	}
	return c, nil
}

// LoadAssets loads the configured asset directory and extra paths.
// A missing directory is logged and skipped. When the library is still
// empty afterwards and Assets.Builtin is set, the built-in textures are
// loaded instead. When Assets.Watch is set the directory is watched until
// ctx is done, and sprites follow files rewritten in it.
func (a *App) LoadAssets(ctx context.Context) (int, error) {
	total := 0
	if dir := a.cfg.Assets.Dir; dir != "" {
		n, err := a.library.LoadDir(ctx, dir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			Logger().Warn("sketch: asset directory not found", "dir", dir)
		case err != nil:
			return total, err
		}
		total += n
		if a.cfg.Assets.Watch && err == nil {
			if err := a.library.Watch(ctx, dir, a.textureLoaded); err != nil {
				Logger().Warn("sketch: cannot watch assets", "dir", dir, "err", err)
			}
		}
	}
	n, err := a.library.Load(ctx, a.cfg.Assets.Paths...)
	total += n
	if err != nil {
		return total, err
	}
	if a.cfg.Assets.Builtin && a.library.Len() == 0 {
		n, err := a.library.LoadBuiltin(ctx)
		total += n
		if err != nil {
			return total, err
		}
		Logger().Info("sketch: using built-in textures", "count", n)
	}
	Logger().Info("sketch: textures loaded", "count", total)
	return total, nil
}

// textureLoaded runs on the watcher goroutine. The texture is handed to the
// next sync, which owns the stage.
func (a *App) textureLoaded(t *assets.Texture) {
	if t.Replaces == 0 {
		return
	}
	select {
	case a.reloads <- t:
	default:
		Logger().Warn("sketch: texture reload dropped, backlog full", "path", t.Path)
	}
}

// applyReloads points sprites of replaced textures at their new image and
// drops the stale pixel caches.
func (a *App) applyReloads() {
	for {
		select {
		case t := <-a.reloads:
			a.reloadTexture(t)
		default:
			return
		}
	}
}

func (a *App) reloadTexture(t *assets.Texture) {
	swapped := 0
	for _, n := range a.stage.Nodes() {
		sp, ok := n.Shape().(*shape.Sprite)
		if !ok || sp.Key != t.Replaces {
			continue
		}
		next := *sp
		next.Image = t.Image
		next.Key = t.ID
		n.SetShape(&next)
		swapped++
	}
	for _, c := range a.surfaces {
		c.Forget(t.Replaces)
	}
	Logger().Debug("sketch: texture reloaded", "path", t.Path, "id", t.ID, "sprites", swapped)
}

// AddRandomShape generates a shape of a random kind and adds it to the
// stage. When a sprite is chosen and no texture is loaded it logs a warning
// and returns generate.ErrNoTexture.
func (a *App) AddRandomShape() (*scene.Node, error) {
	item, err := a.gen.Next()
	if err != nil {
		if errors.Is(err, generate.ErrNoTexture) {
			Logger().Warn("sketch: sprite skipped, no texture loaded")
		}
		return nil, err
	}
	return a.AddShape(item.Shape, item.X, item.Y), nil
}

// AddShape adds s at (x, y) and makes it draggable on every surface.
// Graphics take a new random fill when a drag starts; sprites fade to half
// opacity while dragged.
func (a *App) AddShape(s shape.Shape, x, y float64) *scene.Node {
	n := a.stage.Add(s)
	n.SetPosition(x, y)

	var h interact.Handlers
	if s.Kind().IsGraphics() {
		h.OnDown = func(n *scene.Node) { n.Recolor(a.gen.RandomColor()) }
	} else {
		h.OnDown = func(n *scene.Node) { n.SetAlpha(dragAlpha) }
		h.OnUp = func(n *scene.Node) { n.SetAlpha(1) }
	}
	a.manager.AddPointerEvents(n, h)
	return n
}

// RemoveShape removes a node and its handlers. It reports whether the node
// existed.
func (a *App) RemoveShape(id scene.NodeID) bool {
	a.manager.RemovePointerEvents(id)
	return a.stage.Remove(id)
}

// Clear removes every node.
func (a *App) Clear() {
	for _, n := range a.stage.Nodes() {
		a.manager.RemovePointerEvents(n.ID())
	}
	a.stage.Clear()
}

// Pointer dispatches a pointer event and returns the cursor the event's
// surface should show.
func (a *App) Pointer(ev interact.Event) (interact.Cursor, error) {
	return a.manager.Dispatch(ev)
}

// Cursor returns the current cursor of a surface.
func (a *App) Cursor(name string) interact.Cursor {
	return a.manager.Cursor(name)
}

// Record draws the stage over the canvas background into a new display
// list of the canvas size.
func (a *App) Record() *display.List {
	rec := display.NewRecorder(a.stage.Width(), a.stage.Height())
	rec.ClearWithColor(a.canvasBg)
	a.stage.Draw(rec)
	return rec.Finish()
}

// Sync records the stage once and replays it to every surface. It does
// nothing and returns false when the stage has not changed since the last
// sync. Textures reloaded since the last sync are applied first.
func (a *App) Sync() (bool, error) {
	if a.closed {
		return false, canvas.ErrCanvasClosed
	}
	a.applyReloads()
	if a.frames > 0 && a.stage.Version() == a.synced {
		return false, nil
	}
	if err := a.ForceSync(); err != nil {
		return false, err
	}
	return true, nil
}

// ForceSync records and replays the stage regardless of its version.
func (a *App) ForceSync() error {
	if a.closed {
		return canvas.ErrCanvasClosed
	}
	a.applyReloads()
	list := a.Record()
	for _, name := range a.Surfaces() {
		if err := a.surfaces[name].Render(list); err != nil {
			return err
		}
	}
	a.synced = a.stage.Version()
	a.frames++
	Logger().Debug("sketch: synced", "version", a.synced, "commands", list.Len())
	return nil
}

// Frames returns the number of syncs performed.
func (a *App) Frames() uint64 { return a.frames }

// ExportList draws the stage over the export background into a list of the
// configured export size. With Export.FitToPage the canvas is scaled
// uniformly to fit; otherwise it is drawn 1:1 and clipped.
func (a *App) ExportList() *display.List {
	ew, eh := a.cfg.Export.Width, a.cfg.Export.Height
	rec := display.NewRecorder(ew, eh)
	rec.ClearWithColor(a.exportBg)
	if a.cfg.Export.FitToPage {
		s := min(float64(ew)/float64(a.stage.Width()), float64(eh)/float64(a.stage.Height()))
		rec.Scale(s, s)
	}
	a.stage.Draw(rec)
	return rec.Finish()
}

// ExportFormat returns the configured export format.
func (a *App) ExportFormat() display.Format { return a.export }

// Export writes the stage in the named format. An empty name uses the
// configured Export.Format. It returns the format used so callers can label
// the output.
func (a *App) Export(w io.Writer, format string) (display.Format, error) {
	f := a.export
	if format != "" {
		var err error
		if f, err = display.Lookup(format); err != nil {
			return display.Format{}, fmt.Errorf("sketch: export: %w", err)
		}
	}
	doc := display.Document{Title: a.cfg.Export.Title, Created: a.opts.now()}
	if err := f.Export(a.ExportList(), doc, w); err != nil {
		return f, fmt.Errorf("sketch: export: %w", err)
	}
	Logger().Info("sketch: exported", "format", f.Name, "nodes", a.stage.Len())
	return f, nil
}

// ExportPDF writes the stage as a one-page PDF of the configured export
// size, over the export background.
func (a *App) ExportPDF(w io.Writer) error {
	_, err := a.Export(w, "pdf")
	return err
}

// NodeInfo describes a node for clients.
type NodeInfo struct {
	ID      scene.NodeID `json:"id"`
	Kind    shape.Kind   `json:"kind"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Alpha   float64      `json:"alpha"`
	Visible bool         `json:"visible"`
	Bounds  [4]float64   `json:"bounds"` // minX, minY, maxX, maxY
}

// Snapshot returns every node in painter order.
func (a *App) Snapshot() []NodeInfo {
	nodes := a.stage.Nodes()
	out := make([]NodeInfo, 0, len(nodes))
	for _, n := range nodes {
		x, y := n.Position()
		b := n.Bounds()
		out = append(out, NodeInfo{
			ID:      n.ID(),
			Kind:    n.Kind(),
			X:       x,
			Y:       y,
			Alpha:   n.Alpha(),
			Visible: n.Visible(),
			Bounds:  [4]float64{b.MinX, b.MinY, b.MaxX, b.MaxY},
		})
	}
	return out
}

// Close releases the surfaces. Close is idempotent.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	for _, c := range a.surfaces {
		_ = c.Close()
	}
}
