// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package assets loads the sprite textures of a sketch.
//
// Files are identified by content, not by extension, and decoded with the
// standard image decoders plus BMP and WebP from golang.org/x/image.
// Loading is best-effort: a file that cannot be read or decoded is logged
// and skipped, and the rest of the batch still loads.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gogpu/gg-sketch/internal/logging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupported is returned for content that is not a supported image.
var ErrUnsupported = errors.New("assets: unsupported image format")

// supported maps sniffed extensions to the decoder names image.Decode reports.
var supported = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"gif":  "gif",
	"bmp":  "bmp",
	"webp": "webp",
}

// Texture is a decoded image with a stable ID.
type Texture struct {
	// ID is unique within a Library. A reloaded file gets a new ID.
	ID    uint64
	Name  string
	Path  string
	Image image.Image
	// Replaces is the ID of the texture this one superseded when its path
	// was loaded again, or zero.
	Replaces uint64
}

// Size returns the texture size in pixels.
func (t *Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Library holds loaded textures. It is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	textures []*Texture
	byPath   map[string]*Texture
	nextID   uint64
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{byPath: make(map[string]*Texture)}
}

// Decode sniffs data and decodes it as an image.
func Decode(data []byte) (image.Image, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrUnsupported
	}
	if _, ok := supported[kind.Extension]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", kind.Extension, err)
	}
	return img, nil
}

// LoadFile reads, decodes and adds a single file. A path that was loaded
// before is replaced.
func (l *Library) LoadFile(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return l.decodeAndPut(path, filepath.Base(path), data)
}

func (l *Library) decodeAndPut(path, name string, data []byte) (*Texture, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l.put(path, name, img), nil
}

// Load loads every path, logging and skipping failures. It returns the
// number of textures loaded and stops early only when ctx is done.
func (l *Library) Load(ctx context.Context, paths ...string) (int, error) {
	n := 0
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := l.LoadFile(p); err != nil {
			logging.Logger().Warn("assets: failed to load texture", "path", p, "err", err)
			continue
		}
		n++
	}
	return n, nil
}

// LoadDir loads every regular file in dir, in name order. Files that are
// not images are skipped.
func (l *Library) LoadDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("assets: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return l.Load(ctx, paths...)
}

// Add adds an already decoded image under name.
func (l *Library) Add(name string, img image.Image) *Texture {
	return l.put("", name, img)
}

func (l *Library) put(path, name string, img image.Image) *Texture {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	t := &Texture{ID: l.nextID, Name: name, Path: path, Image: img}
	if path != "" {
		if old, ok := l.byPath[path]; ok {
			t.Replaces = old.ID
			i := slices.Index(l.textures, old)
			l.textures[i] = t
			l.byPath[path] = t
			return t
		}
		l.byPath[path] = t
	}
	l.textures = append(l.textures, t)
	return t
}

// Len returns the number of textures.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.textures)
}

// Textures returns the textures in load order.
func (l *Library) Textures() []*Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.textures)
}

// Get returns the texture with the given ID, or nil.
func (l *Library) Get(id uint64) *Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.textures {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Random returns a uniformly chosen texture, or nil if the library is empty.
func (l *Library) Random(r *rand.Rand) *Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.textures) == 0 {
		return nil
	}
	return l.textures[r.IntN(len(l.textures))]
}
