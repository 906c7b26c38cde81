// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrUnknownFormat is returned for a format name nobody registered.
var ErrUnknownFormat = errors.New("display: unknown format")

// Document carries the metadata a document backend may record.
// Backends without document metadata ignore it.
type Document struct {
	Title   string
	Created time.Time
}

// Format is an output format a display list can be exported to.
type Format struct {
	// Name selects the format, e.g. "pdf". Names are case-insensitive.
	Name string
	// MediaType is the Content-Type of the output.
	MediaType string
	// Extension is the file extension without a dot.
	Extension string
	// New creates a backend for one document.
	New func(doc Document) WriterBackend
}

var (
	formatsMu sync.RWMutex
	formats   = make(map[string]Format)
)

// Register makes a format available by name. Backend packages call it
// from init.
//
// Register panics if f has no name or constructor, or if the name is taken.
func Register(f Format) {
	name := strings.ToLower(f.Name)
	if name == "" || f.New == nil {
		panic("display: Register needs a name and a constructor")
	}

	formatsMu.Lock()
	defer formatsMu.Unlock()
	if _, dup := formats[name]; dup {
		panic("display: format " + name + " registered twice")
	}
	f.Name = name
	formats[name] = f
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	formatsMu.RLock()
	f, ok := formats[strings.ToLower(name)]
	formatsMu.RUnlock()
	if !ok {
		return Format{}, fmt.Errorf("%w %q (registered: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Export plays list back into a new backend of format f and writes the
// result to w.
func (f Format) Export(list *List, doc Document, w io.Writer) error {
	backend := f.New(doc)
	if c, ok := backend.(io.Closer); ok {
		defer c.Close()
	}
	if err := list.Playback(backend); err != nil {
		return fmt.Errorf("display: %s: %w", f.Name, err)
	}
	if _, err := backend.WriteTo(w); err != nil {
		return fmt.Errorf("display: %s: %w", f.Name, err)
	}
	return nil
}
