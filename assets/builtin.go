// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package assets

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/gogpu/gg-sketch/internal/logging"
)

//go:embed builtin/*.png
var builtin embed.FS

// Builtin returns the textures compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadFS loads every regular file in dir of fsys, in name order, logging
// and skipping failures like Load. Textures are keyed by their path in
// fsys, so loading the same tree again replaces them. Keys never collide
// with files loaded from disk.
func (l *Library) LoadFS(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("assets: %w", err)
	}
	n := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if !e.Type().IsRegular() {
			continue
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, p)
		if err == nil {
			_, err = l.decodeAndPut("fs:"+p, e.Name(), data)
		}
		if err != nil {
			logging.Logger().Warn("assets: failed to load texture", "path", p, "err", err)
			continue
		}
		n++
	}
	return n, nil
}

// LoadBuiltin loads the textures returned by Builtin.
func (l *Library) LoadBuiltin(ctx context.Context) (int, error) {
	return l.LoadFS(ctx, Builtin(), ".")
}
