// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package assets

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/gg-sketch/internal/logging"
)

// Watch reloads files created or written in dir until ctx is done.
// onLoad, if non-nil, is called from the watcher goroutine for every
// texture loaded. Watch returns once the watcher is running.
func (l *Library) Watch(ctx context.Context, dir string, onLoad func(*Texture)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("assets: watch: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("assets: watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				t, err := l.LoadFile(event.Name)
				if err != nil {
					logging.Logger().Warn("assets: reload failed", "path", event.Name, "err", err)
					continue
				}
				logging.Logger().Info("assets: texture loaded", "path", event.Name, "id", t.ID)
				if onLoad != nil {
					onLoad(t)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Logger().Warn("assets: watcher error", "dir", dir, "err", err)
			}
		}
	}()
	return nil
}
