// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"errors"
	"time"
)

// ErrLoopClosed is returned by Loop.Do once Run has returned.
var ErrLoopClosed = errors.New("sketch: loop closed")

type job struct {
	fn   func(*App) error
	done chan error
}

// Loop owns an App on a single goroutine. Work from other goroutines is
// posted with Do; Run interleaves it with a frame ticker that syncs the
// surfaces.
type Loop struct {
	app      *App
	interval time.Duration
	jobs     chan job
	done     chan struct{}
}

// NewLoop creates a loop for app that syncs every interval. A non-positive
// interval disables the ticker; surfaces are then synced after each job.
func NewLoop(app *App, interval time.Duration) *Loop {
	return &Loop{
		app:      app,
		interval: interval,
		jobs:     make(chan job),
		done:     make(chan struct{}),
	}
}

// Do runs fn on the loop goroutine and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func(*App) error) error {
	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case l.jobs <- j:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes jobs and frame ticks until ctx is done. It must be called
// once; afterwards Do returns ErrLoopClosed.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	var tick <-chan time.Time
	if l.interval > 0 {
		t := time.NewTicker(l.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case j := <-l.jobs:
			err := j.fn(l.app)
			if tick == nil && err == nil {
				err = l.sync()
			}
			j.done <- err
		case <-tick:
			if err := l.sync(); err != nil {
				Logger().Warn("sketch: frame sync failed", "err", err)
			}
		}
	}
}

func (l *Loop) sync() error {
	_, err := l.app.Sync()
	return err
}
