// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg-sketch/shape"
)

func startLoop(t *testing.T, app *App, interval time.Duration) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	loop := NewLoop(app, interval)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	t.Cleanup(cancel)
	return loop, cancel, done
}

func TestLoopDoSyncsWithoutTicker(t *testing.T) {
	app := newTestApp(t)
	loop, _, _ := startLoop(t, app, 0)

	ctx := context.Background()
	err := loop.Do(ctx, func(a *App) error {
		a.AddShape(shape.NewRect(0, 0, 10, 10, gg.Red), 1, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	var frames uint64
	_ = loop.Do(ctx, func(a *App) error {
		frames = a.Frames()
		return nil
	})
	if frames != 1 {
		t.Errorf("Frames() = %d, want 1", frames)
	}
}

func TestLoopDoReturnsError(t *testing.T) {
	app := newTestApp(t)
	loop, _, _ := startLoop(t, app, 0)

	want := errors.New("boom")
	if err := loop.Do(context.Background(), func(*App) error { return want }); !errors.Is(err, want) {
		t.Errorf("Do() error = %v, want %v", err, want)
	}
}

func TestLoopTickerSyncs(t *testing.T) {
	app := newTestApp(t)
	loop, _, _ := startLoop(t, app, time.Millisecond)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var frames uint64
		_ = loop.Do(context.Background(), func(a *App) error {
			frames = a.Frames()
			return nil
		})
		if frames > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("ticker never synced")
}

func TestLoopClosed(t *testing.T) {
	app := newTestApp(t)
	loop, cancel, done := startLoop(t, app, 0)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	err := loop.Do(context.Background(), func(*App) error { return nil })
	if !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Do() after Run = %v, want ErrLoopClosed", err)
	}
}

func TestLoopDoContextCancelled(t *testing.T) {
	app := newTestApp(t)
	loop := NewLoop(app, 0) // never run

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Do(ctx, func(*App) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}
