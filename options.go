// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"time"

	"github.com/gogpu/gg-sketch/assets"
)

// Option configures an App during creation.
//
// Example:
//
//	app, _ := sketch.New(cfg, sketch.WithSeed(42))
type Option func(*options)

type options struct {
	seed    uint64
	library *assets.Library
	now     func() time.Time
}

func defaultOptions(seed uint64) options {
	return options{
		seed: seed,
		now:  time.Now,
	}
}

// WithSeed overrides the configured generation seed. Zero keeps the
// configured seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		if seed != 0 {
			o.seed = seed
		}
	}
}

// WithLibrary shares an existing texture library instead of creating one.
func WithLibrary(lib *assets.Library) Option {
	return func(o *options) {
		o.library = lib
	}
}

// WithClock sets the clock used for the clock-derived seed and the PDF
// creation date.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
