// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Export.Width != 800 || cfg.Export.Height != 600 {
		t.Errorf("export page = %dx%d, want 800x600", cfg.Export.Width, cfg.Export.Height)
	}
	if cfg.Export.Format != "pdf" {
		t.Errorf("export format = %q, want pdf", cfg.Export.Format)
	}
	if got := cfg.Canvas.FrameInterval(); got != time.Second/60 {
		t.Errorf("FrameInterval() = %v", got)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	src := `
seed = 7

[canvas]
width = 640
background = "#101010"

[assets]
paths = ["a.png", "b.png"]
watch = true

[server]
shutdown_timeout = "250ms"

[log]
level = "debug"
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Seed != 7 || cfg.Canvas.Width != 640 || cfg.Canvas.Height != 500 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Assets.Paths) != 2 || !cfg.Assets.Watch || cfg.Assets.Dir != "textures" || !cfg.Assets.Builtin {
		t.Errorf("assets = %+v", cfg.Assets)
	}
	if time.Duration(cfg.Server.ShutdownTimeout) != 250*time.Millisecond {
		t.Errorf("shutdown_timeout = %v", time.Duration(cfg.Server.ShutdownTimeout))
	}
	if lvl, _ := cfg.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("level = %v", lvl)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "[canvas]\ndepth = 3\n"},
		{"bad syntax", "[canvas\n"},
		{"zero width", "[canvas]\nwidth = 0\n"},
		{"bad color", "[export]\nbackground = \"#GGGGGG\"\n"},
		{"bad frame rate", "[canvas]\nframe_rate = 0\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad format", "[log]\nformat = \"xml\"\n"},
		{"bad duration", "[server]\nshutdown_timeout = \"soon\"\n"},
		{"empty export format", "[export]\nformat = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.src)); err == nil {
				t.Error("Decode succeeded")
			}
		})
	}

	_, err := Decode(strings.NewReader("[canvas]\nheight = -1\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("validation error %v does not wrap ErrInvalid", err)
	}
}

func TestLoadAndEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.toml")

	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas != Default().Canvas || cfg.Server != Default().Server {
		t.Errorf("encoded defaults did not load back: %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#E0E0E0")
	if err != nil {
		t.Fatal(err)
	}
	if d := c.R - 224.0/255; d > 1e-9 || d < -1e-9 {
		t.Errorf("R = %v", c.R)
	}
	for _, bad := range []string{"", "#12", "#12345", "zzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}
