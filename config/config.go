// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config holds the settings of a sketch, read from TOML.
//
// Every field has a default, so an empty file (or no file) is valid:
//
//	[canvas]
//	width = 800
//	height = 500
//	background = "#E0E0E0"
//
//	[export]
//	format = "pdf"
//	width = 800
//	height = 600
//
//	[assets]
//	dir = "textures"
//	watch = true
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete sketch configuration.
type Config struct {
	Canvas Canvas `toml:"canvas"`
	Export Export `toml:"export"`
	Assets Assets `toml:"assets"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`

	// Seed seeds shape generation. Zero picks a seed from the clock.
	Seed uint64 `toml:"seed"`
}

// Canvas configures the two live surfaces.
type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	// FrameRate is the number of sync ticks per second.
	FrameRate int `toml:"frame_rate"`
}

// Export configures the exported document.
type Export struct {
	// Format names a registered export format, "pdf" or "png".
	Format string `toml:"format"`
	// Width and Height are the page size in points.
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Title      string `toml:"title"`
	// FitToPage scales the canvas uniformly to fit the page. When false the
	// canvas is drawn 1:1 from the top-left corner and may be clipped.
	FitToPage bool `toml:"fit_to_page"`
}

// Assets configures texture loading.
type Assets struct {
	// Dir is loaded in full at startup. Empty disables it; a missing
	// directory is skipped.
	Dir string `toml:"dir"`
	// Builtin loads the textures compiled into the binary when nothing else
	// was loaded.
	Builtin bool `toml:"builtin"`
	// Paths are extra files loaded after Dir.
	Paths []string `toml:"paths"`
	// Watch reloads files added to Dir while running.
	Watch bool `toml:"watch"`
}

// Server configures the HTTP front end.
type Server struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Log configures the process logger.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:      800,
			Height:     500,
			Background: "#E0E0E0",
			FrameRate:  60,
		},
		Export: Export{
			Format:     "pdf",
			Width:      800,
			Height:     600,
			Background: "#FFFFFF",
			Title:      "gg-sketch export",
			FitToPage:  false,
		},
		Assets: Assets{
			Dir:     "textures",
			Builtin: true,
		},
		Server: Server{
			Addr:            "localhost:8080",
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Export.Width <= 0 || c.Export.Height <= 0:
		return fmt.Errorf("%w: export size %dx%d", ErrInvalid, c.Export.Width, c.Export.Height)
	case strings.TrimSpace(c.Export.Format) == "":
		return fmt.Errorf("%w: export format is empty", ErrInvalid)
	case c.Canvas.FrameRate <= 0 || c.Canvas.FrameRate > 240:
		return fmt.Errorf("%w: frame_rate %d not in 1..240", ErrInvalid, c.Canvas.FrameRate)
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("%w: canvas background: %v", ErrInvalid, err)
	}
	if _, err := ParseColor(c.Export.Background); err != nil {
		return fmt.Errorf("%w: export background: %v", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// FrameInterval returns the time between sync ticks.
func (c Canvas) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q", l.Level)
	}
	return lvl, nil
}

// ParseColor parses a #RGB, #RRGGBB or #RRGGBBAA color.
func ParseColor(s string) (gg.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return gg.RGBA{}, fmt.Errorf("color %q: not hexadecimal", s)
		}
	}
	return gg.Hex(h), nil
}
