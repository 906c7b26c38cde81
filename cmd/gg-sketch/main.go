// Command gg-sketch runs the shape sketch.
//
// Without -serve it renders once: it adds -shapes random shapes, syncs both
// surfaces and writes primary.png, mirror.png and the export (export.pdf by
// default, see -format) into -out.
// With -serve it serves the browser client until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	sketch "github.com/gogpu/gg-sketch"
	"github.com/gogpu/gg-sketch/config"
	"github.com/gogpu/gg-sketch/generate"
	"github.com/gogpu/gg-sketch/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		serve      = flag.Bool("serve", false, "serve the browser client")
		addr       = flag.String("addr", "", "listen address (overrides the config)")
		shapes     = flag.Int("shapes", 20, "random shapes to add in render mode")
		seed       = flag.Uint64("seed", 0, "generation seed (0 uses the config)")
		out        = flag.String("out", ".", "output directory in render mode")
		format     = flag.String("format", "", "export format, pdf or png (overrides the config)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *format != "" {
		cfg.Export.Format = *format
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Invalid log config: %v", err)
	}
	sketch.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := sketch.New(cfg, sketch.WithSeed(*seed))
	if err != nil {
		log.Fatalf("Failed to create sketch: %v", err)
	}
	defer app.Close()

	if _, err := app.LoadAssets(ctx); err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}

	if *serve {
		err = runServer(ctx, app, cfg)
	} else {
		err = render(app, *shapes, *out)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func newLogger(c config.Log) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func runServer(ctx context.Context, app *sketch.App, cfg config.Config) error {
	loop := sketch.NewLoop(app, cfg.Canvas.FrameInterval())
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	log.Printf("Serving at http://%s", cfg.Server.Addr)
	srvErr := server.New(loop).ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout.Std())
	return errors.Join(srvErr, <-loopDone)
}

func render(app *sketch.App, shapes int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i := 0; i < shapes; i++ {
		if _, err := app.AddRandomShape(); err != nil && !errors.Is(err, generate.ErrNoTexture) {
			return err
		}
	}
	if err := app.ForceSync(); err != nil {
		return err
	}

	for _, name := range app.Surfaces() {
		if err := writeFile(filepath.Join(dir, name+".png"), func(f *os.File) error {
			c, err := app.Surface(name)
			if err != nil {
				return err
			}
			return c.EncodePNG(f)
		}); err != nil {
			return err
		}
	}
	export := "export." + app.ExportFormat().Extension
	if err := writeFile(filepath.Join(dir, export), func(f *os.File) error {
		_, err := app.Export(f, "")
		return err
	}); err != nil {
		return err
	}

	log.Printf("Rendered %d nodes to %s", app.Stage().Len(), dir)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
