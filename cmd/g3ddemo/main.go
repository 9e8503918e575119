// Command g3ddemo renders a grid of cubes through a g3d backend and logs
// per-frame statistics.
//
// Usage:
//
//	g3ddemo [-config demo.toml] [-backend recording] [-frames 3] [-v]
//
// The recording backend runs headless. The opengl and wgpu backends need a
// host that owns a current GL context or a GPU device.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/recording"
	"github.com/gogpu/g3d/render"

	_ "github.com/gogpu/g3d/backend/opengl"
	_ "github.com/gogpu/g3d/backend/wgpu"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		backend    = flag.String("backend", "", "device backend ("+strings.Join(device.Backends(), ", ")+")")
		frames     = flag.Int("frames", -1, "number of frames to render")
		verbose    = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	g3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fail(err)
		}
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}

	if err := run(cfg); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "g3ddemo:", err)
	os.Exit(1)
}

// run opens the backend, builds the scene and renders cfg.Frames frames.
func run(cfg Config) error {
	log := g3d.Logger()

	ctx, err := device.Open(cfg.Backend, device.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Label:  "g3ddemo",
	})
	if err != nil {
		return err
	}
	if c, ok := ctx.(device.Closer); ok {
		defer c.Close()
	}

	cam := newCamera(cfg)
	actors := buildScene(cfg, newProgram(cfg.Backend))

	r := render.NewRendering(cam,
		render.WithName("g3ddemo"),
		render.WithCulling(cfg.Culling),
	)
	r.AddManager(actors)

	for i := range cfg.Frames {
		if err := r.Render(ctx); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		st := r.Stats()
		log.Info("frame",
			"n", i,
			"actors", actors.Len(),
			"culled", st.Culled,
			"drawn", st.Drawn,
			"skipped", st.Skipped,
			"draw_calls", st.DrawCalls,
			"triangles", st.Triangles,
			"state_changes", st.StateChanges)
	}
	if rc, ok := ctx.(*recording.Context); ok {
		log.Info("recorded", "commands", rc.Len(), "draws", rc.Draws())
	}
	return nil
}
