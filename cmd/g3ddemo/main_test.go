package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/g3d/shader"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("width = 320\nheight = 240\ngrid = 3\nculling = false\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 || cfg.Grid != 3 || cfg.Culling {
		t.Errorf("ParseConfig() = %+v", cfg)
	}
	if cfg.FOV != DefaultConfig().FOV || cfg.Backend != "recording" {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"unknown key", "colour = 1\n", "colour"},
		{"bad size", "width = 0\n", "invalid size"},
		{"bad grid", "grid = -1\n", "grid"},
		{"bad fov", "fov = 200.0\n", "fov"},
		{"syntax", "width = \n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseConfig(%q) error = %v, want mention of %q", tt.data, err, tt.want)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig("demo.toml")
	if err != nil {
		t.Fatalf("LoadConfig(demo.toml) error = %v", err)
	}
	if cfg.Grid != 10 || cfg.TranslucentEvery != 4 {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil || os.IsExist(err) {
		t.Error("missing file should fail")
	}
}

func TestBuildScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid = 4
	cfg.TranslucentEvery = 4
	list := buildScene(cfg, newProgram("recording"))
	if list.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", list.Len())
	}
	translucent := 0
	for _, a := range list.Actors(nil, nil) {
		if a.Effect.Passes[0].Translucent() {
			translucent++
		}
	}
	if translucent != 4 {
		t.Errorf("translucent actors = %d, want 4", translucent)
	}
	if newProgram("wgpu").Language() != shader.WGSL || newProgram("opengl").Language() != shader.GLSL {
		t.Error("program language per backend mismatch")
	}
}

func TestRunRecording(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid = 3
	cfg.Frames = 2
	if err := run(cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	cfg.Backend = "missing"
	if err := run(cfg); err == nil {
		t.Error("run() with an unknown backend should fail")
	}
}
