package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the demo configuration, read from TOML.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Frames int    `toml:"frames"`

	// Backend names the device backend.
	Backend string `toml:"backend"`

	// Grid is the number of cubes per side.
	Grid int `toml:"grid"`

	// TranslucentEvery makes every n-th cube translucent, 0 for none.
	TranslucentEvery int `toml:"translucent_every"`

	Culling bool    `toml:"culling"`
	FOV     float32 `toml:"fov"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		Width:            800,
		Height:           600,
		Frames:           3,
		Backend:          "recording",
		Grid:             8,
		TranslucentEvery: 5,
		Culling:          true,
		FOV:              60,
	}
}

// LoadConfig reads path over the defaults. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return cfg, fmt.Errorf("parse config: %s", sme.String())
		}
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the value ranges.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case c.Grid <= 0:
		return fmt.Errorf("config: grid must be positive, got %d", c.Grid)
	case c.Frames < 0:
		return fmt.Errorf("config: frames must not be negative, got %d", c.Frames)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("config: fov must be in (0, 180), got %v", c.FOV)
	case c.TranslucentEvery < 0:
		return fmt.Errorf("config: translucent_every must not be negative, got %d", c.TranslucentEvery)
	}
	return nil
}
