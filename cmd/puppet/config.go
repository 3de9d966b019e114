// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gviegas/puppet/engine"
	"github.com/gviegas/puppet/linear"
)

// Config is the application configuration.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Scene    string       `toml:"scene"`
	Window   WindowConfig `toml:"window"`
	Assets   AssetsConfig `toml:"assets"`
	Render   RenderConfig `toml:"render"`
	Light    LightConfig  `toml:"light"`
}

// WindowConfig configures the window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// AssetsConfig locates mesh files.
// If Meshes is empty, every .obj file in Dir is used.
type AssetsConfig struct {
	Dir    string   `toml:"dir"`
	Meshes []string `toml:"meshes"`
}

// RenderConfig configures the renderer.
type RenderConfig struct {
	FOV         float32    `toml:"fov"`
	ClearColor  [4]float32 `toml:"clear_color"`
	Ambient     [3]float32 `toml:"ambient"`
	Highlight   [3]float32 `toml:"highlight"`
	ShowGizmo   bool       `toml:"show_gizmo"`
	ShowOverlay bool       `toml:"show_overlay"`
}

// LightConfig configures the point light.
type LightConfig struct {
	Position  [3]float32 `toml:"position"`
	Intensity [3]float32 `toml:"intensity"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	ecfg := engine.DefaultConfig()
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "puppet",
		},
		Assets: AssetsConfig{Dir: "assets"},
		Render: RenderConfig{
			FOV:        ecfg.FOV,
			ClearColor: ecfg.ClearColor,
			Ambient:    ecfg.Ambient,
			Highlight:  ecfg.Highlight,
			ShowGizmo:  true,
		},
		Light: LightConfig{
			Position:  ecfg.Light.Position,
			Intensity: ecfg.Light.Intensity,
		},
	}
}

// DecodeConfig decodes a TOML configuration from r.
// Values missing from r keep their defaults; unknown
// keys are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return cfg, fmt.Errorf("config: %s", serr.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("config: %d:%d: %w", row, col, err)
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfig loads the configuration file at path.
// A missing file yields the default configuration.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("config file not found, using defaults", "path", path)
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()
	return DecodeConfig(file)
}

// Validate checks that c is usable.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		return fmt.Errorf("config: invalid fov %v", c.Render.FOV)
	}
	return nil
}

// Level returns the slog level named by c.LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

// Engine returns the engine configuration that c
// describes.
func (c *Config) Engine() engine.Config {
	ecfg := engine.DefaultConfig()
	ecfg.FOV = c.Render.FOV
	ecfg.ClearColor = c.Render.ClearColor
	ecfg.Ambient = linear.V3(c.Render.Ambient)
	ecfg.Highlight = linear.V3(c.Render.Highlight)
	ecfg.Light = engine.Light{
		Position:  linear.V3(c.Light.Position),
		Intensity: linear.V3(c.Light.Intensity),
	}
	return ecfg
}

// FrameState returns the initial frame state.
func (c *Config) FrameState() engine.FrameState {
	return engine.FrameState{
		ShowGizmo:   c.Render.ShowGizmo,
		ShowOverlay: c.Render.ShowOverlay,
	}
}

// MeshPaths returns the paths of the mesh files.
func (c *Config) MeshPaths() ([]string, error) {
	if len(c.Assets.Meshes) == 0 {
		paths, err := filepath.Glob(filepath.Join(c.Assets.Dir, "*.obj"))
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
		return paths, nil
	}
	paths := make([]string, len(c.Assets.Meshes))
	for i, m := range c.Assets.Meshes {
		if filepath.IsAbs(m) || strings.ContainsRune(m, filepath.Separator) {
			paths[i] = m
		} else {
			paths[i] = filepath.Join(c.Assets.Dir, m)
		}
	}
	return paths, nil
}
