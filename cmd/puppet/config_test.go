// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/puppet/engine"
	"github.com/gviegas/puppet/linear"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.DefaultConfig(), cfg.Engine())
	assert.Equal(t, engine.FrameState{ShowGizmo: true}, cfg.FrameState())
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestDecodeConfig(t *testing.T) {
	const doc = `
log_level = "debug"
scene = "puppet.yaml"

[window]
width = 640
title = "test"

[assets]
dir = "meshes"
meshes = ["cube.obj", "/abs/sphere.obj"]

[render]
fov = 45
ambient = [0.1, 0.1, 0.1]
show_overlay = true
show_gizmo = false

[light]
position = [1, 2, 3]
`
	cfg, err := DecodeConfig(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "puppet.yaml", cfg.Scene)
	assert.Equal(t, WindowConfig{Width: 640, Height: 768, Title: "test"}, cfg.Window)

	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	ecfg := cfg.Engine()
	assert.Equal(t, float32(45), ecfg.FOV)
	assert.Equal(t, linear.V3{0.1, 0.1, 0.1}, ecfg.Ambient)
	assert.Equal(t, linear.V3{1, 2, 3}, ecfg.Light.Position)
	// Not in the document.
	assert.Equal(t, engine.DefaultConfig().Light.Intensity, ecfg.Light.Intensity)
	assert.Equal(t, engine.DefaultConfig().Highlight, ecfg.Highlight)
	assert.Equal(t, engine.FrameState{ShowOverlay: true}, cfg.FrameState())

	paths, err := cfg.MeshPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("meshes", "cube.obj"), "/abs/sphere.obj"}, paths)
}

func TestDecodeConfigError(t *testing.T) {
	for _, doc := range [...]string{
		`log_level = "loud"`,
		`unknown = 1`,
		"[window]\nwidth = -1",
		"[render]\nfov = 180",
		`scene = `,
	} {
		_, err := DecodeConfig(strings.NewReader(doc))
		assert.Error(t, err, "%q", doc)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "puppet.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nheight = 300\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Window.Height)
}

func TestMeshPathsGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range [...]string{"b.obj", "a.obj", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	cfg := DefaultConfig()
	cfg.Assets.Dir = dir
	paths, err := cfg.MeshPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.obj"), filepath.Join(dir, "b.obj")}, paths)
}

func TestCommand(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var got *Config
	cmd := newCommand(func(c *Config) error {
		got = c
		return nil
	})
	cmd.SetErr(io.Discard)
	none := filepath.Join(t.TempDir(), "none.toml")
	cmd.SetArgs([]string{"--config", none, "--width", "320", "--overlay", "-m", "x.obj", "-m", "y.obj", "scene.yaml"})
	require.NoError(t, cmd.Execute())
	require.NotNil(t, got)
	assert.Equal(t, "scene.yaml", got.Scene)
	assert.Equal(t, 320, got.Window.Width)
	assert.Equal(t, 768, got.Window.Height)
	assert.Equal(t, []string{"x.obj", "y.obj"}, got.Assets.Meshes)
	assert.Equal(t, engine.FrameState{ShowGizmo: true, ShowOverlay: true}, got.FrameState())

	got = nil
	cmd = newCommand(func(c *Config) error {
		got = c
		return nil
	})
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", none})
	assert.Error(t, cmd.Execute())
	assert.Nil(t, got)

	cmd = newCommand(func(*Config) error { return nil })
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", none, "--log-level", "verbose", "scene.yaml"})
	assert.Error(t, cmd.Execute())
}
