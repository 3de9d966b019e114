// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements real-time rendering of
// node graphs.
package engine

import (
	"github.com/gviegas/puppet/engine/mesh"
	"github.com/gviegas/puppet/linear"
)

// ErrUnknownMesh means that a geometry node refers to a
// mesh that the renderer's registry does not contain.
// Errors wrapping it are fatal.
var ErrUnknownMesh = mesh.ErrUnknownMesh

const (
	dflFOV       = 60
	dflZnear     = 0.1
	dflZfar      = 100
	dflAmbient   = 0.05
	dflClear     = 0.35
	dflIntensity = 0.8
)

// Config is used to configure the engine.
type Config struct {
	// The vertical field of view in degrees.
	//
	// Default is 60.
	FOV float32

	// The near and far clipping planes.
	//
	// Default is 0.1 and 100.
	Znear, Zfar float32

	// The ambient light intensity.
	//
	// Default is 0.05 for all channels.
	Ambient linear.V3

	// The diffuse color that replaces the material's
	// when a geometry node is selected.
	//
	// Default is (0.9, 0.2, 0.2).
	Highlight linear.V3

	// The color used to clear the framebuffer.
	//
	// Default is 0.35 gray, opaque.
	ClearColor [4]float32

	// The initial light.
	//
	// Default is a light at (-2, 5, 0.5) with
	// intensity 0.8.
	Light Light
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FOV:        dflFOV,
		Znear:      dflZnear,
		Zfar:       dflZfar,
		Ambient:    linear.V3{dflAmbient, dflAmbient, dflAmbient},
		Highlight:  linear.V3{0.9, 0.2, 0.2},
		ClearColor: [4]float32{dflClear, dflClear, dflClear, 1},
		Light: Light{
			Position:  linear.V3{-2, 5, 0.5},
			Intensity: linear.V3{dflIntensity, dflIntensity, dflIntensity},
		},
	}
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
// Invalid projection parameters are replaced by
// their defaults. It only affects renderers created
// after the call.
func Configure(config *Config) {
	c := *config
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = dflFOV
	}
	if c.Znear <= 0 || c.Zfar <= c.Znear {
		c.Znear, c.Zfar = dflZnear, dflZfar
	}
	cfg = c
}

func init() {
	config := DefaultConfig()
	Configure(&config)
}

// Light is a point light.
type Light struct {
	// Position in world space.
	Position linear.V3
	// RGB intensity.
	Intensity linear.V3
}

// FrameState is the per-frame presentation state.
// It is owned by the render loop.
type FrameState struct {
	// Whether to draw the trackball circle.
	ShowGizmo bool
	// Whether the debug overlay is visible.
	// The renderer does not draw it; the loop
	// presents it elsewhere.
	ShowOverlay bool
}
