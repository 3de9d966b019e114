// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"github.com/gviegas/puppet/linear"
)

const (
	frameP        = 0
	frameLightPos = 16
	frameLightInt = 19
	frameAmbient  = 22
)

// FrameLayout is the layout of per-frame, global data.
// It is defined as follows:
//
//	[0:16]  | projection matrix
//	[16:19] | light position (view space)
//	[19:22] | light RGB intensity
//	[22:25] | ambient intensity
type FrameLayout [25]float32

// SetP sets the projection matrix.
func (l *FrameLayout) SetP(m *linear.M4) { copy(l[frameP:frameP+16], m.Floats()) }

// SetLight sets the light's position and intensity.
func (l *FrameLayout) SetLight(pos, rgb *linear.V3) {
	copy(l[frameLightPos:frameLightPos+3], pos[:])
	copy(l[frameLightInt:frameLightInt+3], rgb[:])
}

// SetAmbient sets the ambient intensity.
func (l *FrameLayout) SetAmbient(rgb *linear.V3) { copy(l[frameAmbient:frameAmbient+3], rgb[:]) }

const (
	drawMV        = 0
	drawNormal    = 16
	drawKd        = 25
	drawKs        = 28
	drawShininess = 31
)

// DrawLayout is the layout of per-draw data.
// It is defined as follows:
//
//	[0:16]  | model-view matrix
//	[16:25] | normal matrix
//	[25:28] | diffuse reflectance
//	[28:31] | specular reflectance
//	[31]    | shininess
type DrawLayout [32]float32

// SetMV sets the model-view matrix.
func (l *DrawLayout) SetMV(m *linear.M4) { copy(l[drawMV:drawMV+16], m.Floats()) }

// SetNormal sets the normal matrix.
func (l *DrawLayout) SetNormal(m *linear.M3) { copy(l[drawNormal:drawNormal+9], m.Floats()) }

// SetMaterial sets the material properties.
func (l *DrawLayout) SetMaterial(kd, ks *linear.V3, shininess float32) {
	copy(l[drawKd:drawKd+3], kd[:])
	copy(l[drawKs:drawKs+3], ks[:])
	l[drawShininess] = shininess
}
