// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/puppet/driver"
	"github.com/gviegas/puppet/engine/internal/shader"
)

func TestCircle(t *testing.T) {
	pts := Circle()
	require.Len(t, pts, GizmoPoints*2)
	assert.Equal(t, []float32{1, 0}, pts[:2])
	step := 2 * math32.Pi / GizmoPoints
	for i := 0; i < GizmoPoints; i++ {
		x, y := pts[2*i], pts[2*i+1]
		assert.InDelta(t, 1, math32.Sqrt(x*x+y*y), 1e-6, "point %d", i)
		// Consecutive points, including last to first,
		// are one step apart.
		j := (i + 1) % GizmoPoints
		nx, ny := pts[2*j], pts[2*j+1]
		d := math32.Sqrt((nx-x)*(nx-x) + (ny-y)*(ny-y))
		assert.InDelta(t, 2*math32.Sin(step/2), d, 1e-5, "segment %d", i)
	}
}

func TestGizmoScale(t *testing.T) {
	for _, x := range [...]struct {
		aspect float32
		x, y   float32
	}{
		{2, 0.25, 0.5},
		{4.0 / 3, 0.375, 0.5},
		{1, 0.5, 0.5},
		{0.5, 0.5, 0.25},
	} {
		sx, sy := GizmoScale(x.aspect)
		assert.InDelta(t, x.x, sx, 1e-6, "aspect %v", x.aspect)
		assert.InDelta(t, x.y, sy, 1e-6, "aspect %v", x.aspect)
	}
}

func TestGizmoDraw(t *testing.T) {
	r, gpu := newTestRenderer(t, 1600, 800)

	require.NoError(t, r.Render(nil, FrameState{ShowGizmo: true}))
	require.Len(t, gpu.Draws, 1)
	d := gpu.Draws[0]
	assert.Equal(t, driver.TLnLoop, d.Topology)
	assert.Equal(t, 0, d.First)
	assert.Equal(t, GizmoPoints, d.Count)
	assert.Same(t, gpu.Programs[1], d.Program)
	want := mgl32.Scale3D(0.25, 0.5, 1)
	assert.Equal(t, want[:], d.Uniforms[shader.ArcTransform])

	r.Resize(400, 800)
	gpu.Draws = nil
	require.NoError(t, r.Render(nil, FrameState{ShowGizmo: true}))
	want = mgl32.Scale3D(0.5, 0.25, 1)
	assert.Equal(t, want[:], gpu.Draws[0].Uniforms[shader.ArcTransform])
	assert.Nil(t, gpu.Bound)
}
