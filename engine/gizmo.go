// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/puppet/driver"
	"github.com/gviegas/puppet/engine/internal/shader"
	"github.com/gviegas/puppet/linear"
)

// GizmoPoints is the number of points of the trackball
// circle.
const GizmoPoints = 48

// Circle returns the points of a unit circle sampled at
// GizmoPoints uniform angles, as consecutive (x, y)
// pairs. The first point is (1, 0).
func Circle() []float32 {
	pts := make([]float32, 0, GizmoPoints*2)
	for i := range GizmoPoints {
		a := 2 * math32.Pi * float32(i) / GizmoPoints
		pts = append(pts, math32.Cos(a), math32.Sin(a))
	}
	return pts
}

// GizmoScale returns the scale that keeps the trackball
// circle round in a viewport with the given aspect ratio.
func GizmoScale(aspect float32) (x, y float32) {
	if aspect > 1 {
		return 0.5 / aspect, 0.5
	}
	return 0.5, 0.5 * aspect
}

// gizmo draws the trackball circle as a line loop.
type gizmo struct {
	arc *shader.Arc
	buf driver.Buffer
	va  driver.VertexArray
}

func (g *gizmo) init(gpu driver.GPU) (err error) {
	if g.arc, err = shader.NewArc(gpu); err != nil {
		return
	}
	if g.buf, err = gpu.NewBuffer(Circle()); err != nil {
		return
	}
	if g.va, err = gpu.NewVertexArray(); err != nil {
		return
	}
	return g.va.SetAttrib(g.arc.Attrib(), g.buf, 2)
}

func (g *gizmo) draw(gpu driver.GPU, aspect float32) {
	var m linear.M4
	x, y := GizmoScale(aspect)
	m.Scale(x, y, 1)
	gpu.BindVertexArray(g.va)
	g.arc.Use()
	g.arc.SetTransform(m.Floats())
	gpu.Draw(driver.TLnLoop, 0, GizmoPoints)
	gpu.BindVertexArray(nil)
}

func (g *gizmo) free() {
	if g.va != nil {
		g.va.Destroy()
	}
	if g.buf != nil {
		g.buf.Destroy()
	}
	if g.arc != nil {
		g.arc.Destroy()
	}
	*g = gizmo{}
}
