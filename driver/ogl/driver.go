// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package ogl implements the driver interfaces using
// OpenGL 4.1 core profile.
//
// Importing this package registers a driver named
// "opengl". It must be opened with a current context.
package ogl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/puppet/driver"
)

const driverName = "opengl"

func newErr(reason string) error { return errors.New("ogl: " + reason) }

// Driver implements driver.Driver.
type Driver struct {
	gpu *GPU
}

func init() {
	driver.Register(&Driver{})
}

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu != nil {
		return d.gpu, nil
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", driver.ErrNotInstalled, err)
	}
	d.gpu = &GPU{drv: d}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return driverName }

// Close implements driver.Driver.
func (d *Driver) Close() { d.gpu = nil }

// Version returns the version string of the current
// context. The driver must be open.
func (d *Driver) Version() string { return gl.GoStr(gl.GetString(gl.VERSION)) }

// GPU implements driver.GPU.
type GPU struct {
	drv *Driver
	va  *vertexArray
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// SetViewport implements driver.GPU.
func (g *GPU) SetViewport(vp driver.Viewport) {
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
}

// SetClearColor implements driver.GPU.
func (g *GPU) SetClearColor(r, gr, b, a float32) { gl.ClearColor(r, gr, b, a) }

// SetDepthTest implements driver.GPU.
func (g *GPU) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// SetCullMode implements driver.GPU.
func (g *GPU) SetCullMode(mode driver.CullMode) {
	switch mode {
	case driver.CNone:
		gl.Disable(gl.CULL_FACE)
	case driver.CFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case driver.CBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

// Clear implements driver.GPU.
func (g *GPU) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

// BindVertexArray implements driver.GPU.
func (g *GPU) BindVertexArray(va driver.VertexArray) {
	if va == nil {
		gl.BindVertexArray(0)
		g.va = nil
		return
	}
	v := va.(*vertexArray)
	if g.va != v {
		gl.BindVertexArray(v.id)
		g.va = v
	}
}

// Draw implements driver.GPU.
func (g *GPU) Draw(topology driver.Topology, first, count int) {
	gl.DrawArrays(convTopology(topology), int32(first), int32(count))
}

// Check implements driver.GPU.
func (g *GPU) Check() error {
	var codes []string
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, errorString(code))
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", driver.ErrFatal, strings.Join(codes, ", "))
}

func errorString(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error 0x%x", code)
	}
}

func convTopology(t driver.Topology) uint32 {
	switch t {
	case driver.TPoint:
		return gl.POINTS
	case driver.TLine:
		return gl.LINES
	case driver.TLnStrip:
		return gl.LINE_STRIP
	case driver.TLnLoop:
		return gl.LINE_LOOP
	case driver.TTriangle:
		return gl.TRIANGLES
	case driver.TTriStrip:
		return gl.TRIANGLE_STRIP
	default:
		panic("invalid driver.Topology value")
	}
}
