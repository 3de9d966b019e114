// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package drivertest implements a driver that records
// the commands it receives instead of executing them.
// It is meant for testing code that uses the driver
// package without a graphics context.
package drivertest

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gviegas/puppet/driver"
)

// Driver implements driver.Driver.
// It is not registered with the driver package.
type Driver struct {
	gpu *GPU
}

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu == nil {
		d.gpu = &GPU{drv: d}
	}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return "drivertest" }

// Close implements driver.Driver.
func (d *Driver) Close() { d.gpu = nil }

// New returns a new GPU whose Driver is a fresh Driver.
func New() *GPU {
	var d Driver
	gpu, _ := d.Open()
	return gpu.(*GPU)
}

// Draw is a recorded draw command.
type Draw struct {
	Topology driver.Topology
	First    int
	Count    int
	Program  *Program
	VA       *VertexArray
	// Uniforms is a snapshot of the values of the
	// program's uniforms when the draw was issued.
	Uniforms map[string][]float32
}

// GPU implements driver.GPU.
// Its exported fields are updated as commands are
// recorded.
type GPU struct {
	drv *Driver

	Programs []*Program
	Buffers  []*Buffer
	VAs      []*VertexArray
	Draws    []Draw

	Viewport   driver.Viewport
	ClearColor [4]float32
	DepthTest  bool
	CullMode   driver.CullMode
	Clears     int
	Checks     int

	// Bound is the bound vertex array.
	Bound *VertexArray
	// Current is the program in use.
	Current *Program

	// Err, if not nil, is wrapped and returned by the
	// next call to Check.
	Err error
	// FailProgram causes NewProgram to fail.
	FailProgram bool
	// Missing names uniforms and attributes that new
	// programs will report as inactive.
	Missing []string
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// NewProgram implements driver.GPU.
func (g *GPU) NewProgram(vertex, fragment string) (driver.Program, error) {
	if g.FailProgram {
		return nil, errors.New("drivertest: NewProgram failure")
	}
	p := &Program{
		gpu:      g,
		Vertex:   vertex,
		Fragment: fragment,
		Values:   make(map[string][]float32),
		Uploads:  make(map[string]int),
		missing:  slices.Clone(g.Missing),
	}
	g.Programs = append(g.Programs, p)
	return p, nil
}

// NewBuffer implements driver.GPU.
func (g *GPU) NewBuffer(data []float32) (driver.Buffer, error) {
	b := &Buffer{Data: slices.Clone(data)}
	g.Buffers = append(g.Buffers, b)
	return b, nil
}

// NewVertexArray implements driver.GPU.
func (g *GPU) NewVertexArray() (driver.VertexArray, error) {
	v := &VertexArray{Attribs: make(map[int]Attrib)}
	g.VAs = append(g.VAs, v)
	return v, nil
}

// SetViewport implements driver.GPU.
func (g *GPU) SetViewport(vp driver.Viewport) { g.Viewport = vp }

// SetClearColor implements driver.GPU.
func (g *GPU) SetClearColor(r, gr, b, a float32) { g.ClearColor = [4]float32{r, gr, b, a} }

// SetDepthTest implements driver.GPU.
func (g *GPU) SetDepthTest(enabled bool) { g.DepthTest = enabled }

// SetCullMode implements driver.GPU.
func (g *GPU) SetCullMode(mode driver.CullMode) { g.CullMode = mode }

// Clear implements driver.GPU.
func (g *GPU) Clear() { g.Clears++ }

// BindVertexArray implements driver.GPU.
func (g *GPU) BindVertexArray(va driver.VertexArray) {
	if va == nil {
		g.Bound = nil
		return
	}
	g.Bound = va.(*VertexArray)
}

// Draw implements driver.GPU.
// It panics if no program is in use or no vertex array
// is bound.
func (g *GPU) Draw(topology driver.Topology, first, count int) {
	if g.Current == nil || g.Bound == nil {
		panic("drivertest: Draw called without program or vertex array")
	}
	vals := make(map[string][]float32, len(g.Current.Values))
	for k, v := range g.Current.Values {
		vals[k] = slices.Clone(v)
	}
	g.Draws = append(g.Draws, Draw{
		Topology: topology,
		First:    first,
		Count:    count,
		Program:  g.Current,
		VA:       g.Bound,
		Uniforms: vals,
	})
}

// Check implements driver.GPU.
func (g *GPU) Check() error {
	g.Checks++
	if err := g.Err; err != nil {
		g.Err = nil
		return fmt.Errorf("%w: %w", driver.ErrFatal, err)
	}
	return nil
}

// Program implements driver.Program.
type Program struct {
	gpu      *GPU
	Vertex   string
	Fragment string
	// Values holds the last value set for each uniform.
	Values map[string][]float32
	// Uploads counts how many times each uniform was set.
	Uploads   map[string]int
	Destroyed bool

	names   []string
	attribs []string
	missing []string
}

// Use implements driver.Program.
func (p *Program) Use() { p.gpu.Current = p }

// Uniform implements driver.Program.
func (p *Program) Uniform(name string) (driver.Uniform, error) {
	if slices.Contains(p.missing, name) {
		return 0, errors.New("drivertest: no active uniform named " + name)
	}
	if i := slices.Index(p.names, name); i >= 0 {
		return driver.Uniform(i), nil
	}
	p.names = append(p.names, name)
	return driver.Uniform(len(p.names) - 1), nil
}

// Attrib implements driver.Program.
func (p *Program) Attrib(name string) (int, error) {
	if slices.Contains(p.missing, name) {
		return 0, errors.New("drivertest: no active attribute named " + name)
	}
	if i := slices.Index(p.attribs, name); i >= 0 {
		return i, nil
	}
	p.attribs = append(p.attribs, name)
	return len(p.attribs) - 1, nil
}

// Names returns the names of the uniforms that were
// looked up, sorted.
func (p *Program) Names() []string { return slices.Sorted(maps.Keys(p.Values)) }

func (p *Program) set(u driver.Uniform, n int, v []float32) {
	if p.gpu.Current != p {
		panic("drivertest: uniform set on a program not in use")
	}
	if len(v) != n {
		panic(fmt.Sprintf("drivertest: uniform expects %d values, got %d", n, len(v)))
	}
	name := p.names[u]
	p.Values[name] = slices.Clone(v)
	p.Uploads[name]++
}

// SetM4 implements driver.Program.
func (p *Program) SetM4(u driver.Uniform, m []float32) { p.set(u, 16, m) }

// SetM3 implements driver.Program.
func (p *Program) SetM3(u driver.Uniform, m []float32) { p.set(u, 9, m) }

// SetV3 implements driver.Program.
func (p *Program) SetV3(u driver.Uniform, v []float32) { p.set(u, 3, v) }

// SetF implements driver.Program.
func (p *Program) SetF(u driver.Uniform, f float32) { p.set(u, 1, []float32{f}) }

// Destroy implements driver.Destroyer.
func (p *Program) Destroy() { p.Destroyed = true }

// Buffer implements driver.Buffer.
type Buffer struct {
	Data      []float32
	Destroyed bool
}

// Len implements driver.Buffer.
func (b *Buffer) Len() int { return len(b.Data) }

// Destroy implements driver.Destroyer.
func (b *Buffer) Destroy() { b.Destroyed = true }

// Attrib describes a vertex attribute binding.
type Attrib struct {
	Buffer *Buffer
	Comps  int
}

// VertexArray implements driver.VertexArray.
type VertexArray struct {
	Attribs   map[int]Attrib
	Destroyed bool
}

// SetAttrib implements driver.VertexArray.
func (v *VertexArray) SetAttrib(nr int, buf driver.Buffer, comps int) error {
	if comps < 1 || comps > 4 {
		return errors.New("drivertest: invalid component count")
	}
	v.Attribs[nr] = Attrib{buf.(*Buffer), comps}
	return nil
}

// Destroy implements driver.Destroyer.
func (v *VertexArray) Destroy() { v.Destroyed = true }
