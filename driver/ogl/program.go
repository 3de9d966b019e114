// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package ogl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/puppet/driver"
)

// program implements driver.Program.
type program struct {
	id       uint32
	uniforms map[string]driver.Uniform
}

// NewProgram implements driver.GPU.
func (g *GPU) NewProgram(vertex, fragment string) (driver.Program, error) {
	vs, err := compile(gl.VERTEX_SHADER, vertex)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compile(gl.FRAGMENT_SHADER, fragment)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, newErr("link failed: " + strings.TrimRight(log, "\x00"))
	}
	return &program{id: id, uniforms: make(map[string]driver.Uniform)}, nil
}

func compile(typ uint32, src string) (uint32, error) {
	id := gl.CreateShader(typ)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, csrc, nil)
	free()
	gl.CompileShader(id)
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, newErr("compile failed: " + strings.TrimRight(log, "\x00"))
	}
	return id, nil
}

// Use implements driver.Program.
func (p *program) Use() { gl.UseProgram(p.id) }

// Uniform implements driver.Program.
func (p *program) Uniform(name string) (driver.Uniform, error) {
	if u, ok := p.uniforms[name]; ok {
		return u, nil
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, newErr("no active uniform named " + name)
	}
	u := driver.Uniform(loc)
	p.uniforms[name] = u
	return u, nil
}

// Attrib implements driver.Program.
func (p *program) Attrib(name string) (int, error) {
	loc := gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, newErr("no active attribute named " + name)
	}
	return int(loc), nil
}

// SetM4 implements driver.Program.
func (p *program) SetM4(u driver.Uniform, m []float32) {
	gl.UniformMatrix4fv(int32(u), 1, false, &m[0])
}

// SetM3 implements driver.Program.
func (p *program) SetM3(u driver.Uniform, m []float32) {
	gl.UniformMatrix3fv(int32(u), 1, false, &m[0])
}

// SetV3 implements driver.Program.
func (p *program) SetV3(u driver.Uniform, v []float32) { gl.Uniform3fv(int32(u), 1, &v[0]) }

// SetF implements driver.Program.
func (p *program) SetF(u driver.Uniform, f float32) { gl.Uniform1f(int32(u), f) }

// Destroy implements driver.Destroyer.
func (p *program) Destroy() {
	gl.DeleteProgram(p.id)
	p.id = 0
}
