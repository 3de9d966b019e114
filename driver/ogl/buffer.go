// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package ogl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/puppet/driver"
)

// buffer implements driver.Buffer.
type buffer struct {
	id  uint32
	len int
}

// NewBuffer implements driver.GPU.
func (g *GPU) NewBuffer(data []float32) (driver.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, ptr, gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := g.Check(); err != nil {
		gl.DeleteBuffers(1, &id)
		return nil, err
	}
	return &buffer{id: id, len: len(data)}, nil
}

// Len implements driver.Buffer.
func (b *buffer) Len() int { return b.len }

// Destroy implements driver.Destroyer.
func (b *buffer) Destroy() {
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
}

// vertexArray implements driver.VertexArray.
type vertexArray struct {
	gpu *GPU
	id  uint32
}

// NewVertexArray implements driver.GPU.
func (g *GPU) NewVertexArray() (driver.VertexArray, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if err := g.Check(); err != nil {
		return nil, err
	}
	return &vertexArray{gpu: g, id: id}, nil
}

// SetAttrib implements driver.VertexArray.
// It leaves no vertex array bound.
func (v *vertexArray) SetAttrib(nr int, buf driver.Buffer, comps int) error {
	b := buf.(*buffer)
	gl.BindVertexArray(v.id)
	gl.EnableVertexAttribArray(uint32(nr))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.VertexAttribPointer(uint32(nr), int32(comps), gl.FLOAT, false, 0, nil)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	v.gpu.va = nil
	return v.gpu.Check()
}

// Destroy implements driver.Destroyer.
func (v *vertexArray) Destroy() {
	if v.gpu.va == v {
		v.gpu.BindVertexArray(nil)
	}
	gl.DeleteVertexArrays(1, &v.id)
	v.id = 0
}
