// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package shader provides the shader programs used by
// the engine and the layout of their uniform data.
package shader

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gviegas/puppet/driver"
)

var (
	//go:embed glsl/scene.vert
	sceneVert string
	//go:embed glsl/scene.frag
	sceneFrag string
	//go:embed glsl/arc.vert
	arcVert string
	//go:embed glsl/arc.frag
	arcFrag string
)

// Vertex attribute names.
const (
	PositionAttr = "position"
	NormalAttr   = "normal"
)

// Uniform names of the scene program.
const (
	Perspective       = "Perspective"
	ModelView         = "ModelView"
	NormalMatrix      = "NormalMatrix"
	MaterialKd        = "material.kd"
	MaterialKs        = "material.ks"
	MaterialShininess = "material.shininess"
	LightPosition     = "light.position"
	LightIntensity    = "light.rgbIntensity"
	AmbientIntensity  = "ambientIntensity"
)

// Uniform names of the arc program.
const (
	ArcTransform = "M"
)

func newErr(reason string) error { return errors.New("shader: " + reason) }

// Uniform indices of the scene program.
const (
	uPerspective = iota
	uModelView
	uNormalMatrix
	uKd
	uKs
	uShininess
	uLightPosition
	uLightIntensity
	uAmbient

	maxSceneUniform
)

var sceneUniforms = [maxSceneUniform]string{
	uPerspective:    Perspective,
	uModelView:      ModelView,
	uNormalMatrix:   NormalMatrix,
	uKd:             MaterialKd,
	uKs:             MaterialKs,
	uShininess:      MaterialShininess,
	uLightPosition:  LightPosition,
	uLightIntensity: LightIntensity,
	uAmbient:        AmbientIntensity,
}

// Scene is the lighting program used to draw geometry.
type Scene struct {
	prog driver.Program
	u    [maxSceneUniform]driver.Uniform
	pos  int
	norm int
}

// NewScene compiles the scene program and resolves
// its uniform and attribute locations.
func NewScene(gpu driver.GPU) (*Scene, error) {
	prog, err := gpu.NewProgram(sceneVert, sceneFrag)
	if err != nil {
		return nil, err
	}
	s := &Scene{prog: prog}
	for i, name := range sceneUniforms {
		if s.u[i], err = prog.Uniform(name); err != nil {
			prog.Destroy()
			return nil, fmt.Errorf("shader: scene program: %w", err)
		}
	}
	if s.pos, err = prog.Attrib(PositionAttr); err == nil {
		s.norm, err = prog.Attrib(NormalAttr)
	}
	if err != nil {
		prog.Destroy()
		return nil, fmt.Errorf("shader: scene program: %w", err)
	}
	return s, nil
}

// Attribs returns the locations of the position and
// normal attributes.
func (s *Scene) Attribs() (pos, norm int) { return s.pos, s.norm }

// Use makes s the current program.
func (s *Scene) Use() { s.prog.Use() }

// SetFrame uploads per-frame data.
// s must be the current program.
func (s *Scene) SetFrame(l *FrameLayout) {
	s.prog.SetM4(s.u[uPerspective], l[frameP:frameP+16])
	s.prog.SetV3(s.u[uLightPosition], l[frameLightPos:frameLightPos+3])
	s.prog.SetV3(s.u[uLightIntensity], l[frameLightInt:frameLightInt+3])
	s.prog.SetV3(s.u[uAmbient], l[frameAmbient:frameAmbient+3])
}

// SetDraw uploads per-draw data.
// s must be the current program.
func (s *Scene) SetDraw(l *DrawLayout) {
	s.prog.SetM4(s.u[uModelView], l[drawMV:drawMV+16])
	s.prog.SetM3(s.u[uNormalMatrix], l[drawNormal:drawNormal+9])
	s.prog.SetV3(s.u[uKd], l[drawKd:drawKd+3])
	s.prog.SetV3(s.u[uKs], l[drawKs:drawKs+3])
	s.prog.SetF(s.u[uShininess], l[drawShininess])
}

// Destroy destroys the program.
func (s *Scene) Destroy() {
	if s.prog != nil {
		s.prog.Destroy()
		s.prog = nil
	}
}

// Arc is the flat program used to draw the trackball
// circle.
type Arc struct {
	prog driver.Program
	m    driver.Uniform
	pos  int
}

// NewArc compiles the arc program.
func NewArc(gpu driver.GPU) (*Arc, error) {
	prog, err := gpu.NewProgram(arcVert, arcFrag)
	if err != nil {
		return nil, err
	}
	a := &Arc{prog: prog}
	if a.m, err = prog.Uniform(ArcTransform); err == nil {
		a.pos, err = prog.Attrib(PositionAttr)
	}
	if err != nil {
		prog.Destroy()
		return nil, fmt.Errorf("shader: arc program: %w", err)
	}
	return a, nil
}

// Attrib returns the location of the position attribute.
func (a *Arc) Attrib() int { return a.pos }

// Use makes a the current program.
func (a *Arc) Use() { a.prog.Use() }

// SetTransform uploads the circle transform.
// a must be the current program.
func (a *Arc) SetTransform(m []float32) {
	if len(m) != 16 {
		panic(newErr("transform must have 16 elements"))
	}
	a.prog.SetM4(a.m, m)
}

// Destroy destroys the program.
func (a *Arc) Destroy() {
	if a.prog != nil {
		a.prog.Destroy()
		a.prog = nil
	}
}
