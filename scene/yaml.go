// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gviegas/puppet/linear"
	"github.com/gviegas/puppet/node"
)

// Puppet is the YAML description of a node and its
// descendants.
//
//	name: torso
//	kind: mesh            # node (default), joint or mesh
//	mesh: cube            # mesh kind only
//	material:             # mesh kind only
//	  kd: [0.8, 0.2, 0.2]
//	  ks: [0.3, 0.3, 0.3]
//	  shininess: 20
//	joint:                # joint kind only
//	  x: [-45, 0, 45]     # min, init, max
//	  y: [-10, 0, 10]
//	transform:            # applied in order
//	  - scale: [1, 2, 1]
//	  - rotate: {axis: y, angle: 30}
//	  - translate: [0, 1, 0]
//	children: [...]
type Puppet struct {
	Name      string       `yaml:"name"`
	Kind      string       `yaml:"kind"`
	Mesh      string       `yaml:"mesh"`
	Material  *PuppetMat   `yaml:"material"`
	Joint     *PuppetJoint `yaml:"joint"`
	Transform []PuppetOp   `yaml:"transform"`
	Children  []Puppet     `yaml:"children"`
}

// PuppetMat is the YAML description of a material.
type PuppetMat struct {
	Kd        [3]float32 `yaml:"kd"`
	Ks        [3]float32 `yaml:"ks"`
	Shininess float32    `yaml:"shininess"`
}

// PuppetJoint is the YAML description of joint ranges.
// Each range is [min, init, max] in degrees.
type PuppetJoint struct {
	X *[3]float32 `yaml:"x"`
	Y *[3]float32 `yaml:"y"`
}

// PuppetOp is a single transform operation.
// Exactly one field must be set.
type PuppetOp struct {
	Translate *[3]float32 `yaml:"translate"`
	Scale     *[3]float32 `yaml:"scale"`
	Rotate    *struct {
		Axis  string  `yaml:"axis"`
		Angle float32 `yaml:"angle"`
	} `yaml:"rotate"`
}

func decodeYAML(r io.Reader) (*node.Node, error) {
	var p Puppet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, newErr("empty YAML document")
		}
		return nil, fmt.Errorf("scene: %w", err)
	}
	var b builder
	return b.puppet(&p)
}

func (b *builder) puppet(p *Puppet) (*node.Node, error) {
	var kind node.Kind
	switch p.Kind {
	case "", "node":
		kind = node.Group{}
	case "joint":
		j := node.NewJoint(jointRange(p.Joint, node.X), jointRange(p.Joint, node.Y))
		kind = j
	case "mesh":
		if p.Mesh == "" {
			return nil, newErr("mesh node " + p.Name + " has no mesh")
		}
		g := &node.Geometry{MeshID: p.Mesh}
		if m := p.Material; m != nil {
			g.Material = node.Material{
				Kd:        linear.V3(m.Kd),
				Ks:        linear.V3(m.Ks),
				Shininess: m.Shininess,
			}
		}
		kind = g
	default:
		return nil, newErr("invalid kind " + p.Kind + " for node " + p.Name)
	}
	if p.Joint != nil && p.Kind != "joint" {
		return nil, newErr("joint ranges on non-joint node " + p.Name)
	}
	if (p.Mesh != "" || p.Material != nil) && p.Kind != "mesh" {
		return nil, newErr("mesh properties on non-mesh node " + p.Name)
	}

	n := b.node(p.Name, kind)
	for i := range p.Transform {
		if err := applyOp(n, &p.Transform[i]); err != nil {
			return nil, fmt.Errorf("%w (node %s)", err, p.Name)
		}
	}
	n.Pose()
	for i := range p.Children {
		sub, err := b.puppet(&p.Children[i])
		if err != nil {
			return nil, err
		}
		n.Insert(sub)
	}
	return n, nil
}

func jointRange(j *PuppetJoint, axis node.Axis) node.Range {
	if j == nil {
		return node.Range{}
	}
	var r *[3]float32
	if axis == node.X {
		r = j.X
	} else {
		r = j.Y
	}
	if r == nil {
		return node.Range{}
	}
	return node.Range{Min: r[0], Init: r[1], Max: r[2]}
}

func applyOp(n *node.Node, op *PuppetOp) error {
	cnt := 0
	if op.Translate != nil {
		cnt++
	}
	if op.Scale != nil {
		cnt++
	}
	if op.Rotate != nil {
		cnt++
	}
	if cnt != 1 {
		return newErr("transform operation must have exactly one of translate, scale or rotate")
	}
	switch {
	case op.Translate != nil:
		n.Translate(linear.V3(*op.Translate))
	case op.Scale != nil:
		s := *op.Scale
		if s[0] == 0 || s[1] == 0 || s[2] == 0 {
			return newErr("zero scale")
		}
		n.Scale(linear.V3(s))
	default:
		var axis node.Axis
		switch op.Rotate.Axis {
		case "x", "X":
			axis = node.X
		case "y", "Y":
			axis = node.Y
		case "z", "Z":
			axis = node.Z
		default:
			return newErr("invalid rotation axis " + op.Rotate.Axis)
		}
		n.Rotate(axis, op.Rotate.Angle)
	}
	return nil
}
