// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"io"

	"github.com/gviegas/puppet/gltf"
	"github.com/gviegas/puppet/linear"
	"github.com/gviegas/puppet/node"
)

// Material used by geometry nodes whose glTF mesh has
// no material.
var gltfMaterial = node.Material{
	Kd:        linear.V3{1, 1, 1},
	Shininess: 1,
}

func decodeGLTF(r io.Reader, glb bool) (*node.Node, error) {
	var (
		doc *gltf.GLTF
		err error
	)
	if glb {
		doc, err = gltf.DecodeGLB(r)
	} else {
		doc, err = gltf.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err = doc.Check(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	roots := gltfRoots(doc)
	if len(roots) == 0 {
		return nil, newErr("glTF has no root nodes")
	}
	var b builder
	if len(roots) == 1 {
		return b.gltfNode(doc, roots[0])
	}
	root := b.node("root", node.Group{})
	for _, i := range roots {
		sub, err := b.gltfNode(doc, i)
		if err != nil {
			return nil, err
		}
		root.Insert(sub)
	}
	return root, nil
}

// gltfRoots returns the root nodes of the default
// scene. Without scenes, every node that is not a
// child of another is a root.
func gltfRoots(doc *gltf.GLTF) []int64 {
	switch {
	case doc.Scene != nil:
		return doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		return doc.Scenes[0].Nodes
	}
	child := make([]bool, len(doc.Nodes))
	for i := range doc.Nodes {
		for _, c := range doc.Nodes[i].Children {
			child[c] = true
		}
	}
	var roots []int64
	for i, c := range child {
		if !c {
			roots = append(roots, int64(i))
		}
	}
	return roots
}

func (b *builder) gltfNode(doc *gltf.GLTF, i int64) (*node.Node, error) {
	gn := &doc.Nodes[i]
	name := gn.Name
	if name == "" {
		name = fmt.Sprintf("node%d", i)
	}
	x, err := gn.NodeExtras()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	var kind node.Kind
	switch {
	case gn.Mesh != nil && x.Joint != nil:
		return nil, newErr("glTF node " + name + " is both a mesh and a joint")
	case gn.Mesh != nil:
		m := &doc.Meshes[*gn.Mesh]
		if m.Name == "" {
			return nil, newErr("glTF node " + name + " refers to an unnamed mesh")
		}
		g := &node.Geometry{MeshID: m.Name, Material: gltfMaterial}
		if mi := m.Primitives[0].Material; mi != nil {
			if g.Material, err = gltfMaterialOf(&doc.Materials[*mi]); err != nil {
				return nil, err
			}
		}
		kind = g
	case x.Joint != nil:
		kind = node.NewJoint(gltfRange(x.Joint.X), gltfRange(x.Joint.Y))
	default:
		kind = node.Group{}
	}

	n := b.node(name, kind)
	n.SetTransform(gltfTransform(gn))
	n.Pose()
	for _, c := range gn.Children {
		sub, err := b.gltfNode(doc, c)
		if err != nil {
			return nil, err
		}
		n.Insert(sub)
	}
	return n, nil
}

func gltfRange(r *[3]float32) node.Range {
	if r == nil {
		return node.Range{}
	}
	return node.Range{Min: r[0], Init: r[1], Max: r[2]}
}

func gltfMaterialOf(gm *gltf.Material) (node.Material, error) {
	m := gltfMaterial
	if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		f := pbr.BaseColorFactor
		m.Kd = linear.V3{f[0], f[1], f[2]}
	}
	x, err := gm.MaterialExtras()
	if err != nil {
		return m, fmt.Errorf("scene: %w", err)
	}
	if x.Ks != nil {
		m.Ks = linear.V3(*x.Ks)
	}
	if x.Shininess != nil {
		m.Shininess = *x.Shininess
	}
	return m, nil
}

// gltfTransform returns the local transform of gn,
// either its matrix or T ⋅ R ⋅ S.
func gltfTransform(gn *gltf.Node) *linear.M4 {
	var m linear.M4
	if gn.Matrix != nil {
		copy(m.Floats(), gn.Matrix[:])
		return &m
	}
	m.I()
	if s := gn.Scale; s != nil {
		m.Scale(s[0], s[1], s[2])
	}
	if q := gn.Rotation; q != nil {
		var r linear.M4
		r.RotateQ(&linear.Q{V: linear.V3{q[0], q[1], q[2]}, R: q[3]})
		m.Mul(&r, &m)
	}
	if t := gn.Translation; t != nil {
		var tr linear.M4
		tr.Translate(t[0], t[1], t[2])
		m.Mul(&tr, &m)
	}
	return &m
}
