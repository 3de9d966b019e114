// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"fmt"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

// Check checks that f is valid glTF and that its node
// hierarchy is a forest.
func (f *GLTF) Check() error {
	if f.Asset.Version == "" {
		return newErr("missing GLTF.Asset.Version")
	}
	if s := f.Scene; s != nil && (*s < 0 || *s >= int64(len(f.Scenes))) {
		return newErr("invalid GLTF.Scene index")
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].Check(f); err != nil {
			return fmt.Errorf("%w (mesh %d)", err, i)
		}
	}
	for i := range f.Materials {
		if _, err := f.Materials[i].MaterialExtras(); err != nil {
			return fmt.Errorf("%w (material %d)", err, i)
		}
	}
	parent := make([]int64, len(f.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i := range f.Nodes {
		n := &f.Nodes[i]
		if err := n.Check(f); err != nil {
			return fmt.Errorf("%w (node %d)", err, i)
		}
		for _, c := range n.Children {
			if c == int64(i) {
				return newErr(fmt.Sprintf("node %d is its own child", i))
			}
			if parent[c] >= 0 {
				return newErr(fmt.Sprintf("node %d has more than one parent", c))
			}
			parent[c] = int64(i)
		}
	}
	// With at most one parent per node, a cycle exists
	// iff following parents from some node never ends.
	for i := range f.Nodes {
		n := int64(i)
		for steps := 0; parent[n] >= 0; steps++ {
			if steps == len(f.Nodes) {
				return newErr(fmt.Sprintf("cycle through node %d", i))
			}
			n = parent[n]
		}
	}
	for i := range f.Scenes {
		for _, n := range f.Scenes[i].Nodes {
			if n < 0 || n >= int64(len(f.Nodes)) {
				return newErr(fmt.Sprintf("invalid Scene.Nodes index (scene %d)", i))
			}
			if parent[n] >= 0 {
				return newErr(fmt.Sprintf("scene %d root node %d has a parent", i, n))
			}
		}
	}
	return nil
}

// Check checks that n is valid glTF.nodes' element.
func (n *Node) Check(gltf *GLTF) error {
	for _, c := range n.Children {
		if c < 0 || c >= int64(len(gltf.Nodes)) {
			return newErr("invalid Node.Children index")
		}
	}
	if m := n.Mesh; m != nil && (*m < 0 || *m >= int64(len(gltf.Meshes))) {
		return newErr("invalid Node.Mesh index")
	}
	if n.Matrix != nil && (n.Rotation != nil || n.Scale != nil || n.Translation != nil) {
		return newErr("Node.Matrix and TRS properties are mutually exclusive")
	}
	if _, err := n.NodeExtras(); err != nil {
		return err
	}
	return nil
}

// Check checks that m is valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("empty Mesh.Primitives")
	}
	for _, p := range m.Primitives {
		if i := p.Material; i != nil && (*i < 0 || *i >= int64(len(gltf.Materials))) {
			return newErr("invalid Primitive.Material index")
		}
		if p.Mode != nil && (*p.Mode < POINTS || *p.Mode > TRIANGLE_FAN) {
			return newErr("invalid Primitive.Mode value")
		}
	}
	return nil
}
