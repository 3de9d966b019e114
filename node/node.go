// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
//
// A graph is a tree of *Node values. Each node owns an
// ordered list of immediate descendants and has at most
// one immediate ancestor. The kind of a node is one of
// Group, *Joint or *Geometry.
package node

import (
	"fmt"

	"github.com/gviegas/puppet/linear"
)

// Kind identifies what a Node is.
// The set of kinds is closed: only Group, *Joint and
// *Geometry implement it.
type Kind interface {
	kind()
	String() string
}

// Group is the kind of a plain transform node.
type Group struct{}

func (Group) kind() {}

// String implements fmt.Stringer.
func (Group) String() string { return "node" }

// Axis identifies a coordinate axis.
type Axis int

// Axes.
const (
	X Axis = iota
	Y
	Z
)

// String implements fmt.Stringer.
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "[!] invalid Axis value"
	}
}

// vector returns the unit vector of a.
func (a Axis) vector() (v linear.V3) {
	if a < X || a > Z {
		panic("invalid Axis value")
	}
	v[a] = 1
	return
}

// Range constrains the rotation of a joint about
// a single axis. Values are given in degrees.
type Range struct {
	Min  float32
	Init float32
	Max  float32
}

// Clamp clamps x to [r.Min, r.Max].
func (r Range) Clamp(x float32) float32 { return max(r.Min, min(x, r.Max)) }

// Joint is the kind of an articulation node.
// Its ranges are not used during rendering.
type Joint struct {
	X, Y  Range
	angle [2]float32
}

func (*Joint) kind() {}

// String implements fmt.Stringer.
func (*Joint) String() string { return "joint" }

// NewJoint creates a new joint whose current angles
// are the initial values of x and y.
func NewJoint(x, y Range) *Joint {
	return &Joint{
		X:     x,
		Y:     y,
		angle: [2]float32{x.Clamp(x.Init), y.Clamp(y.Init)},
	}
}

// Angle returns the current angle of j about axis.
// It returns 0 for axes that j does not constrain.
func (j *Joint) Angle(axis Axis) float32 {
	switch axis {
	case X, Y:
		return j.angle[axis]
	default:
		return 0
	}
}

// SetAngle sets the angle of j about axis, clamped to
// the axis range. It returns the change in the angle.
// Axes other than X and Y are left unchanged.
func (j *Joint) SetAngle(axis Axis, deg float32) (delta float32) {
	var r Range
	switch axis {
	case X:
		r = j.X
	case Y:
		r = j.Y
	default:
		return 0
	}
	deg = r.Clamp(deg)
	delta = deg - j.angle[axis]
	j.angle[axis] = deg
	return
}

// Material describes the Phong parameters of a
// geometry node.
type Material struct {
	Kd        linear.V3
	Ks        linear.V3
	Shininess float32
}

// Geometry is the kind of a mesh instance node.
type Geometry struct {
	// MeshID identifies the mesh in the mesh registry.
	MeshID   string
	Material Material
	// Selected is set by interaction code between
	// frames and read during rendering.
	Selected bool
}

func (*Geometry) kind() {}

// String implements fmt.Stringer.
func (*Geometry) String() string { return "mesh" }

// Node is a single node in a scene graph.
type Node struct {
	ID   int
	Name string
	// Local is the transform relative to the ancestor.
	Local linear.M4
	// Inverse is the inverse of Local.
	Inverse  linear.M4
	Kind     Kind
	children []*Node
	attached bool
}

// New creates a node with identity transforms.
// If kind is nil, Group is used.
func New(id int, name string, kind Kind) *Node {
	if kind == nil {
		kind = Group{}
	}
	n := &Node{ID: id, Name: name, Kind: kind}
	n.Local.I()
	n.Inverse.I()
	return n
}

// String implements fmt.Stringer.
func (n *Node) String() string { return fmt.Sprintf("%s#%d(%v)", n.Name, n.ID, n.Kind) }

// Insert inserts node sub as the last immediate
// descendant of node n.
// It panics if sub already has an ancestor or if
// the insertion would create a cycle.
func (n *Node) Insert(sub *Node) {
	switch {
	case sub.attached:
		panic("node already has an ancestor: " + sub.String())
	case sub.contains(n):
		panic("node insertion would create a cycle: " + sub.String())
	}
	sub.attached = true
	n.children = append(n.children, sub)
}

// contains returns whether x is n or one of its
// descendants.
func (n *Node) contains(x *Node) (found bool) {
	n.ForEach(func(m *Node) bool {
		found = m == x
		return !found
	})
	return
}

// Children returns the immediate descendants of n.
// The slice aliases n's storage and must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

// Count returns the number of nodes in the graph
// whose root is n.
func (n *Node) Count() (cnt int) {
	n.ForEach(func(*Node) bool {
		cnt++
		return true
	})
	return
}

// ForEach calls f for n and each of its descendants,
// in depth-first pre-order. Iteration stops when f
// returns false.
func (n *Node) ForEach(f func(*Node) bool) { n.forEach(f) }

func (n *Node) forEach(f func(*Node) bool) bool {
	if !f(n) {
		return false
	}
	for _, sub := range n.children {
		if !sub.forEach(f) {
			return false
		}
	}
	return true
}

// Find returns the node with the given ID, or nil if
// there is no such node in the graph rooted at n.
func (n *Node) Find(id int) (x *Node) {
	n.ForEach(func(m *Node) bool {
		if m.ID == id {
			x = m
		}
		return x == nil
	})
	return
}

// FindName returns the first node, in pre-order, with
// the given name, or nil if there is none.
func (n *Node) FindName(name string) (x *Node) {
	n.ForEach(func(m *Node) bool {
		if m.Name == name {
			x = m
		}
		return x == nil
	})
	return
}

// SetTransform replaces the local transform of n.
func (n *Node) SetTransform(m *linear.M4) {
	n.Local = *m
	n.Inverse.Invert(m)
}

// apply sets n.Local to op ⋅ n.Local, given the
// inverse of op.
func (n *Node) apply(op, inv *linear.M4) {
	n.Local.Mul(op, &n.Local)
	n.Inverse.Mul(&n.Inverse, inv)
}

// Rotate rotates n by deg degrees about axis.
func (n *Node) Rotate(axis Axis, deg float32) {
	var op, inv linear.M4
	v := axis.vector()
	op.Rotate(linear.Rad(deg), &v)
	inv.Rotate(linear.Rad(-deg), &v)
	n.apply(&op, &inv)
}

// Scale scales n by v.
// No component of v may be zero.
func (n *Node) Scale(v linear.V3) {
	var op, inv linear.M4
	op.Scale(v[0], v[1], v[2])
	inv.Scale(1/v[0], 1/v[1], 1/v[2])
	n.apply(&op, &inv)
}

// Translate translates n by v.
func (n *Node) Translate(v linear.V3) {
	var op, inv linear.M4
	op.Translate(v[0], v[1], v[2])
	inv.Translate(-v[0], -v[1], -v[2])
	n.apply(&op, &inv)
}

// RotateLocal rotates n by deg degrees about axis,
// in n's own frame (i.e., n.Local ⋅ R).
func (n *Node) RotateLocal(axis Axis, deg float32) {
	var op, inv linear.M4
	v := axis.vector()
	op.Rotate(linear.Rad(deg), &v)
	inv.Rotate(linear.Rad(-deg), &v)
	n.Local.Mul(&n.Local, &op)
	n.Inverse.Mul(&inv, &n.Inverse)
}

// Articulate changes the angle of n's joint about axis
// by deg degrees, within the joint's range, and rotates
// n about its own origin by the same amount.
// It returns the change that was applied.
// It panics if n is not a joint.
func (n *Node) Articulate(axis Axis, deg float32) float32 {
	j, ok := n.Joint()
	if !ok {
		panic("node is not a joint: " + n.String())
	}
	delta := j.SetAngle(axis, j.Angle(axis)+deg)
	if delta != 0 {
		n.RotateLocal(axis, delta)
	}
	return delta
}

// Pose rotates n about its own origin by the current
// angles of its joint. Importers call it once, after
// the rest transform is set.
// It does nothing if n is not a joint.
func (n *Node) Pose() {
	j, ok := n.Joint()
	if !ok {
		return
	}
	for _, a := range [...]Axis{X, Y} {
		if deg := j.Angle(a); deg != 0 {
			n.RotateLocal(a, deg)
		}
	}
}

// Geometry returns n's kind as a *Geometry, if it is one.
func (n *Node) Geometry() (*Geometry, bool) {
	g, ok := n.Kind.(*Geometry)
	return g, ok
}

// Joint returns n's kind as a *Joint, if it is one.
func (n *Node) Joint() (*Joint, bool) {
	j, ok := n.Kind.(*Joint)
	return j, ok
}

// Visitor is called by Walk for every node in a graph.
// world is the accumulated transform of the node and
// is only valid during the call.
type Visitor func(n *Node, world *linear.M4) error

// Walk visits each node of the graph rooted at n exactly
// once, in depth-first pre-order. The transform passed to
// visit is m ⋅ A1 ⋅ ... ⋅ An ⋅ Local, where Ai are the
// local transforms of the node's ancestors (root first).
// Walk stops at the first error returned by visit.
// A nil n is an empty graph.
func Walk(n *Node, m *linear.M4, visit Visitor) error {
	if n == nil {
		return nil
	}
	var world linear.M4
	world.Mul(m, &n.Local)
	if err := visit(n, &world); err != nil {
		return err
	}
	for _, sub := range n.children {
		if err := Walk(sub, &world, visit); err != nil {
			return err
		}
	}
	return nil
}
