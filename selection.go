// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package puppet

import (
	"github.com/gviegas/puppet/node"
)

// Selected returns the selected geometry node, or nil
// if there is none.
func (s *Scene) Selected() *node.Node { return s.selected }

// SelectNext selects the geometry node that follows
// the current selection in traversal order, wrapping
// around. Only one node is selected at a time.
// It returns the new selection, or nil if the graph
// has no geometry.
func (s *Scene) SelectNext() *node.Node {
	if s.Root == nil {
		return nil
	}
	var first, next *node.Node
	passed := s.selected == nil
	s.Root.ForEach(func(n *node.Node) bool {
		if _, ok := n.Geometry(); !ok {
			return true
		}
		if first == nil {
			first = n
		}
		if passed {
			next = n
			return false
		}
		passed = n == s.selected
		return true
	})
	if next == nil {
		next = first
	}
	s.select1(next)
	return next
}

// ClearSelection deselects every geometry node.
func (s *Scene) ClearSelection() {
	if s.Root == nil {
		return
	}
	s.Root.ForEach(func(n *node.Node) bool {
		if g, ok := n.Geometry(); ok {
			g.Selected = false
		}
		return true
	})
	s.selected = nil
}

func (s *Scene) select1(n *node.Node) {
	s.ClearSelection()
	if n == nil {
		return
	}
	g, _ := n.Geometry()
	g.Selected = true
	s.selected = n
}

// Path returns the nodes from s.Root to n, inclusive.
// It returns nil if n is not in the graph.
func (s *Scene) Path(n *node.Node) []*node.Node {
	if s.Root == nil || n == nil {
		return nil
	}
	var path []*node.Node
	var find func(*node.Node) bool
	find = func(m *node.Node) bool {
		path = append(path, m)
		if m == n {
			return true
		}
		for _, sub := range m.Children() {
			if find(sub) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !find(s.Root) {
		return nil
	}
	return path
}

// JointOf returns the nearest joint that is an ancestor
// of n, or nil if there is none.
func (s *Scene) JointOf(n *node.Node) *node.Node {
	path := s.Path(n)
	for i := len(path) - 2; i >= 0; i-- {
		if _, ok := path[i].Joint(); ok {
			return path[i]
		}
	}
	return nil
}

// Articulate rotates the joint that controls the
// selection by deg degrees about axis, within the
// joint's range. It returns the applied change, which
// is zero if nothing is selected or no joint controls
// the selection.
func (s *Scene) Articulate(axis node.Axis, deg float32) float32 {
	j := s.JointOf(s.selected)
	if j == nil {
		return 0
	}
	return j.Articulate(axis, deg)
}
