// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package puppet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/puppet/node"
)

func openTest(t *testing.T) *Scene {
	t.Helper()
	s, err := Open("testdata/puppet.yaml", "testdata/cube.obj", "testdata/tetra.obj")
	require.NoError(t, err)
	require.NotNil(t, s.Root)
	return s
}

func TestOpen(t *testing.T) {
	s := openTest(t)
	assert.Equal(t, 6, s.Root.Count())
	assert.Equal(t, []string{"cube", "tetra"}, s.Meshes.IDs())
	assert.Equal(t, []string{"sphere"}, s.Missing())

	// A scene that fails to load leaves Root nil.
	s, err := Open("testdata/no such file.yaml", "testdata/cube.obj")
	require.NoError(t, err)
	assert.Nil(t, s.Root)
	assert.Equal(t, 1, s.Meshes.Len())
	assert.Empty(t, s.Missing())
	assert.Nil(t, s.SelectNext())

	// Meshes are required.
	_, err = Open("testdata/puppet.yaml", "testdata/missing.obj")
	assert.Error(t, err)
}

func selectedNames(s *Scene) (names []string) {
	s.Root.ForEach(func(n *node.Node) bool {
		if g, ok := n.Geometry(); ok && g.Selected {
			names = append(names, n.Name)
		}
		return true
	})
	return
}

func TestSelectNext(t *testing.T) {
	s := openTest(t)
	assert.Nil(t, s.Selected())

	for _, want := range [...]string{"body", "leg", "foot", "lamp", "body", "leg"} {
		n := s.SelectNext()
		require.NotNil(t, n)
		assert.Equal(t, want, n.Name)
		assert.Same(t, n, s.Selected())
		assert.Equal(t, []string{want}, selectedNames(s))
	}

	s.ClearSelection()
	assert.Nil(t, s.Selected())
	assert.Empty(t, selectedNames(s))
	assert.Equal(t, "body", s.SelectNext().Name)
}

func TestPath(t *testing.T) {
	s := openTest(t)
	foot := s.Root.FindName("foot")
	var names []string
	for _, n := range s.Path(foot) {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"root", "body", "hip", "foot"}, names)
	assert.Nil(t, s.Path(node.New(99, "stray", nil)))

	assert.Same(t, s.Root.FindName("hip"), s.JointOf(foot))
	assert.Nil(t, s.JointOf(s.Root.FindName("lamp")))
	assert.Nil(t, s.JointOf(s.Root.FindName("hip")))
}

func TestArticulate(t *testing.T) {
	s := openTest(t)
	assert.Zero(t, s.Articulate(node.X, 10))

	s.SelectNext() // body
	assert.Zero(t, s.Articulate(node.X, 10))

	s.SelectNext() // leg
	assert.Equal(t, float32(30), s.Articulate(node.X, 30))
	assert.Equal(t, float32(15), s.Articulate(node.X, 30))
	assert.Zero(t, s.Articulate(node.Y, 30))

	hip := s.Root.FindName("hip")
	want := mgl32.Translate3D(0, -1, 0).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(45)))
	assert.InDeltaSlice(t, want[:], hip.Local.Floats(), 1e-5)
}
