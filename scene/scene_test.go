// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/puppet/gltf"
	"github.com/gviegas/puppet/linear"
	"github.com/gviegas/puppet/node"
)

func checkIDs(t *testing.T, root *node.Node) {
	t.Helper()
	id := 0
	root.ForEach(func(n *node.Node) bool {
		assert.Equal(t, id, n.ID, "pre-order ID of %v", n)
		id++
		return true
	})
	assert.Equal(t, root.Count(), id)
}

func checkLocal(t *testing.T, want mgl32.Mat4, n *node.Node) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], n.Local.Floats(), 1e-5, "Local of %v", n)
	inv := want.Inv()
	assert.InDeltaSlice(t, inv[:], n.Inverse.Floats(), 1e-4, "Inverse of %v", n)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a/b/puppet.yaml": YAML,
		"puppet.YML":      YAML,
		"model.gltf":      GLTF,
		"x/model.GLB":     GLB,
	} {
		f, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, f, path)
	}
	for _, path := range [...]string{"puppet.lua", "puppet", "cube.obj"} {
		_, err := FormatOf(path)
		assert.ErrorIs(t, err, ErrFormat, path)
	}
	_, err := Load("puppet.lua")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadYAML(t *testing.T) {
	root, err := Load("testdata/puppet.yaml")
	require.NoError(t, err)
	require.Equal(t, 6, root.Count())
	checkIDs(t, root)

	assert.Equal(t, "puppet", root.Name)
	assert.Equal(t, node.Group{}, root.Kind)
	checkLocal(t, mgl32.Translate3D(0, 0, -8), root)

	torso := root.FindName("torso")
	require.NotNil(t, torso)
	g, ok := torso.Geometry()
	require.True(t, ok)
	assert.Equal(t, "cube", g.MeshID)
	assert.Equal(t, node.Material{
		Kd:        linear.V3{0.2, 0.3, 0.8},
		Ks:        linear.V3{0.4, 0.4, 0.4},
		Shininess: 25,
	}, g.Material)
	assert.False(t, g.Selected)
	checkLocal(t, mgl32.Scale3D(1, 1.6, 0.6), torso)

	neck := root.FindName("neck")
	require.NotNil(t, neck)
	j, ok := neck.Joint()
	require.True(t, ok)
	assert.Equal(t, node.Range{Min: -30, Init: 10, Max: 30}, j.X)
	assert.Equal(t, node.Range{Min: -60, Max: 60}, j.Y)
	assert.Equal(t, float32(10), j.Angle(node.X))
	// The initial angle is part of the local transform.
	checkLocal(t, mgl32.Translate3D(0, 0.9, 0).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(10))), neck)

	head := neck.Children()[0]
	assert.Equal(t, "head", head.Name)
	checkLocal(t, mgl32.Translate3D(0, 0.4, 0).Mul4(mgl32.Scale3D(0.4, 0.4, 0.4)), head)

	shoulder := root.FindName("shoulder")
	require.NotNil(t, shoulder)
	checkLocal(t, mgl32.Translate3D(0.6, 0.7, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(45))), shoulder)
	j, _ = shoulder.Joint()
	assert.Equal(t, node.Range{}, j.Y)

	arm := root.FindName("arm")
	require.NotNil(t, arm)
	g, _ = arm.Geometry()
	assert.Equal(t, node.Material{}, g.Material)
}

func TestDecodeYAMLError(t *testing.T) {
	for _, s := range [...]string{
		``,
		`name: [unterminated`,
		`{name: x, kind: light}`,
		`{name: x, kind: mesh}`,
		`{name: x, mesh: cube}`,
		`{name: x, joint: {x: [0, 0, 0]}}`,
		`{name: x, unknown: 1}`,
		`{name: x, transform: [{}]}`,
		`{name: x, transform: [{translate: [1, 2, 3], scale: [1, 1, 1]}]}`,
		`{name: x, transform: [{scale: [1, 0, 1]}]}`,
		`{name: x, transform: [{rotate: {axis: w, angle: 3}}]}`,
		`{name: x, children: [{name: y, kind: nope}]}`,
	} {
		_, err := Decode(strings.NewReader(s), YAML)
		assert.Error(t, err, "%q", s)
	}
}

func TestLoadGLTF(t *testing.T) {
	root, err := Load("testdata/puppet.gltf")
	require.NoError(t, err)
	checkGLTF(t, root)
}

func TestLoadGLB(t *testing.T) {
	file, err := os.Open("testdata/puppet.gltf")
	require.NoError(t, err)
	defer file.Close()
	doc, err := gltf.Decode(file)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, gltf.EncodeGLB(&buf, doc))
	path := filepath.Join(t.TempDir(), "puppet.glb")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	root, err := Load(path)
	require.NoError(t, err)
	checkGLTF(t, root)
}

func checkGLTF(t *testing.T, root *node.Node) {
	t.Helper()
	// Two scene roots are wrapped in a group.
	require.Equal(t, 5, root.Count())
	checkIDs(t, root)
	assert.Equal(t, "root", root.Name)
	assert.Equal(t, node.Group{}, root.Kind)
	require.Len(t, root.Children(), 2)

	torso := root.Children()[0]
	g, ok := torso.Geometry()
	require.True(t, ok)
	assert.Equal(t, "cube", g.MeshID)
	assert.Equal(t, node.Material{
		Kd:        linear.V3{0.2, 0.3, 0.8},
		Ks:        linear.V3{0.5, 0.5, 0.5},
		Shininess: 32,
	}, g.Material)
	checkLocal(t, mgl32.Scale3D(1, 1.6, 0.6), torso)

	neck := root.FindName("neck")
	require.NotNil(t, neck)
	j, ok := neck.Joint()
	require.True(t, ok)
	assert.Equal(t, node.Range{Min: -30, Init: 10, Max: 30}, j.X)
	checkLocal(t, mgl32.Translate3D(0, 0.9, 0).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(10))), neck)

	head := root.FindName("head")
	require.NotNil(t, head)
	g, _ = head.Geometry()
	assert.Equal(t, "sphere", g.MeshID)
	assert.Equal(t, gltfMaterial, g.Material)
	checkLocal(t, mgl32.Translate3D(0, 0.4, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))), head)

	floor := root.Children()[1]
	assert.Equal(t, "node3", floor.Name)
	checkLocal(t, mgl32.Translate3D(0, -2, 0).Mul4(mgl32.Scale3D(2, 0.1, 2)), floor)
}

func TestDecodeGLTFError(t *testing.T) {
	for _, s := range [...]string{
		`not json`,
		`{"asset": {}}`,
		`{"asset": {"version": "2.0"}}`,
		`{"asset": {"version": "2.0"}, "nodes": [{"children": [0]}]}`,
		`{"asset": {"version": "2.0"}, "nodes": [{"mesh": 0}], "meshes": [{"primitives": [{"attributes": {}}]}]}`,
		`{"asset": {"version": "2.0"}, "nodes": [{"mesh": 0, "extras": {"joint": {}}}], "meshes": [{"name": "m", "primitives": [{"attributes": {}}]}]}`,
	} {
		_, err := Decode(strings.NewReader(s), GLTF)
		assert.Error(t, err, "%q", s)
	}
	_, err := Decode(strings.NewReader(`{"asset": {"version": "2.0"}}`), GLB)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader(""), Format(-1))
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestDecodeGLTFNoScene(t *testing.T) {
	s := `{"asset": {"version": "2.0"}, "nodes": [{"name": "a", "children": [1]}, {"name": "b"}]}`
	root, err := Decode(strings.NewReader(s), GLTF)
	require.NoError(t, err)
	assert.Equal(t, "a", root.Name)
	assert.Equal(t, 2, root.Count())
}
