// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/puppet/driver"
	"github.com/gviegas/puppet/driver/drivertest"
	"github.com/gviegas/puppet/engine/internal/shader"
	"github.com/gviegas/puppet/engine/mesh"
	"github.com/gviegas/puppet/linear"
	"github.com/gviegas/puppet/node"
)

const tri = `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`

const quad = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *drivertest.GPU) {
	t.Helper()
	reg, err := mesh.Consolidate(
		mesh.Source{ID: "tri", R: strings.NewReader(tri)},
		mesh.Source{ID: "quad", R: strings.NewReader(quad)},
	)
	require.NoError(t, err)
	gpu := drivertest.New()
	r, err := New(gpu, reg, width, height)
	require.NoError(t, err)
	t.Cleanup(r.Destroy)
	return r, gpu
}

func sceneDraws(gpu *drivertest.GPU) (draws []drivertest.Draw) {
	for _, d := range gpu.Draws {
		if d.Topology == driver.TTriangle {
			draws = append(draws, d)
		}
	}
	return
}

func mat4(m *linear.M4) mgl32.Mat4 {
	var n mgl32.Mat4
	copy(n[:], m.Floats())
	return n
}

func assertApprox(t *testing.T, want, have []float32, msg string) {
	t.Helper()
	require.Len(t, have, len(want), msg)
	for i := range want {
		assert.InDelta(t, want[i], have[i], 1e-4, "%s [%d]", msg, i)
	}
}

func geometry(id int, meshID string, kd linear.V3) *node.Node {
	return node.New(id, meshID, &node.Geometry{
		MeshID: meshID,
		Material: node.Material{
			Kd:        kd,
			Ks:        linear.V3{0.1, 0.2, 0.3},
			Shininess: 10,
		},
	})
}

func TestNew(t *testing.T) {
	r, gpu := newTestRenderer(t, 800, 600)

	require.Len(t, gpu.Programs, 2)
	assert.True(t, gpu.DepthTest)
	assert.Equal(t, driver.Viewport{Width: 800, Height: 600}, gpu.Viewport)
	assert.Equal(t, [4]float32{0.35, 0.35, 0.35, 1}, gpu.ClearColor)

	// Position, normal and circle buffers.
	require.Len(t, gpu.Buffers, 3)
	assert.Equal(t, r.meshes.Data(mesh.Position), gpu.Buffers[0].Data)
	assert.Equal(t, r.meshes.Data(mesh.Normal), gpu.Buffers[1].Data)
	assert.Equal(t, Circle(), gpu.Buffers[2].Data)

	require.Len(t, gpu.VAs, 2)
	pos, norm := r.scene.Attribs()
	assert.Equal(t, 3, gpu.VAs[0].Attribs[pos].Comps)
	assert.Equal(t, 3, gpu.VAs[0].Attribs[norm].Comps)
	assert.Equal(t, 2, gpu.VAs[1].Attribs[r.gizmo.arc.Attrib()].Comps)

	v := r.View()
	assert.Equal(t, mgl32.Ident4(), mat4(&v))

	r.Destroy()
	for _, p := range gpu.Programs {
		assert.True(t, p.Destroyed)
	}
	for _, b := range gpu.Buffers {
		assert.True(t, b.Destroyed)
	}
}

func TestNewFailure(t *testing.T) {
	reg, err := mesh.Consolidate()
	require.NoError(t, err)
	_, err = New(nil, reg, 1, 1)
	assert.Error(t, err)
	_, err = New(drivertest.New(), nil, 1, 1)
	assert.Error(t, err)

	gpu := drivertest.New()
	gpu.Missing = []string{shader.AmbientIntensity}
	_, err = New(gpu, reg, 1, 1)
	assert.Error(t, err)
}

func TestRenderVisitsAll(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)
	rnd := rand.New(rand.NewSource(1))

	// A random tree where every node is a geometry node,
	// so the number of draws equals the number of nodes.
	for _, cnt := range [...]int{1, 2, 7, 40} {
		nodes := make([]*node.Node, cnt)
		for i := range nodes {
			nodes[i] = geometry(i, [2]string{"tri", "quad"}[i%2], linear.V3{1, 1, 1})
			if i > 0 {
				nodes[rnd.Intn(i)].Insert(nodes[i])
			}
		}
		gpu.Draws = gpu.Draws[:0]
		require.NoError(t, r.Render(nodes[0], FrameState{}))
		draws := sceneDraws(gpu)
		require.Len(t, draws, cnt)
		for _, d := range draws {
			switch d.Count {
			case 3:
				assert.Equal(t, 0, d.First)
			case 6:
				assert.Equal(t, 3, d.First)
			default:
				t.Fatalf("unexpected draw count %d", d.Count)
			}
		}
	}
}

func TestRenderModelView(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	// root (group) -> arm (joint) -> hand (geometry)
	root := node.New(0, "root", nil)
	root.Translate(linear.V3{0, 0, -10})
	arm := node.New(1, "arm", node.NewJoint(node.Range{Min: -90, Max: 90}, node.Range{}))
	arm.Rotate(node.Z, 30)
	arm.Translate(linear.V3{1, 2, 0})
	hand := geometry(2, "tri", linear.V3{0.5, 0.5, 0.5})
	hand.Scale(linear.V3{2, 0.5, 1})
	root.Insert(arm)
	arm.Insert(hand)

	require.NoError(t, r.Render(root, FrameState{}))
	draws := sceneDraws(gpu)
	require.Len(t, draws, 1)

	view := r.View()
	want := mat4(&view).Mul4(mat4(&root.Local)).Mul4(mat4(&arm.Local)).Mul4(mat4(&hand.Local))
	// Same product, built independently.
	alt := mgl32.Translate3D(0, 0, -10).
		Mul4(mgl32.Translate3D(1, 2, 0)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(30))).
		Mul4(mgl32.Scale3D(2, 0.5, 1))
	mv := draws[0].Uniforms[shader.ModelView]
	assertApprox(t, want[:], mv, "ModelView")
	assertApprox(t, alt[:], mv, "ModelView (direct)")
}

func TestRenderGeometryChildren(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	parent := geometry(0, "quad", linear.V3{1, 0, 0})
	parent.Translate(linear.V3{3, 0, 0})
	child := geometry(1, "tri", linear.V3{0, 1, 0})
	child.Translate(linear.V3{0, 4, 0})
	parent.Insert(child)

	require.NoError(t, r.Render(parent, FrameState{}))
	draws := sceneDraws(gpu)
	require.Len(t, draws, 2)

	want := mgl32.Translate3D(3, 0, 0)
	assertApprox(t, want[:], draws[0].Uniforms[shader.ModelView], "parent ModelView")
	want = mgl32.Translate3D(3, 4, 0)
	assertApprox(t, want[:], draws[1].Uniforms[shader.ModelView], "child ModelView")
}

func TestRenderSelection(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	kd := linear.V3{0.1, 0.6, 0.3}
	a := geometry(0, "tri", kd)
	b := geometry(1, "tri", kd)
	a.Insert(b)
	gb, _ := b.Geometry()
	gb.Selected = true

	require.NoError(t, r.Render(a, FrameState{}))
	draws := sceneDraws(gpu)
	require.Len(t, draws, 2)
	assert.Equal(t, kd[:], draws[0].Uniforms[shader.MaterialKd])
	assert.Equal(t, []float32{0.9, 0.2, 0.2}, draws[1].Uniforms[shader.MaterialKd])
	for _, d := range draws {
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, d.Uniforms[shader.MaterialKs])
		assert.Equal(t, []float32{10}, d.Uniforms[shader.MaterialShininess])
	}

	// The flag is read anew every frame.
	gb.Selected = false
	gpu.Draws = nil
	require.NoError(t, r.Render(a, FrameState{}))
	assert.Equal(t, kd[:], sceneDraws(gpu)[1].Uniforms[shader.MaterialKd])
}

func TestRenderNormalMatrix(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	g := geometry(0, "quad", linear.V3{})
	g.Scale(linear.V3{3, 0.25, 1.5})
	g.Rotate(node.Y, 45)
	g.Translate(linear.V3{0, 0, -5})

	require.NoError(t, r.Render(g, FrameState{}))
	draws := sceneDraws(gpu)
	require.Len(t, draws, 1)

	mv := mgl32.Translate3D(0, 0, -5).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))).
		Mul4(mgl32.Scale3D(3, 0.25, 1.5))
	want := mv.Mat3().Inv().Transpose()
	assertApprox(t, want[:], draws[0].Uniforms[shader.NormalMatrix], "NormalMatrix")
}

func TestRenderFrameUniforms(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	root := node.New(0, "root", nil)
	for i := range 5 {
		root.Insert(geometry(i+1, "tri", linear.V3{}))
	}
	require.NoError(t, r.Render(root, FrameState{}))

	prog := gpu.Programs[0]
	for _, name := range [...]string{
		shader.Perspective,
		shader.LightPosition,
		shader.LightIntensity,
		shader.AmbientIntensity,
	} {
		assert.Equal(t, 1, prog.Uploads[name], name)
	}
	for _, name := range [...]string{
		shader.ModelView,
		shader.NormalMatrix,
		shader.MaterialKd,
		shader.MaterialKs,
		shader.MaterialShininess,
	} {
		assert.Equal(t, 5, prog.Uploads[name], name)
	}
	assert.Equal(t, []float32{-2, 5, 0.5}, prog.Values[shader.LightPosition])
	assert.Equal(t, []float32{0.8, 0.8, 0.8}, prog.Values[shader.LightIntensity])
	assert.Equal(t, []float32{0.05, 0.05, 0.05}, prog.Values[shader.AmbientIntensity])

	r.SetLight(&Light{Position: linear.V3{1, 2, 3}, Intensity: linear.V3{1, 0, 0}})
	require.NoError(t, r.Render(root, FrameState{}))
	assert.Equal(t, []float32{1, 2, 3}, prog.Values[shader.LightPosition])
	assert.Equal(t, []float32{1, 0, 0}, prog.Values[shader.LightIntensity])
	assert.Equal(t, 2, prog.Uploads[shader.Perspective])
}

func TestRenderNilRoot(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	require.NoError(t, r.Render(nil, FrameState{}))
	assert.Empty(t, gpu.Draws)
	assert.Equal(t, 1, gpu.Clears)
	assert.Zero(t, gpu.Programs[0].Uploads[shader.Perspective])

	require.NoError(t, r.Render(nil, FrameState{ShowGizmo: true}))
	require.Len(t, gpu.Draws, 1)
	assert.Equal(t, driver.TLnLoop, gpu.Draws[0].Topology)
}

func TestRenderUnknownMesh(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	root := geometry(0, "tri", linear.V3{})
	root.Insert(geometry(1, "no such mesh", linear.V3{}))
	root.Insert(geometry(2, "quad", linear.V3{}))

	err := r.Render(root, FrameState{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMesh))
	// Traversal stops at the offending node.
	assert.Len(t, sceneDraws(gpu), 1)
	assert.Nil(t, gpu.Bound)
}

func TestRenderFatal(t *testing.T) {
	r, gpu := newTestRenderer(t, 640, 480)

	gpu.Err = errors.New("GL_INVALID_OPERATION")
	err := r.Render(geometry(0, "tri", linear.V3{}), FrameState{})
	assert.ErrorIs(t, err, driver.ErrFatal)
	assert.Empty(t, gpu.Draws)
}

func TestResize(t *testing.T) {
	r, gpu := newTestRenderer(t, 800, 600)

	for _, sz := range [...][2]int{{800, 600}, {600, 800}, {1920, 1080}, {1, 1}, {333, 777}} {
		r.Resize(sz[0], sz[1])
		aspect := float32(sz[0]) / float32(sz[1])
		assert.Equal(t, aspect, r.Aspect())
		assert.Equal(t, driver.Viewport{Width: sz[0], Height: sz[1]}, gpu.Viewport)

		want := mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 100)
		p := r.Projection()
		assertApprox(t, want[:], p.Floats(), "Projection")
	}

	// Ignored.
	r.Resize(0, 100)
	w, h := r.Size()
	assert.Equal(t, [2]int{333, 777}, [2]int{w, h})
}

func TestConfigure(t *testing.T) {
	defer func() {
		c := DefaultConfig()
		Configure(&c)
	}()

	c := DefaultConfig()
	c.FOV = 45
	c.Highlight = linear.V3{0, 0, 1}
	Configure(&c)
	r, gpu := newTestRenderer(t, 100, 100)

	want := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	p := r.Projection()
	assertApprox(t, want[:], p.Floats(), "Projection")

	g := geometry(0, "tri", linear.V3{})
	gg, _ := g.Geometry()
	gg.Selected = true
	require.NoError(t, r.Render(g, FrameState{}))
	assert.Equal(t, []float32{0, 0, 1}, sceneDraws(gpu)[0].Uniforms[shader.MaterialKd])

	c = Config{FOV: 200, Znear: 1, Zfar: 0.5}
	Configure(&c)
	assert.Equal(t, float32(60), cfg.FOV)
	assert.Equal(t, float32(0.1), cfg.Znear)
	assert.Equal(t, float32(100), cfg.Zfar)
}
