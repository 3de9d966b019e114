// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gviegas/puppet/driver"
	"github.com/gviegas/puppet/engine/internal/shader"
	"github.com/gviegas/puppet/engine/mesh"
	"github.com/gviegas/puppet/linear"
	"github.com/gviegas/puppet/node"
)

func newRendErr(s string) error { return errors.New("renderer: " + s) }

// Renderer draws node graphs whose geometry refers to
// meshes of a single mesh.Registry.
// GPU resources are created by New and live until
// Destroy is called.
type Renderer struct {
	gpu    driver.GPU
	meshes *mesh.Registry
	cfg    Config

	scene *shader.Scene
	bufs  [mesh.MaxSemantic]driver.Buffer
	va    driver.VertexArray
	gizmo gizmo

	width  int
	height int
	proj   linear.M4
	view   linear.M4
	light  Light

	frame shader.FrameLayout
	draw  shader.DrawLayout
}

// New creates a new renderer that draws with gpu.
// The vertex data of meshes is uploaded once.
// width and height are the framebuffer size in pixels.
func New(gpu driver.GPU, meshes *mesh.Registry, width, height int) (*Renderer, error) {
	if gpu == nil {
		return nil, newRendErr("nil driver.GPU in call to New")
	}
	if meshes == nil {
		return nil, newRendErr("nil mesh.Registry in call to New")
	}
	r := &Renderer{gpu: gpu, meshes: meshes, cfg: cfg}
	if err := r.init(width, height); err != nil {
		r.Destroy()
		return nil, err
	}
	slog.Debug("renderer created", "meshes", meshes.Len(), "vertices", meshes.Vertices())
	return r, nil
}

func (r *Renderer) init(width, height int) (err error) {
	if r.scene, err = shader.NewScene(r.gpu); err != nil {
		return
	}
	if r.va, err = r.gpu.NewVertexArray(); err != nil {
		return
	}
	pos, norm := r.scene.Attribs()
	for s, nr := range [mesh.MaxSemantic]int{mesh.Position: pos, mesh.Normal: norm} {
		sem := mesh.Semantic(s)
		if r.bufs[s], err = r.gpu.NewBuffer(r.meshes.Data(sem)); err != nil {
			return
		}
		if err = r.va.SetAttrib(nr, r.bufs[s], sem.Components()); err != nil {
			return
		}
	}
	if err = r.gizmo.init(r.gpu); err != nil {
		return
	}

	c := &r.cfg.ClearColor
	r.gpu.SetClearColor(c[0], c[1], c[2], c[3])
	r.gpu.SetDepthTest(true)
	r.gpu.SetCullMode(driver.CNone)

	r.view.LookAt(&linear.V3{}, &linear.V3{0, 0, -1}, &linear.V3{0, 1, 0})
	r.frame.SetAmbient(&r.cfg.Ambient)
	r.SetLight(&r.cfg.Light)
	r.Resize(width, height)
	return r.gpu.Check()
}

// Resize updates the viewport and recomputes the
// projection for a framebuffer of the given size.
// Non-positive sizes (e.g., a minimized window) are
// ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.gpu.SetViewport(driver.Viewport{Width: width, Height: height})
	r.proj.Perspective(linear.Rad(r.cfg.FOV), r.Aspect(), r.cfg.Znear, r.cfg.Zfar)
	r.frame.SetP(&r.proj)
	slog.Debug("renderer resized", "width", width, "height", height)
}

// Size returns the framebuffer size.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Aspect returns the framebuffer's aspect ratio.
func (r *Renderer) Aspect() float32 { return float32(r.width) / float32(r.height) }

// Projection returns the projection matrix.
func (r *Renderer) Projection() linear.M4 { return r.proj }

// View returns the view matrix.
// The camera is at the origin looking towards -z.
func (r *Renderer) View() linear.M4 { return r.view }

// SetLight sets the point light.
func (r *Renderer) SetLight(l *Light) {
	r.light = *l
	var pos linear.V4
	pos.Mul(&r.view, &linear.V4{l.Position[0], l.Position[1], l.Position[2], 1})
	r.frame.SetLight(&linear.V3{pos[0], pos[1], pos[2]}, &l.Intensity)
}

// Light returns the point light.
func (r *Renderer) Light() Light { return r.light }

// Render draws a frame.
// The graph rooted at root is drawn first, followed by
// the trackball circle if st.ShowGizmo is set.
// A nil root draws no geometry.
// Errors wrapping ErrUnknownMesh or driver.ErrFatal
// are unrecoverable.
func (r *Renderer) Render(root *node.Node, st FrameState) error {
	r.gpu.Clear()
	if root != nil {
		r.gpu.BindVertexArray(r.va)
		r.scene.Use()
		r.scene.SetFrame(&r.frame)
		if err := r.gpu.Check(); err != nil {
			return err
		}
		err := node.Walk(root, &r.view, r.visit)
		r.gpu.BindVertexArray(nil)
		if err != nil {
			return err
		}
	}
	if st.ShowGizmo {
		r.gizmo.draw(r.gpu, r.Aspect())
	}
	return r.gpu.Check()
}

// visit is the node.Visitor of Render.
func (r *Renderer) visit(n *node.Node, world *linear.M4) error {
	switch k := n.Kind.(type) {
	case node.Group, *node.Group, *node.Joint:
		return nil
	case *node.Geometry:
		return r.drawGeometry(n, k, world)
	default:
		panic(fmt.Sprintf("renderer: unexpected node kind %T", k))
	}
}

func (r *Renderer) drawGeometry(n *node.Node, g *node.Geometry, mv *linear.M4) error {
	b, err := r.meshes.Lookup(g.MeshID)
	if err != nil {
		return fmt.Errorf("renderer: node %v: %w", n, err)
	}
	var nm linear.M3
	nm.Normal(mv)
	kd := &g.Material.Kd
	if g.Selected {
		kd = &r.cfg.Highlight
	}
	r.draw.SetMV(mv)
	r.draw.SetNormal(&nm)
	r.draw.SetMaterial(kd, &g.Material.Ks, g.Material.Shininess)
	r.scene.SetDraw(&r.draw)
	r.gpu.Draw(driver.TTriangle, b.Start, b.Count)
	return r.gpu.Check()
}

// Destroy releases the GPU resources of r.
// r must not be used afterwards.
func (r *Renderer) Destroy() {
	r.gizmo.free()
	if r.va != nil {
		r.va.Destroy()
		r.va = nil
	}
	for i, b := range r.bufs {
		if b != nil {
			b.Destroy()
			r.bufs[i] = nil
		}
	}
	if r.scene != nil {
		r.scene.Destroy()
		r.scene = nil
	}
}
