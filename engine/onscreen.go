// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	_ "github.com/gviegas/puppet/driver/ogl"
	"github.com/gviegas/puppet/engine/internal/ctxt"
	"github.com/gviegas/puppet/engine/mesh"
	"github.com/gviegas/puppet/wsi"
)

// Onscreen is a Renderer that targets a wsi.Window.
type Onscreen struct {
	*Renderer
	win wsi.Window
}

// NewOnscreen creates a new onscreen renderer.
// It makes the window's context current and loads the
// driver, so it must be called from the thread that
// will render.
func NewOnscreen(win wsi.Window, meshes *mesh.Registry) (*Onscreen, error) {
	if win == nil {
		return nil, newRendErr("nil wsi.Window in call to NewOnscreen")
	}
	win.MakeCurrent()
	if err := ctxt.Load("opengl"); err != nil {
		// Try all drivers.
		if err = ctxt.Load(""); err != nil {
			return nil, err
		}
	}
	width, height := win.FramebufferSize()
	r, err := New(ctxt.GPU(), meshes, width, height)
	if err != nil {
		ctxt.Unload()
		return nil, err
	}
	return &Onscreen{Renderer: r, win: win}, nil
}

// Window returns the wsi.Window associated with r.
func (r *Onscreen) Window() wsi.Window { return r.win }

// Present presents the last rendered frame.
func (r *Onscreen) Present() { r.win.SwapBuffers() }

// Destroy releases the GPU resources of r and unloads
// the driver. The window is not closed.
func (r *Onscreen) Destroy() {
	r.Renderer.Destroy()
	ctxt.Unload()
}
