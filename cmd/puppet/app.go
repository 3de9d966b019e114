// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gviegas/puppet"
	"github.com/gviegas/puppet/engine"
	"github.com/gviegas/puppet/node"
	"github.com/gviegas/puppet/wsi"
)

// Degrees per arrow key press and per pixel of drag.
const (
	articulateStep = 5
	dragScale      = 0.5
)

// app owns the render loop state. It implements the
// wsi handler interfaces.
type app struct {
	win   wsi.Window
	rend  *engine.Onscreen
	scene *puppet.Scene
	state engine.FrameState
	title string
	quit  bool
	fps   fpsCounter

	dragging bool
	lastX    int
	lastY    int
}

// run renders frames until the window is closed or the
// user quits. Render errors are fatal.
func (a *app) run() error {
	wsi.SetWindowHandler(a)
	wsi.SetKeyboardHandler(a)
	wsi.SetPointerHandler(a)
	a.fps.reset(time.Now())
	for !a.quit && !a.win.ShouldClose() {
		wsi.Dispatch()
		if err := a.rend.Render(a.scene.Root, a.state); err != nil {
			return err
		}
		a.rend.Present()
		a.frame(time.Now())
	}
	return nil
}

// frame updates the debug overlay after a frame is
// presented.
func (a *app) frame(now time.Time) {
	fps, ok := a.fps.tick(now)
	if ok && a.state.ShowOverlay && a.win != nil {
		a.win.SetTitle(overlayTitle(a.title, fps, a.scene.Selected()))
	}
}

func overlayTitle(title string, fps float64, sel *node.Node) string {
	if sel == nil {
		return fmt.Sprintf("%s | %.0f fps", title, fps)
	}
	return fmt.Sprintf("%s | %.0f fps | %s", title, fps, sel.Name)
}

// key applies the action bound to a key press.
func (a *app) key(k wsi.Key) {
	switch k {
	case wsi.KeyEsc, wsi.KeyQ:
		a.quit = true
	case wsi.KeyTab:
		if n := a.scene.SelectNext(); n != nil {
			slog.Debug("selected", "node", n.String())
		}
	case wsi.KeySpace:
		a.scene.ClearSelection()
	case wsi.KeyUp:
		a.scene.Articulate(node.X, -articulateStep)
	case wsi.KeyDown:
		a.scene.Articulate(node.X, articulateStep)
	case wsi.KeyLeft:
		a.scene.Articulate(node.Y, -articulateStep)
	case wsi.KeyRight:
		a.scene.Articulate(node.Y, articulateStep)
	case wsi.KeyG:
		a.state.ShowGizmo = !a.state.ShowGizmo
	case wsi.KeyO:
		a.state.ShowOverlay = !a.state.ShowOverlay
		if !a.state.ShowOverlay && a.win != nil {
			a.win.SetTitle(a.title)
		}
	}
}

// drag rotates the scene root about its own origin.
func (a *app) drag(dx, dy int) {
	if a.scene.Root == nil || (dx == 0 && dy == 0) {
		return
	}
	a.scene.Root.RotateLocal(node.Y, float32(dx)*dragScale)
	a.scene.Root.RotateLocal(node.X, float32(dy)*dragScale)
}

// WindowClose implements wsi.WindowHandler.
func (a *app) WindowClose(wsi.Window) { a.quit = true }

// WindowResize implements wsi.WindowHandler.
func (a *app) WindowResize(_ wsi.Window, width, height int) {
	if a.rend != nil {
		a.rend.Resize(width, height)
	}
}

// KeyboardIn implements wsi.KeyboardHandler.
func (a *app) KeyboardIn(wsi.Window) {}

// KeyboardOut implements wsi.KeyboardHandler.
func (a *app) KeyboardOut(wsi.Window) { a.dragging = false }

// KeyboardKey implements wsi.KeyboardHandler.
func (a *app) KeyboardKey(key wsi.Key, pressed bool, _ wsi.Modifier) {
	if pressed {
		a.key(key)
	}
}

// PointerIn implements wsi.PointerHandler.
func (a *app) PointerIn(_ wsi.Window, x, y int) { a.lastX, a.lastY = x, y }

// PointerOut implements wsi.PointerHandler.
func (a *app) PointerOut(wsi.Window) { a.dragging = false }

// PointerMotion implements wsi.PointerHandler.
func (a *app) PointerMotion(x, y int) {
	if a.dragging {
		a.drag(x-a.lastX, y-a.lastY)
	}
	a.lastX, a.lastY = x, y
}

// PointerButton implements wsi.PointerHandler.
func (a *app) PointerButton(btn wsi.Button, pressed bool, x, y int) {
	if btn == wsi.BtnLeft {
		a.dragging = pressed
		a.lastX, a.lastY = x, y
	}
}

// fpsCounter measures the frame rate once per second.
type fpsCounter struct {
	frames int
	since  time.Time
}

func (c *fpsCounter) reset(now time.Time) {
	c.frames = 0
	c.since = now
}

// tick counts a frame. Once at least a second has
// passed since the last measurement, it returns the
// frame rate over that period and true.
func (c *fpsCounter) tick(now time.Time) (fps float64, ok bool) {
	c.frames++
	d := now.Sub(c.since)
	if d < time.Second {
		return 0, false
	}
	fps = float64(c.frames) / d.Seconds()
	c.reset(now)
	return fps, true
}
