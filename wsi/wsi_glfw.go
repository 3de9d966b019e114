// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW must be called from the main thread.
	runtime.LockOSThread()
	if err := initGLFW(); err != nil {
		slog.Debug("wsi: GLFW unavailable", "err", err)
		initDummy()
	}
}

// initGLFW initializes the GLFW platform.
func initGLFW() error {
	if err := glfw.Init(); err != nil {
		return err
	}
	for _, p := range [...]struct {
		code glfw.Key
		key  Key
	}{
		{glfw.Key1, Key1}, {glfw.Key2, Key2}, {glfw.Key3, Key3},
		{glfw.Key4, Key4}, {glfw.Key5, Key5}, {glfw.Key6, Key6},
		{glfw.Key7, Key7}, {glfw.Key8, Key8}, {glfw.Key9, Key9},
		{glfw.Key0, Key0},
		{glfw.KeyBackspace, KeyBackspace}, {glfw.KeyTab, KeyTab},
		{glfw.KeyQ, KeyQ}, {glfw.KeyW, KeyW}, {glfw.KeyE, KeyE},
		{glfw.KeyR, KeyR}, {glfw.KeyT, KeyT}, {glfw.KeyY, KeyY},
		{glfw.KeyU, KeyU}, {glfw.KeyI, KeyI}, {glfw.KeyO, KeyO},
		{glfw.KeyP, KeyP}, {glfw.KeyA, KeyA}, {glfw.KeyS, KeyS},
		{glfw.KeyD, KeyD}, {glfw.KeyF, KeyF}, {glfw.KeyG, KeyG},
		{glfw.KeyH, KeyH}, {glfw.KeyJ, KeyJ}, {glfw.KeyK, KeyK},
		{glfw.KeyL, KeyL}, {glfw.KeyEnter, KeyReturn},
		{glfw.KeyLeftShift, KeyLShift}, {glfw.KeyZ, KeyZ},
		{glfw.KeyX, KeyX}, {glfw.KeyC, KeyC}, {glfw.KeyV, KeyV},
		{glfw.KeyB, KeyB}, {glfw.KeyN, KeyN}, {glfw.KeyM, KeyM},
		{glfw.KeyRightShift, KeyRShift}, {glfw.KeyLeftControl, KeyLCtrl},
		{glfw.KeyLeftAlt, KeyLAlt}, {glfw.KeySpace, KeySpace},
		{glfw.KeyRightAlt, KeyRAlt}, {glfw.KeyRightControl, KeyRCtrl},
		{glfw.KeyEscape, KeyEsc},
		{glfw.KeyF1, KeyF1}, {glfw.KeyF2, KeyF2}, {glfw.KeyF3, KeyF3},
		{glfw.KeyF4, KeyF4}, {glfw.KeyF5, KeyF5}, {glfw.KeyF6, KeyF6},
		{glfw.KeyF7, KeyF7}, {glfw.KeyF8, KeyF8}, {glfw.KeyF9, KeyF9},
		{glfw.KeyF10, KeyF10}, {glfw.KeyF11, KeyF11}, {glfw.KeyF12, KeyF12},
		{glfw.KeyHome, KeyHome}, {glfw.KeyEnd, KeyEnd},
		{glfw.KeyPageUp, KeyPageUp}, {glfw.KeyPageDown, KeyPageDown},
		{glfw.KeyUp, KeyUp}, {glfw.KeyDown, KeyDown},
		{glfw.KeyLeft, KeyLeft}, {glfw.KeyRight, KeyRight},
	} {
		keymap[p.code] = p.key
	}
	newWindow = newWindowGLFW
	dispatch = glfw.PollEvents
	setAppName = func(string) {}
	terminate = glfw.Terminate
	platform = GLFW
	return nil
}

// windowGLFW implements Window.
type windowGLFW struct {
	win   *glfw.Window
	title string
}

// newWindowGLFW creates a new window with an OpenGL 4.1
// core context.
func newWindowGLFW(width, height int, title string) (Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	win := &windowGLFW{win: w, title: title}
	w.SetCloseCallback(func(*glfw.Window) {
		if windowHandler != nil {
			windowHandler.WindowClose(win)
		}
	})
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if windowHandler != nil {
			windowHandler.WindowResize(win, width, height)
		}
	})
	w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if keyboardHandler == nil {
			return
		}
		if focused {
			keyboardHandler.KeyboardIn(win)
		} else {
			keyboardHandler.KeyboardOut(win)
		}
	})
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if keyboardHandler != nil {
			keyboardHandler.KeyboardKey(keyFrom(int(key)), action != glfw.Release, modifierFrom(mods))
		}
	})
	w.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		if pointerHandler == nil {
			return
		}
		if entered {
			x, y := w.GetCursorPos()
			pointerHandler.PointerIn(win, int(x), int(y))
		} else {
			pointerHandler.PointerOut(win)
		}
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if pointerHandler != nil {
			pointerHandler.PointerMotion(int(x), int(y))
		}
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if pointerHandler != nil {
			x, y := w.GetCursorPos()
			pointerHandler.PointerButton(buttonFrom(btn), action == glfw.Press, int(x), int(y))
		}
	})
	return win, nil
}

func modifierFrom(mods glfw.ModifierKey) (m Modifier) {
	if mods&glfw.ModCapsLock != 0 {
		m |= ModCapsLock
	}
	if mods&glfw.ModShift != 0 {
		m |= ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= ModAlt
	}
	return
}

func buttonFrom(btn glfw.MouseButton) Button {
	switch btn {
	case glfw.MouseButtonLeft:
		return BtnLeft
	case glfw.MouseButtonRight:
		return BtnRight
	case glfw.MouseButtonMiddle:
		return BtnMiddle
	default:
		return BtnUnknown
	}
}

// Map implements Window.
func (w *windowGLFW) Map() error {
	w.win.Show()
	return nil
}

// Unmap implements Window.
func (w *windowGLFW) Unmap() error {
	w.win.Hide()
	return nil
}

// Resize implements Window.
func (w *windowGLFW) Resize(width, height int) error {
	w.win.SetSize(width, height)
	return nil
}

// SetTitle implements Window.
func (w *windowGLFW) SetTitle(title string) error {
	w.win.SetTitle(title)
	w.title = title
	return nil
}

// Close implements Window.
func (w *windowGLFW) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	closeWindow(w)
}

// Width implements Window.
func (w *windowGLFW) Width() int {
	width, _ := w.win.GetSize()
	return width
}

// Height implements Window.
func (w *windowGLFW) Height() int {
	_, height := w.win.GetSize()
	return height
}

// Title implements Window.
func (w *windowGLFW) Title() string { return w.title }

// FramebufferSize implements Window.
func (w *windowGLFW) FramebufferSize() (width, height int) { return w.win.GetFramebufferSize() }

// MakeCurrent implements Window.
func (w *windowGLFW) MakeCurrent() { w.win.MakeContextCurrent() }

// SwapBuffers implements Window.
func (w *windowGLFW) SwapBuffers() { w.win.SwapBuffers() }

// ShouldClose implements Window.
func (w *windowGLFW) ShouldClose() bool { return w.win.ShouldClose() }
