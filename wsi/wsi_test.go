// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"testing"
	"time"
)

func TestKeyFrom(t *testing.T) {
	for _, x := range [...]int{-1, maxKeyCode, maxKeyCode + 100} {
		if k := keyFrom(x); k != KeyUnknown {
			t.Fatalf("keyFrom(%d)\nhave %v\nwant KeyUnknown", x, k)
		}
	}
	if PlatformInUse() == GLFW {
		// GLFW_KEY_ESCAPE, GLFW_KEY_TAB, GLFW_KEY_SPACE.
		for code, want := range map[int]Key{256: KeyEsc, 258: KeyTab, 32: KeySpace, 265: KeyUp} {
			if k := keyFrom(code); k != want {
				t.Fatalf("keyFrom(%d)\nhave %v\nwant %v", code, k, want)
			}
		}
	}
}

func TestWSI(t *testing.T) {
	SetWindowHandler(E{t})
	SetKeyboardHandler(E{t})
	SetPointerHandler(E{t})
	switch PlatformInUse() {
	case None:
		win, err := NewWindow(480, 360, "Will fail")
		if win != nil || err != errMissing {
			t.Fatalf("NewWindow: win, err\nhave %v, %v\nwant nil, %v", win, err, errMissing)
		}
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
		// Dummy Dispatch does nothing.
		Dispatch()
		// Dummy SetAppName does nothing.
		SetAppName("Won't be displayed")
	default:
		if _, err := NewWindow(0, 360, "Bad size"); err == nil {
			t.Fatal("NewWindow: unexpected nil error for zero width")
		}
		win, err := NewWindow(480, 360, "My window")
		if err != nil {
			t.Logf("NewWindow (error): %v", err)
			return
		}
		if n := len(Windows()); n != 1 {
			t.Fatalf("len(Windows())\nhave %v\nwant 1", n)
		}
		win.Map()
		for i := 0; i < 20; i++ {
			Dispatch()
			time.Sleep(time.Millisecond * 16)
		}
		win.Resize(600, 300)
		title := time.Now().Format(time.RFC1123)
		win.SetTitle(title)
		if s := win.Title(); s != title {
			t.Fatalf("Window.Title\nhave %s\nwant %s", s, title)
		}
		if w, h := win.FramebufferSize(); w <= 0 || h <= 0 {
			t.Fatalf("Window.FramebufferSize: invalid size %dx%d", w, h)
		}
		if win.ShouldClose() {
			t.Fatal("Window.ShouldClose: unexpected true")
		}
		win.Unmap()
		win.Close()
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
	}
}

type E struct{ t *testing.T }

func (e E) WindowClose(win Window) { e.t.Logf("E.WindowClose: %v", win) }

func (e E) WindowResize(win Window, newWidth, newHeight int) {
	e.t.Logf("E.WindowResize: %v, %d, %d", win, newWidth, newHeight)
}

func (e E) KeyboardIn(win Window)  { e.t.Logf("E.KeyboardIn: %v", win) }
func (e E) KeyboardOut(win Window) { e.t.Logf("E.KeyboardOut: %v", win) }

func (e E) KeyboardKey(key Key, pressed bool, modMask Modifier) {
	e.t.Logf("E.KeyboardKey: %d, %t, %x", key, pressed, modMask)
}

func (e E) PointerIn(win Window, x, y int) { e.t.Logf("E.PointerIn: %v, %d, %d", win, x, y) }
func (e E) PointerOut(win Window)          { e.t.Logf("E.PointerOut: %v", win) }
func (e E) PointerMotion(newX, newY int)   { e.t.Logf("E.PointerMotion: %d, %d", newX, newY) }

func (e E) PointerButton(btn Button, pressed bool, x, y int) {
	e.t.Logf("E.PointerButton: %d, %t, %d, %d", btn, pressed, x, y)
}
