// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

// keyFrom returns the Key value that represents a
// platform-specific key code.
// Every supported platform must fill the keymap
// array with Key values.
func keyFrom(code int) Key {
	if code < 0 || code >= len(keymap) {
		return KeyUnknown
	}
	return keymap[code]
}

// The maximum key code plus one. It covers the GLFW
// key codes.
const maxKeyCode = 349

var keymap [maxKeyCode]Key
