// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene imports node graphs from scene files.
//
// Two formats are supported: YAML puppet descriptions
// (.yaml, .yml) and glTF 2.0 (.gltf, .glb). Either way,
// the result is a single root node whose descendants
// have IDs assigned in creation order, starting at 0.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gviegas/puppet/node"
)

func newErr(reason string) error { return errors.New("scene: " + reason) }

// ErrFormat means that a scene file's extension does
// not name a supported format.
var ErrFormat = errors.New("scene: unknown format")

// Format identifies a scene file format.
type Format int

// Formats.
const (
	YAML Format = iota
	GLTF
	GLB
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case GLTF:
		return "gltf"
	case GLB:
		return "glb"
	default:
		return "[!] invalid Format value"
	}
}

// FormatOf returns the format of the file at path,
// given its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".gltf":
		return GLTF, nil
	case ".glb":
		return GLB, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrFormat, path)
	}
}

// Load loads the scene file at path.
func Load(path string) (*node.Node, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	root, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return root, nil
}

// Decode decodes a scene of the given format from r.
func Decode(r io.Reader, f Format) (*node.Node, error) {
	switch f {
	case YAML:
		return decodeYAML(r)
	case GLTF:
		return decodeGLTF(r, false)
	case GLB:
		return decodeGLTF(r, true)
	default:
		return nil, ErrFormat
	}
}

// builder creates nodes with sequential IDs.
type builder struct {
	next int
}

func (b *builder) node(name string, kind node.Kind) *node.Node {
	n := node.New(b.next, name, kind)
	b.next++
	return n
}
