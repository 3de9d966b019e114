// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source is an OBJ stream and the ID that identifies
// its mesh.
type Source struct {
	ID string
	R  io.Reader
}

// Consolidate decodes every source and packs the results
// into a new Registry. Meshes are stored in the order
// given; IDs must be unique.
func Consolidate(srcs ...Source) (*Registry, error) {
	r := &Registry{batches: make(map[string]Batch, len(srcs))}
	for _, src := range srcs {
		if _, dup := r.batches[src.ID]; dup {
			return nil, newErr("duplicate mesh ID " + src.ID)
		}
		obj, err := DecodeOBJ(src.R)
		if err != nil {
			return nil, err
		}
		pos, norm := obj.Triangles()
		b := Batch{
			Start: r.Vertices(),
			Count: len(pos) / Position.Components(),
		}
		r.data[Position] = append(r.data[Position], pos...)
		r.data[Normal] = append(r.data[Normal], norm...)
		r.batches[src.ID] = b
	}
	return r, nil
}

// ID derives a mesh ID from a file path: the base name
// without its extension.
func ID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load consolidates the OBJ files at the given paths.
// Each mesh is identified by ID(path).
func Load(paths ...string) (*Registry, error) {
	srcs := make([]Source, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		srcs = append(srcs, Source{ID: ID(p), R: f})
	}
	return Consolidate(srcs...)
}
