// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package mesh implements the mesh data representation used
// in the engine's renderer.
//
// All meshes are consolidated into a single packed buffer of
// non-indexed triangles. A Registry maps each mesh ID to the
// range of vertices that it occupies in the buffer.
package mesh

import (
	"errors"
	"fmt"
	"sort"
)

const prefix = "mesh: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// ErrUnknownMesh means that a mesh ID is not present in
// a Registry.
var ErrUnknownMesh = errors.New(prefix + "unknown mesh ID")

// Semantic specifies the intended use of a vertex attribute.
type Semantic int

// Semantics.
const (
	Position Semantic = iota
	Normal

	MaxSemantic = iota
)

// String implements fmt.Stringer.
func (s Semantic) String() string {
	switch s {
	case Position:
		return "Position"
	case Normal:
		return "Normal"
	default:
		return "[!] invalid Semantic value"
	}
}

// Components returns the number of float32 components
// that each vertex stores for s.
func (s Semantic) Components() int {
	switch s {
	case Position, Normal:
		return 3
	default:
		panic("invalid Semantic value")
	}
}

// Batch is the range of vertices of a single mesh within
// the packed buffer.
type Batch struct {
	Start int
	Count int
}

// Registry stores the packed vertex data of all meshes
// and the Batch of each one.
// It is read-only once created.
type Registry struct {
	data    [MaxSemantic][]float32
	batches map[string]Batch
}

// Lookup returns the Batch of the mesh identified by id.
// It returns an error wrapping ErrUnknownMesh if no such
// mesh exists.
func (r *Registry) Lookup(id string) (Batch, error) {
	if b, ok := r.batches[id]; ok {
		return b, nil
	}
	return Batch{}, fmt.Errorf("%w: %q", ErrUnknownMesh, id)
}

// IDs returns the sorted IDs of all meshes in r.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.batches))
	for id := range r.batches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of meshes in r.
func (r *Registry) Len() int { return len(r.batches) }

// Vertices returns the total number of vertices in r.
func (r *Registry) Vertices() int { return len(r.data[Position]) / Position.Components() }

// Data returns the packed data of semantic s.
// The slice aliases r's storage and must not be modified.
func (r *Registry) Data(s Semantic) []float32 { return r.data[s] }
