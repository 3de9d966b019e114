// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package puppet loads articulated node graphs together
// with the meshes they draw, and implements the editing
// operations applied between frames.
package puppet

import (
	"log/slog"

	"github.com/gviegas/puppet/engine/mesh"
	"github.com/gviegas/puppet/node"
	"github.com/gviegas/puppet/scene"
)

// Scene is a node graph and its mesh registry.
type Scene struct {
	// Root is the root of the graph. It is nil if the
	// scene file could not be loaded.
	Root *node.Node
	// Meshes contains every mesh that Root may refer to.
	Meshes *mesh.Registry

	selected *node.Node
}

// Open loads the OBJ files at meshPaths and the scene
// file at scenePath.
// Mesh failures are returned as errors. A scene that
// cannot be loaded is logged and leaves Root nil, so
// the caller can still render an empty frame.
func Open(scenePath string, meshPaths ...string) (*Scene, error) {
	reg, err := mesh.Load(meshPaths...)
	if err != nil {
		return nil, err
	}
	slog.Info("meshes consolidated", "meshes", reg.Len(), "vertices", reg.Vertices())
	s := &Scene{Meshes: reg}
	if s.Root, err = scene.Load(scenePath); err != nil {
		slog.Error("could not open scene", "path", scenePath, "err", err)
		return s, nil
	}
	slog.Info("scene loaded", "path", scenePath, "nodes", s.Root.Count())
	if ids := s.Missing(); len(ids) > 0 {
		slog.Warn("scene refers to unknown meshes", "ids", ids)
	}
	return s, nil
}

// Missing returns the mesh IDs that geometry nodes
// refer to but s.Meshes does not contain, in
// traversal order and without repetition.
func (s *Scene) Missing() (ids []string) {
	if s.Root == nil {
		return
	}
	seen := make(map[string]bool)
	s.Root.ForEach(func(n *node.Node) bool {
		g, ok := n.Geometry()
		if !ok || seen[g.MeshID] {
			return true
		}
		seen[g.MeshID] = true
		if _, err := s.Meshes.Lookup(g.MeshID); err != nil {
			ids = append(ids, g.MeshID)
		}
		return true
	})
	return
}
