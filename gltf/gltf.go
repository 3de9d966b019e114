// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gltf implements serialization of the glTF 2.0
// subset that describes node hierarchies.
//
// Geometry is not read from glTF buffers. Instead, a
// mesh's name identifies a mesh that is provided
// separately.
package gltf

import (
	"encoding/json"
	"io"
)

// Root glTF object.
type GLTF struct {
	ExtensionsUsed     []string `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string `json:"extensionsRequired,omitempty"`
	Asset              struct {
		Copyright  string `json:"copyright,omitempty"`
		Generator  string `json:"generator,omitempty"`
		Version    string `json:"version"`
		MinVersion string `json:"minVersion,omitempty"`
		Extensions any    `json:"extensions,omitempty"`
		Extras     any    `json:"extras,omitempty"`
	} `json:"asset"`
	Materials  []Material `json:"materials,omitempty"`
	Meshes     []Mesh     `json:"meshes,omitempty"`
	Nodes      []Node     `json:"nodes,omitempty"`
	Scene      *int64     `json:"scene,omitempty"`
	Scenes     []Scene    `json:"scenes,omitempty"`
	Extensions any        `json:"extensions,omitempty"`
	Extras     any        `json:"extras,omitempty"`
}

// glTF.materials' element.
type Material struct {
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	EmissiveFactor       *[3]float32           `json:"emissiveFactor,omitempty"` // Default is [0, 0, 0].
	AlphaMode            string                `json:"alphaMode,omitempty"`      // Default is "OPAQUE".
	DoubleSided          bool                  `json:"doubleSided,omitempty"`    // Default is false.
	Name                 string                `json:"name,omitempty"`
	Extensions           any                   `json:"extensions,omitempty"`
	Extras               json.RawMessage       `json:"extras,omitempty"`
}

// material.pbrMetallicRoughness.
type PBRMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"` // Default is [1, 1, 1, 1].
	MetallicFactor  *float32    `json:"metallicFactor,omitempty"`  // Default is 1.
	RoughnessFactor *float32    `json:"roughnessFactor,omitempty"` // Default is 1.
	Extensions      any         `json:"extensions,omitempty"`
	Extras          any         `json:"extras,omitempty"`
}

// material.alphaMode values.
const (
	OPAQUE = "OPAQUE"
	MASK   = "MASK"
	BLEND  = "BLEND"
)

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
	Extensions any         `json:"extensions,omitempty"`
	Extras     any         `json:"extras,omitempty"`
}

// mesh.primitives' element.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is 4.
	Extensions any              `json:"extensions,omitempty"`
	Extras     any              `json:"extras,omitempty"`
}

// mesh.primitive.mode values.
const (
	POINTS = iota
	LINES
	LINE_LOOP
	LINE_STRIP
	TRIANGLES
	TRIANGLE_STRIP
	TRIANGLE_FAN
)

// glTF.nodes' element.
type Node struct {
	Children    []int64         `json:"children,omitempty"`
	Matrix      *[16]float32    `json:"matrix,omitempty"` // Default is identity.
	Mesh        *int64          `json:"mesh,omitempty"`
	Rotation    *[4]float32     `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32     `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32     `json:"translation,omitempty"` // Default is [0, 0, 0].
	Name        string          `json:"name,omitempty"`
	Extensions  any             `json:"extensions,omitempty"`
	Extras      json.RawMessage `json:"extras,omitempty"`
}

// glTF.scenes' element.
type Scene struct {
	Nodes      []int64 `json:"nodes,omitempty"`
	Name       string  `json:"name,omitempty"`
	Extensions any     `json:"extensions,omitempty"`
	Extras     any     `json:"extras,omitempty"`
}

// NodeExtras is the application-specific data of a
// node. It describes an articulation.
//
//	"extras": {"joint": {"x": [min, init, max], "y": [min, init, max]}}
type NodeExtras struct {
	Joint *struct {
		X *[3]float32 `json:"x,omitempty"`
		Y *[3]float32 `json:"y,omitempty"`
	} `json:"joint,omitempty"`
}

// MaterialExtras is the application-specific data of a
// material. It describes Phong specular terms.
//
//	"extras": {"ks": [r, g, b], "shininess": s}
type MaterialExtras struct {
	Ks        *[3]float32 `json:"ks,omitempty"`
	Shininess *float32    `json:"shininess,omitempty"`
}

// NodeExtras decodes n.Extras.
// Missing or non-object extras yield the zero value.
func (n *Node) NodeExtras() (x NodeExtras, err error) {
	err = decodeExtras(n.Extras, &x)
	return
}

// MaterialExtras decodes m.Extras.
// Missing or non-object extras yield the zero value.
func (m *Material) MaterialExtras() (x MaterialExtras, err error) {
	err = decodeExtras(m.Extras, &x)
	return
}

func decodeExtras(raw json.RawMessage, v any) error {
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return newErr("invalid extras: " + err.Error())
	}
	return nil
}

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error {
	enc := json.NewEncoder(w)
	err := enc.Encode(gltf)
	if err != nil {
		return err
	}
	return nil
}

// Decode decodes r into a new GLTF instance.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	dec := json.NewDecoder(r)
	err := dec.Decode(&gltf)
	if err != nil {
		return nil, err
	}
	return &gltf, nil
}
