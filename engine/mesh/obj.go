// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gviegas/puppet/linear"
)

// Obj is a decoded Wavefront OBJ mesh.
// Only geometry is kept: positions, normals and faces.
type Obj struct {
	Positions []linear.V3
	Normals   []linear.V3
	Faces     [][]FaceVertex
}

// FaceVertex indexes a face corner.
// Indices are zero-based; Normal is -1 when the face
// does not specify one.
type FaceVertex struct {
	Position int
	Normal   int
}

func newObjErr(line int, reason string) error {
	return newErr(fmt.Sprintf("obj: line %d: %s", line, reason))
}

// DecodeOBJ decodes an OBJ stream.
// Directives other than v, vn and f are ignored.
func DecodeOBJ(r io.Reader) (*Obj, error) {
	var obj Obj
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn":
			if len(fields) < 4 {
				return nil, newObjErr(line, "expected 3 coordinates")
			}
			var v linear.V3
			for i := range v {
				x, err := strconv.ParseFloat(fields[1+i], 32)
				if err != nil {
					return nil, newObjErr(line, err.Error())
				}
				v[i] = float32(x)
			}
			if fields[0] == "v" {
				obj.Positions = append(obj.Positions, v)
			} else {
				obj.Normals = append(obj.Normals, v)
			}
		case "f":
			if len(fields) < 4 {
				return nil, newObjErr(line, "face has less than 3 vertices")
			}
			face := make([]FaceVertex, 0, len(fields)-1)
			for _, s := range fields[1:] {
				fv, err := obj.faceVertex(s)
				if err != nil {
					return nil, newObjErr(line, err.Error())
				}
				face = append(face, fv)
			}
			obj.Faces = append(obj.Faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(obj.Faces) == 0 {
		return nil, newErr("obj: no faces")
	}
	return &obj, nil
}

// faceVertex parses v, v/t, v//n or v/t/n.
// Negative indices are relative to the end of the
// lists decoded so far.
func (o *Obj) faceVertex(s string) (fv FaceVertex, err error) {
	idx := strings.Split(s, "/")
	if fv.Position, err = resolve(idx[0], len(o.Positions)); err != nil {
		return
	}
	fv.Normal = -1
	if len(idx) == 3 && idx[2] != "" {
		fv.Normal, err = resolve(idx[2], len(o.Normals))
	}
	return
}

func resolve(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	switch {
	case err != nil:
		return 0, err
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range", i)
	}
}

// Triangles converts o into non-indexed triangles.
// Polygons are triangulated as fans. Corners with no
// normal use the face normal of their triangle.
// It returns 3 components per vertex for each semantic.
func (o *Obj) Triangles() (pos, norm []float32) {
	for _, face := range o.Faces {
		for i := 1; i+1 < len(face); i++ {
			tri := [3]FaceVertex{face[0], face[i], face[i+1]}
			var p [3]linear.V3
			for j := range tri {
				p[j] = o.Positions[tri[j].Position]
			}
			var e1, e2, flat linear.V3
			e1.Sub(&p[1], &p[0])
			e2.Sub(&p[2], &p[0])
			flat.Cross(&e1, &e2)
			if flat.Len() > 0 {
				flat.Norm(&flat)
			}
			for j := range tri {
				n := flat
				if tri[j].Normal >= 0 {
					n = o.Normals[tri[j].Normal]
				}
				pos = append(pos, p[j][:]...)
				norm = append(norm, n[:]...)
			}
		}
	}
	return
}
