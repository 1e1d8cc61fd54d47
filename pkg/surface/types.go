// Package surface builds triangulated vertex and index buffers from sampled
// function rings. It produces flat polygons, extrusions, and solids of
// revolution; uploading and rendering the buffers is the caller's job.
package surface

import (
	"errors"
	"fmt"
)

// ErrMalformedMesh reports a mesh whose index buffer is inconsistent with
// its vertex buffer.
var ErrMalformedMesh = errors.New("surface: malformed mesh")

// Vertex represents a mesh vertex with position, normal, and texture
// coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh holds the complete mesh data ready for GPU upload: a flat vertex
// buffer and a uint32 triangle-list index buffer. A mesh is created fresh by
// each generation call and never mutated in place by the builder; the
// caller owns it after the call returns.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks index-buffer consistency: the index count must be a
// multiple of three and every index must address an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d not divisible by 3", ErrMalformedMesh, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d exceeds vertex count %d", ErrMalformedMesh, idx, i, n)
		}
	}
	return nil
}

func updateBounds(b *Bounds, p [3]float32) {
	for c := 0; c < 3; c++ {
		if p[c] < b.Min[c] {
			b.Min[c] = p[c]
		}
		if p[c] > b.Max[c] {
			b.Max[c] = p[c]
		}
	}
}
