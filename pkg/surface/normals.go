package surface

import "github.com/fnmesh/fnmesh/pkg/fmath"

// RecomputeNormals replaces the builder's blended heuristic normals with
// analytic ones: each triangle's geometric normal, weighted by its area,
// accumulated into its three corners and renormalized. Degenerate triangles
// contribute nothing.
func RecomputeNormals(m *Mesh) {
	acc := make([]fmath.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa := vec3(m.Vertices[a].Position)
		pb := vec3(m.Vertices[b].Position)
		pc := vec3(m.Vertices[c].Position)

		// Cross product magnitude is twice the triangle area, so the
		// unnormalized cross already carries the area weighting.
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		if face.Length() < 1e-10 {
			continue
		}
		acc[a] = acc[a].Add(face)
		acc[b] = acc[b].Add(face)
		acc[c] = acc[c].Add(face)
	}

	for i := range m.Vertices {
		n := acc[i].Normalize()
		if n == (fmath.Vec3{}) {
			continue // unreferenced or fully degenerate vertex keeps its normal
		}
		m.Vertices[i].Normal = n.Array()
	}
}

// SmoothNormals averages normals across vertices that share a position,
// eliminating hard seams where layers collapse onto a pole.
func SmoothNormals(m *Mesh) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup.
	posMap := make(map[[3]int32][]int)
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		key := [3]int32{
			int32(p[0] / epsilon),
			int32(p[1] / epsilon),
			int32(p[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}
		var sum fmath.Vec3
		for _, idx := range indices {
			sum = sum.Add(vec3(m.Vertices[idx].Normal))
		}
		avg := sum.Normalize()
		if avg == (fmath.Vec3{}) {
			avg = fmath.Vec3{Y: 1}
		}
		for _, idx := range indices {
			m.Vertices[idx].Normal = avg.Array()
		}
	}
}

func vec3(a [3]float32) fmath.Vec3 {
	return fmath.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
