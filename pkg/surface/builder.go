package surface

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/fnmesh/fnmesh/pkg/fmath"
	"github.com/fnmesh/fnmesh/pkg/sampler"
)

// Builder assembles a mesh from a mirrored cross-section ring and, in the
// layered regime, a height ring that modulates vertical offset and radial
// scale per layer.
//
// The height ring must hold at least Layers samples when Layers > 1; the
// builder controls the sampling budgets of a correct caller, so a shorter
// ring is a contract violation and panics rather than returning an error.
type Builder struct {
	// Profile is the closed cross-section ring, interpreted as (x, z) pairs.
	Profile sampler.Ring

	// ProfileMax is the sampler's midpoint maximum for the profile,
	// used to normalize the V texture coordinate.
	ProfileMax float32

	// ProfileStart and ProfileEnd are the profile's sampling domain,
	// used to normalize the U texture coordinate.
	ProfileStart, ProfileEnd float32

	// Height is the unmirrored height ring. Ignored when Layers == 1.
	Height sampler.Ring

	// HeightStart and HeightEnd are the height domain; they place the
	// bottom and top pole vertices.
	HeightStart, HeightEnd float32

	// RelativeHeight in [0,1] blends between a flat profile (0) and the
	// full height shape (1). Exactly 1 is valid and unclamped.
	RelativeHeight float32

	// Layers is the number of vertex rings stacked along the y axis.
	Layers int
}

// Build emits the vertex and index buffers.
//
// Vertex order is: bottom pole, then Layers rings of len(Profile) vertices
// each, then the top pole. Indices are emitted bottom cap first, then the
// side walls, then the top cap, all wound outward. A single-layer surface
// emits only the top fan: the bottom pole vertex exists but is
// unreferenced, and the fan is the whole surface.
//
// Per-vertex normals in the layered regime blend the horizontal and
// vertical tangent normals with a fixed 2/3 attenuation. This is a
// heuristic, not an analytic surface normal; use RecomputeNormals for
// lighting-accurate results.
func (b *Builder) Build() (*Mesh, error) {
	if b.Layers < 1 {
		return nil, fmt.Errorf("%w: layer count %d, need at least 1", sampler.ErrInvalidParameter, b.Layers)
	}
	if b.RelativeHeight < 0 || b.RelativeHeight > 1 {
		return nil, fmt.Errorf("%w: relative height %v outside [0, 1]", sampler.ErrInvalidParameter, b.RelativeHeight)
	}
	if len(b.Profile) < 3 {
		return nil, fmt.Errorf("%w: profile ring has %d points, need at least 3", sampler.ErrInvalidParameter, len(b.Profile))
	}
	if b.Layers > 1 && len(b.Height) < b.Layers {
		panic(fmt.Sprintf("surface: height ring has %d samples, layer count is %d", len(b.Height), b.Layers))
	}

	n := len(b.Profile)
	rh := b.RelativeHeight
	width := b.ProfileEnd - b.ProfileStart

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, n*b.Layers+2),
		Indices:  make([]uint32, 0, b.indexCount(n)),
		Bounds: Bounds{
			Min: [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
			Max: [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
		},
	}

	push := func(v Vertex) {
		updateBounds(&mesh.Bounds, v.Position)
		mesh.Vertices = append(mesh.Vertices, v)
	}

	// Bottom pole.
	push(Vertex{
		Position: [3]float32{0, b.HeightStart * rh, 0},
		Normal:   [3]float32{0, -1, 0},
		TexCoord: [2]float32{0.5, 0.5},
	})

	for li := 0; li < b.Layers; li++ {
		y := rh * (b.HeightStart + b.HeightEnd) / 2
		scale := float32(1)
		var hSlope float32
		if b.Layers > 1 {
			h := b.Height[li]
			y = h.X * rh
			scale = 1 - rh + rh*h.Y
			hSlope = h.Slope
		}

		for k, p := range b.Profile {
			x := p.X * scale
			z := p.Y * scale

			// Horizontal tangent normal; the z component flips on the
			// mirrored half of the ring.
			nh := fmath.Vec3{X: -math32.Tan(p.Slope), Y: 0, Z: 1}.Normalize()
			if k >= n/2 {
				nh.Z = -nh.Z
			}
			var normal [3]float32
			if b.Layers > 1 {
				nv := fmath.Vec3{X: 1, Y: -math32.Tan(hSlope), Z: 1}.Normalize()
				normal = [3]float32{nh.X * 2 / 3, nv.Y, nh.Z * 2 / 3}
			} else {
				normal = nh.Array()
			}

			// UVs track the scaled position so cap texturing follows the
			// current layer radius.
			u := (x + math32.Abs(b.ProfileStart)) / width
			v := (z + b.ProfileMax) / (2 * b.ProfileMax)

			push(Vertex{
				Position: [3]float32{x, y, z},
				Normal:   normal,
				TexCoord: [2]float32{u, v},
			})
		}
	}

	// Top pole.
	push(Vertex{
		Position: [3]float32{0, b.HeightEnd * rh, 0},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.5, 0.5},
	})

	b.buildIndices(mesh, n)
	return mesh, nil
}

// buildIndices emits bottom cap, side walls, then top cap, each wound so
// the face normal points out of the solid.
func (b *Builder) buildIndices(mesh *Mesh, n int) {
	// Bottom cap: fan from pole 0 to the first ring. A single-layer surface
	// has no interior to cap; its top fan is the whole surface.
	if b.Layers > 1 {
		for i := 0; i < n; i++ {
			mesh.Indices = append(mesh.Indices,
				uint32((i+1)%n+1), uint32(i+1), 0)
		}
	}

	// Side walls: one quad per ring segment per adjacent layer pair, split
	// into two triangles. The last segment wraps back to the layer's first
	// ring vertex.
	for seg := 1; seg < b.Layers; seg++ {
		for i := 0; i < n; i++ {
			tl := uint32(seg*n + i + 1)
			tr := uint32(seg*n + i + 2)
			bl := uint32((seg-1)*n + i + 1)
			br := uint32((seg-1)*n + i + 2)
			if i == n-1 {
				tr = uint32(seg*n + 1)
				br = uint32((seg-1)*n + 1)
			}
			mesh.Indices = append(mesh.Indices, br, tr, tl, bl, br, tl)
		}
	}

	// Top cap: fan from the last ring to the top pole.
	top := uint32(b.Layers*n + 1)
	for i := 0; i < n; i++ {
		mesh.Indices = append(mesh.Indices,
			uint32((b.Layers-1)*n+i+1), uint32((b.Layers-1)*n+(i+1)%n+1), top)
	}
}

func (b *Builder) indexCount(n int) int {
	if b.Layers == 1 {
		return 3 * n
	}
	return 3*2*n + 6*n*(b.Layers-1)
}
