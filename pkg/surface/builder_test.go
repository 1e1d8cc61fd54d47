package surface

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnmesh/fnmesh/pkg/fmath"
	"github.com/fnmesh/fnmesh/pkg/sampler"
)

func circle(x float32) float32 {
	return math32.Sqrt(1 - x*x)
}

func constantOne(float32) float32 { return 1 }

// flatParams describes a single-layer polygon: the height domain is
// degenerate, so the height function is never evaluated.
func flatParams(profile sampler.Func, vertices int) Params {
	return Params{
		Profile:         profile,
		ProfileStart:    -1,
		ProfileEnd:      1,
		ProfileVertices: vertices,
		Height:          constantOne,
		HeightStart:     0,
		HeightEnd:       0,
		HeightVertices:  vertices,
		RelativeHeight:  1,
	}
}

// cylinderParams extrudes a constant profile along a constant height curve.
func cylinderParams() Params {
	return Params{
		Profile:         constantOne,
		ProfileStart:    -1,
		ProfileEnd:      1,
		ProfileVertices: 8,
		Height:          constantOne,
		HeightStart:     -1,
		HeightEnd:       1,
		HeightVertices:  5,
		RelativeHeight:  1,
	}
}

func sphereParams() Params {
	return Params{
		Profile:         circle,
		ProfileStart:    -1,
		ProfileEnd:      1,
		ProfileVertices: 8,
		Height:          circle,
		HeightStart:     -1,
		HeightEnd:       1,
		HeightVertices:  6,
		RelativeHeight:  1,
	}
}

func geometricNormal(m *Mesh, tri int) fmath.Vec3 {
	a := m.Vertices[m.Indices[tri*3]].Position
	b := m.Vertices[m.Indices[tri*3+1]].Position
	c := m.Vertices[m.Indices[tri*3+2]].Position
	pa := fmath.Vec3{X: a[0], Y: a[1], Z: a[2]}
	pb := fmath.Vec3{X: b[0], Y: b[1], Z: b[2]}
	pc := fmath.Vec3{X: c[0], Y: c[1], Z: c[2]}
	return pb.Sub(pa).Cross(pc.Sub(pa))
}

func TestGenerateFlatVertexCounts(t *testing.T) {
	// Square-ish polygon: f(x)=1 keeps both endpoints off the mirror axis,
	// so the mirrored ring holds 2*20 points, plus two poles.
	square, err := flatParams(constantOne, 20).Generate()
	require.NoError(t, err)
	assert.Len(t, square.Vertices, 42)
	assert.Equal(t, 40, square.TriangleCount(), "single fan covering the whole polygon")

	// Circle: both endpoints sit on the mirror axis and are trimmed once.
	disk, err := flatParams(circle, 20).Generate()
	require.NoError(t, err)
	assert.Len(t, disk.Vertices, 40)

	assert.Equal(t, len(disk.Vertices)+2, len(square.Vertices),
		"curvature moves the points but the totals differ only by the two trimmed seam vertices")

	require.NoError(t, square.Validate())
	require.NoError(t, disk.Validate())
}

func TestFlatMeshUsesSingleFan(t *testing.T) {
	m, err := flatParams(constantOne, 12).Generate()
	require.NoError(t, err)

	topPole := uint32(len(m.Vertices) - 1)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		assert.Equal(t, topPole, m.Indices[tri*3+2], "every flat triangle fans from the top pole")
	}
	for _, idx := range m.Indices {
		assert.NotZero(t, idx, "the bottom pole exists but is unreferenced in the flat regime")
	}
}

func TestFlatNormals(t *testing.T) {
	m, err := flatParams(constantOne, 12).Generate()
	require.NoError(t, err)

	assert.Equal(t, [3]float32{0, -1, 0}, m.Vertices[0].Normal)
	assert.Equal(t, [3]float32{0, 1, 0}, m.Vertices[len(m.Vertices)-1].Normal)
	for _, v := range m.Vertices[1 : len(m.Vertices)-1] {
		assert.Zero(t, v.Normal[1], "ring normals point outward, not up")
	}
}

func TestGenerateCylinderTopology(t *testing.T) {
	m, err := cylinderParams().Generate()
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	const n, layers = 16, 4 // mirrored ring of 2*8, HeightVertices-1 layers
	assert.Len(t, m.Vertices, n*layers+2)
	assert.Equal(t, 2*n+2*n*(layers-1), m.TriangleCount())
}

func TestManifoldClosureAndWinding(t *testing.T) {
	for name, p := range map[string]Params{
		"cylinder": cylinderParams(),
		"sphere":   sphereParams(),
	} {
		m, err := p.Generate()
		require.NoError(t, err, name)

		// In a closed, consistently wound triangle mesh every directed
		// edge appears exactly once and its reverse exactly once. A broken
		// wraparound at the last ring segment would leave unmatched edges.
		edges := make(map[[2]uint32]int)
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
			edges[[2]uint32{a, b}]++
			edges[[2]uint32{b, c}]++
			edges[[2]uint32{c, a}]++
		}
		for e, count := range edges {
			require.Equal(t, 1, count, "%s: directed edge %v duplicated", name, e)
			require.Equal(t, 1, edges[[2]uint32{e[1], e[0]}], "%s: directed edge %v has no opposing twin", name, e)
		}
	}
}

func TestCapOrientation(t *testing.T) {
	m, err := cylinderParams().Generate()
	require.NoError(t, err)

	const n = 16
	for tri := 0; tri < n; tri++ {
		assert.Negative(t, geometricNormal(m, tri).Y, "bottom cap triangle %d must face down", tri)
	}
	for tri := m.TriangleCount() - n; tri < m.TriangleCount(); tri++ {
		assert.Positive(t, geometricNormal(m, tri).Y, "top cap triangle %d must face up", tri)
	}
}

func TestSideWallsFaceOutward(t *testing.T) {
	m, err := cylinderParams().Generate()
	require.NoError(t, err)

	const n = 16
	for tri := n; tri < m.TriangleCount()-n; tri++ {
		normal := geometricNormal(m, tri)
		a := m.Vertices[m.Indices[tri*3]].Position
		b := m.Vertices[m.Indices[tri*3+1]].Position
		c := m.Vertices[m.Indices[tri*3+2]].Position
		radial := fmath.Vec3{
			X: (a[0] + b[0] + c[0]) / 3,
			Z: (a[2] + b[2] + c[2]) / 3,
		}
		assert.Positive(t, normal.Dot(radial), "wall triangle %d winds inward", tri)
	}
}

func TestRelativeHeightBlending(t *testing.T) {
	p := cylinderParams()

	p.RelativeHeight = 0.5
	m, err := p.Generate()
	require.NoError(t, err)
	assert.Equal(t, float32(-0.5), m.Vertices[0].Position[1], "bottom pole scales with relative height")
	assert.Equal(t, float32(-0.5), m.Vertices[1].Position[1], "first layer scales with relative height")
	assert.Equal(t, float32(0.5), m.Bounds.Max[1])

	// Zero collapses to the flat regime regardless of the height domain.
	p.RelativeHeight = 0
	m, err = p.Generate()
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 2*8+2)
	assert.Zero(t, m.Vertices[0].Position[1])
}

func TestCylinderBounds(t *testing.T) {
	m, err := cylinderParams().Generate()
	require.NoError(t, err)

	assert.Equal(t, Bounds{
		Min: [3]float32{-1, -1, -1},
		Max: [3]float32{1, 1, 1},
	}, m.Bounds)
}

func TestTexCoordsStayNormalized(t *testing.T) {
	m, err := flatParams(constantOne, 20).Generate()
	require.NoError(t, err)

	for i, v := range m.Vertices {
		assert.GreaterOrEqual(t, v.TexCoord[0], float32(0), "vertex %d u", i)
		assert.LessOrEqual(t, v.TexCoord[0], float32(1), "vertex %d u", i)
		assert.GreaterOrEqual(t, v.TexCoord[1], float32(0), "vertex %d v", i)
		assert.LessOrEqual(t, v.TexCoord[1], float32(1), "vertex %d v", i)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	a, err := sphereParams().Generate()
	require.NoError(t, err)
	b, err := sphereParams().Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateValidation(t *testing.T) {
	tests := map[string]func(*Params){
		"profile nil":          func(p *Params) { p.Profile = nil },
		"profile range":        func(p *Params) { p.ProfileStart, p.ProfileEnd = 1, 1 },
		"profile vertices":     func(p *Params) { p.ProfileVertices = 2 },
		"height range":         func(p *Params) { p.HeightStart, p.HeightEnd = 2, 1 },
		"height vertices":      func(p *Params) { p.HeightVertices = 2 },
		"relative height high": func(p *Params) { p.RelativeHeight = 1.5 },
		"relative height low":  func(p *Params) { p.RelativeHeight = -0.1 },
	}
	for name, mutate := range tests {
		p := cylinderParams()
		mutate(&p)
		m, err := p.Generate()
		assert.Error(t, err, name)
		assert.Nil(t, m, "%s: no partial mesh on failure", name)
	}
}

func TestBuilderRejectsBadLayerCount(t *testing.T) {
	profile, max, err := sampler.Sample(constantOne, -1, 1, 4, true)
	require.NoError(t, err)

	b := &Builder{
		Profile:      profile,
		ProfileMax:   max,
		ProfileStart: -1,
		ProfileEnd:   1,
	}
	_, err = b.Build()
	assert.ErrorIs(t, err, sampler.ErrInvalidParameter)
}

func TestBuilderPanicsOnRingMismatch(t *testing.T) {
	profile, max, err := sampler.Sample(constantOne, -1, 1, 4, true)
	require.NoError(t, err)
	height, _, err := sampler.Sample(constantOne, -1, 1, 3, false)
	require.NoError(t, err)

	b := &Builder{
		Profile:        profile,
		ProfileMax:     max,
		ProfileStart:   -1,
		ProfileEnd:     1,
		Height:         height,
		HeightStart:    -1,
		HeightEnd:      1,
		RelativeHeight: 1,
		Layers:         5,
	}
	assert.Panics(t, func() { _, _ = b.Build() })
}

func TestMeshValidate(t *testing.T) {
	m := &Mesh{
		Vertices: make([]Vertex, 3),
		Indices:  []uint32{0, 1, 2},
	}
	assert.NoError(t, m.Validate())

	m.Indices = []uint32{0, 1}
	assert.ErrorIs(t, m.Validate(), ErrMalformedMesh)

	m.Indices = []uint32{0, 1, 5}
	assert.ErrorIs(t, m.Validate(), ErrMalformedMesh)
}
