package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnmesh/fnmesh/pkg/fmath"
)

func TestRecomputeNormalsUnitLength(t *testing.T) {
	m, err := cylinderParams().Generate()
	require.NoError(t, err)

	RecomputeNormals(m)
	for i, v := range m.Vertices {
		n := fmath.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
		assert.InDelta(t, 1, n.Length(), 1e-3, "vertex %d", i)
	}
}

func TestRecomputeNormalsPoles(t *testing.T) {
	m, err := cylinderParams().Generate()
	require.NoError(t, err)

	RecomputeNormals(m)
	bottom := m.Vertices[0].Normal
	top := m.Vertices[len(m.Vertices)-1].Normal
	assert.InDelta(t, -1, bottom[1], 1e-5, "bottom pole only sees downward cap faces")
	assert.Positive(t, top[1], "top pole faces up")
}

func TestRecomputeNormalsKeepsUnreferenced(t *testing.T) {
	m, err := flatParams(constantOne, 12).Generate()
	require.NoError(t, err)

	RecomputeNormals(m)
	assert.Equal(t, [3]float32{0, -1, 0}, m.Vertices[0].Normal,
		"the unreferenced bottom pole keeps its builder normal")
}

func TestSmoothNormalsMergesCoincidentVertices(t *testing.T) {
	// The sphere's lowest layer collapses to the bottom pole position, so
	// smoothing must give the pole and that whole ring one shared normal.
	m, err := sphereParams().Generate()
	require.NoError(t, err)

	SmoothNormals(m)
	pole := m.Vertices[0]
	for i, v := range m.Vertices {
		if v.Position == pole.Position {
			assert.Equal(t, pole.Normal, v.Normal, "vertex %d shares the pole position", i)
		}
	}
}
