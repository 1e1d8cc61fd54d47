package surface

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fnmesh/fnmesh/internal/logger"
	"github.com/fnmesh/fnmesh/pkg/sampler"
)

// Params configures one mesh generation call. The profile function shapes
// the cross section; its upper half is mirrored across the x axis to close
// the ring. The height function shapes the vertical silhouette: each layer
// takes its vertical offset and radial scale from one height sample, so
// revolution-like solids emerge from two independently sampled 1D curves.
//
// Both functions must be pure; Params never mutates or retains them beyond
// the Generate call.
type Params struct {
	// Profile is the cross-section function, evaluated over
	// [ProfileStart, ProfileEnd) with ProfileVertices samples for the
	// upper half.
	Profile         sampler.Func
	ProfileStart    float32
	ProfileEnd      float32
	ProfileVertices int

	// Height is the silhouette function. A degenerate height domain
	// (HeightStart == HeightEnd) collapses the mesh to a flat polygon and
	// leaves Height unevaluated, so HeightVertices is only validated in
	// the layered regime.
	Height         sampler.Func
	HeightStart    float32
	HeightEnd      float32
	HeightVertices int

	// RelativeHeight in [0,1] blends the flat profile (0) into the full
	// 3D shape (1). Zero forces the flat regime.
	RelativeHeight float32
}

// DefaultParams returns the parameters for a unit column: constant profile
// and height over [-1, 1], 18 vertices each, full relative height.
func DefaultParams() Params {
	one := func(float32) float32 { return 1 }
	return Params{
		Profile:         one,
		ProfileStart:    -1,
		ProfileEnd:      1,
		ProfileVertices: 18,
		Height:          one,
		HeightStart:     -1,
		HeightEnd:       1,
		HeightVertices:  18,
		RelativeHeight:  1,
	}
}

// flat reports whether generation collapses to the single-layer regime.
func (p Params) flat() bool {
	return p.HeightStart == p.HeightEnd || p.RelativeHeight == 0
}

// validate checks every parameter before any sampling work, so a failed
// call never pays for partial generation and never returns a partial mesh.
func (p Params) validate() error {
	if p.Profile == nil {
		return fmt.Errorf("%w: profile function is nil", sampler.ErrInvalidParameter)
	}
	if p.ProfileStart >= p.ProfileEnd {
		return fmt.Errorf("%w: profile domain [%v, %v]", sampler.ErrInvalidRange, p.ProfileStart, p.ProfileEnd)
	}
	if p.ProfileVertices < 3 {
		return fmt.Errorf("%w: profile vertices %d, need at least 3", sampler.ErrInvalidParameter, p.ProfileVertices)
	}
	if p.RelativeHeight < 0 || p.RelativeHeight > 1 {
		return fmt.Errorf("%w: relative height %v outside [0, 1]", sampler.ErrInvalidParameter, p.RelativeHeight)
	}
	if p.HeightStart > p.HeightEnd {
		return fmt.Errorf("%w: height domain [%v, %v]", sampler.ErrInvalidRange, p.HeightStart, p.HeightEnd)
	}
	if !p.flat() {
		if p.Height == nil {
			return fmt.Errorf("%w: height function is nil", sampler.ErrInvalidParameter)
		}
		if p.HeightVertices < 3 {
			return fmt.Errorf("%w: height vertices %d, need at least 3", sampler.ErrInvalidParameter, p.HeightVertices)
		}
	}
	return nil
}

// Generate samples the rings and builds the mesh. Generation is pure and
// deterministic: identical parameters with pure functions produce an
// identical mesh, and regeneration means calling Generate again.
func (p Params) Generate() (*Mesh, error) {
	start := time.Now()
	if err := p.validate(); err != nil {
		return nil, err
	}

	profile, profileMax, err := sampler.Sample(p.Profile, p.ProfileStart, p.ProfileEnd, p.ProfileVertices, true)
	if err != nil {
		return nil, err
	}

	layers := 1
	var height sampler.Ring
	if !p.flat() {
		height, _, err = sampler.Sample(p.Height, p.HeightStart, p.HeightEnd, p.HeightVertices, false)
		if err != nil {
			return nil, err
		}
		layers = p.HeightVertices - 1
	}

	b := &Builder{
		Profile:        profile,
		ProfileMax:     profileMax,
		ProfileStart:   p.ProfileStart,
		ProfileEnd:     p.ProfileEnd,
		Height:         height,
		HeightStart:    p.HeightStart,
		HeightEnd:      p.HeightEnd,
		RelativeHeight: p.RelativeHeight,
		Layers:         layers,
	}
	mesh, err := b.Build()
	if err != nil {
		return nil, err
	}

	logger.Debug("mesh generated",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("layers", layers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return mesh, nil
}
