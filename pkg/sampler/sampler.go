// Package sampler turns a single-variable function into a closed ring of 2D
// sample points, concentrating vertices where the curve bends the most.
package sampler

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

var (
	ErrInvalidRange     = errors.New("sampler: x_start must be less than x_end")
	ErrInvalidParameter = errors.New("sampler: invalid parameter")
)

// slopeDelta is the finite-difference step for slope estimation.
const slopeDelta = 1e-6

// Func is a single-variable function y = f(x). It must be pure and
// deterministic; a non-deterministic function voids the reproducibility
// guarantee of Sample.
type Func func(x float32) float32

// Point is one curve sample. Slope is the arctangent of the numerically
// estimated derivative at X and is only used as a curvature signal.
type Point struct {
	X, Y  float32
	Slope float32
}

// Ring is an ordered sequence of samples. Read cyclically it bounds a simple
// closed curve for well-behaved functions.
type Ring []Point

// Sample approximates f over [xStart, xEnd] with the given vertex budget,
// placing samples where the slope changes fastest. It returns the ring and
// the maximum of f over the inserted midpoints, which the surface builder
// uses to normalize texture coordinates.
//
// With mirror set, the lower half of the ring is synthesized by reflecting
// the samples across y=0; an endpoint whose function value is exactly zero
// coincides with its mirror image and its reflected copy is dropped, so the
// closed ring carries no duplicate vertex at the seam. The result holds
// vertices points unmirrored, and 2*vertices-k mirrored, where k is the
// number of domain endpoints with f(x) == 0.
//
// Refinement is a greedy O(vertices²) rescan: each insertion re-scores every
// interval. Budgets are tens of points, so deterministic placement matters
// more than asymptotic speed here; the package boundary allows swapping in a
// priority-queue variant without touching callers.
func Sample(f Func, xStart, xEnd float32, vertices int, mirror bool) (Ring, float32, error) {
	if xStart >= xEnd {
		return nil, 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, xStart, xEnd)
	}
	if vertices < 3 {
		return nil, 0, fmt.Errorf("%w: need at least 3 vertices, got %d", ErrInvalidParameter, vertices)
	}

	ring := make(Ring, 0, 2*vertices)
	ring = append(ring,
		Point{X: xStart, Y: f(xStart), Slope: forwardSlope(f, xStart)},
		Point{X: xEnd, Y: f(xEnd), Slope: backwardSlope(f, xEnd)},
	)

	var maximum float32
	for len(ring) < vertices {
		index := 1
		var maxSlopeDiff, maxSpan float32
		for j := 1; j < len(ring); j++ {
			mid := ring[j-1].X + (ring[j].X-ring[j-1].X)/2
			m := forwardSlope(f, mid)
			span := ring[j].X - ring[j-1].X
			slopeDiff := math32.Abs(m-ring[j].Slope) + math32.Abs(m-ring[j-1].Slope)
			// Ties on curvature go to the wider interval.
			if slopeDiff > maxSlopeDiff || (slopeDiff == maxSlopeDiff && span > maxSpan) {
				index, maxSlopeDiff, maxSpan = j, slopeDiff, span
			}
		}
		mid := ring[index-1].X + (ring[index].X-ring[index-1].X)/2
		y := f(mid)
		ring = slices.Insert(ring, index, Point{X: mid, Y: y, Slope: forwardSlope(f, mid)})
		if y > maximum {
			maximum = y
		}
	}

	if mirror {
		ring = mirrorRing(ring)
	}
	return ring, maximum, nil
}

// forwardSlope estimates atan(f'(x)) with a forward difference.
func forwardSlope(f Func, x float32) float32 {
	return math32.Atan((f(x+slopeDelta) - f(x)) / slopeDelta)
}

// backwardSlope estimates atan(f'(x)) with a backward difference, for the
// right edge of the domain.
func backwardSlope(f Func, x float32) float32 {
	return math32.Atan((f(x) - f(x-slopeDelta)) / slopeDelta)
}
