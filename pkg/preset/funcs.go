// Package preset provides named profile functions and YAML-defined shape
// presets that resolve to surface generation parameters.
package preset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/fnmesh/fnmesh/pkg/sampler"
)

// ErrUnknownFunction reports a preset referencing a function name that is
// not registered.
var ErrUnknownFunction = errors.New("preset: unknown function name")

// Constant returns 1 regardless of x.
func Constant(float32) float32 { return 1 }

// Circle is the upper unit semicircle, sqrt(1 - x²).
func Circle(x float32) float32 { return math32.Sqrt(1 - x*x) }

// Squircle is the upper half of the superellipse x⁴ + y⁴ = 1.
func Squircle(x float32) float32 {
	return math32.Pow(1-x*x*x*x, 0.25)
}

// Linear is the identity, y = x.
func Linear(x float32) float32 { return x }

// Parabola is the downward parabola 1 - x².
func Parabola(x float32) float32 { return 1 - x*x }

var registry = map[string]sampler.Func{
	"constant": Constant,
	"circle":   Circle,
	"squircle": Squircle,
	"linear":   Linear,
	"parabola": Parabola,
}

// Lookup resolves a registered function by name.
func Lookup(name string) (sampler.Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return f, nil
}

// Names returns the registered function names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
