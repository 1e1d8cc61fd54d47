package preset

import (
	"fmt"

	"github.com/fnmesh/fnmesh/pkg/surface"
)

// Curve names a registered function together with its sampling domain and
// vertex budget.
type Curve struct {
	Function string  `yaml:"function"`
	XStart   float32 `yaml:"x_start"`
	XEnd     float32 `yaml:"x_end"`
	Vertices int     `yaml:"vertices"`
}

// Shape is a named, serializable parameter set for one mesh.
type Shape struct {
	Name           string  `yaml:"name"`
	Profile        Curve   `yaml:"profile"`
	Height         Curve   `yaml:"height"`
	RelativeHeight float32 `yaml:"relative_height"`
}

// Params resolves the shape's function names and returns generation
// parameters. Function lookup is the only step that can fail; domain and
// budget validation stays with surface.Params.Generate.
func (s Shape) Params() (surface.Params, error) {
	profile, err := Lookup(s.Profile.Function)
	if err != nil {
		return surface.Params{}, fmt.Errorf("shape %q profile: %w", s.Name, err)
	}
	height, err := Lookup(s.Height.Function)
	if err != nil {
		return surface.Params{}, fmt.Errorf("shape %q height: %w", s.Name, err)
	}
	return surface.Params{
		Profile:         profile,
		ProfileStart:    s.Profile.XStart,
		ProfileEnd:      s.Profile.XEnd,
		ProfileVertices: s.Profile.Vertices,
		Height:          height,
		HeightStart:     s.Height.XStart,
		HeightEnd:       s.Height.XEnd,
		HeightVertices:  s.Height.Vertices,
		RelativeHeight:  s.RelativeHeight,
	}, nil
}

// Library is a collection of shape presets.
type Library struct {
	Shapes []Shape `yaml:"shapes"`
}

// Find returns the shape with the given name.
func (l *Library) Find(name string) (Shape, bool) {
	for _, s := range l.Shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// Default returns the built-in shape library.
func Default() *Library {
	return &Library{
		Shapes: []Shape{
			{
				Name:           "sphere",
				Profile:        Curve{Function: "circle", XStart: -1, XEnd: 1, Vertices: 24},
				Height:         Curve{Function: "circle", XStart: -1, XEnd: 1, Vertices: 24},
				RelativeHeight: 1,
			},
			{
				Name:           "blob",
				Profile:        Curve{Function: "squircle", XStart: -1, XEnd: 1, Vertices: 24},
				Height:         Curve{Function: "squircle", XStart: -1, XEnd: 1, Vertices: 24},
				RelativeHeight: 1,
			},
			{
				Name:           "column",
				Profile:        Curve{Function: "constant", XStart: -1, XEnd: 1, Vertices: 18},
				Height:         Curve{Function: "constant", XStart: -1, XEnd: 1, Vertices: 12},
				RelativeHeight: 1,
			},
			{
				// Degenerate height domain: flat disk.
				Name:           "disk",
				Profile:        Curve{Function: "circle", XStart: -1, XEnd: 1, Vertices: 24},
				Height:         Curve{Function: "constant", XStart: 0, XEnd: 0, Vertices: 3},
				RelativeHeight: 0,
			},
		},
	}
}
