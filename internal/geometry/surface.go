// Package geometry holds the constructive solid geometry handed to the
// transport engine: surfaces, half-space regions, cells, universes and
// hexagonal lattices.
package geometry

import "fmt"

// Boundary is the condition applied to particles crossing a surface.
type Boundary string

const (
	Transmission Boundary = ""
	Vacuum       Boundary = "vacuum"
	Reflective   Boundary = "reflective"
	White        Boundary = "white"
)

// ParseBoundary accepts the engine's boundary names; "transmission" and the
// empty string both mean no boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "", "transmission":
		return Transmission, nil
	case "vacuum":
		return Vacuum, nil
	case "reflective":
		return Reflective, nil
	case "white":
		return White, nil
	}
	return "", fmt.Errorf("unknown boundary type %q", s)
}

// SurfaceKind names a quadric surface type in the engine's vocabulary.
type SurfaceKind string

const (
	ZCylinderKind SurfaceKind = "z-cylinder"
	XPlaneKind    SurfaceKind = "x-plane"
	YPlaneKind    SurfaceKind = "y-plane"
	ZPlaneKind    SurfaceKind = "z-plane"
	PlaneKind     SurfaceKind = "plane"
)

// Surface is a primitive surface. The negative half-space of a cylinder is
// its inside; the negative half-space of a plane is where
// a·x + b·y + c·z < d.
type Surface struct {
	ID       int
	Name     string
	Kind     SurfaceKind
	Coeffs   []float64
	Boundary Boundary
}

// ZCylinder returns an infinite cylinder parallel to z.
func ZCylinder(x0, y0, r float64) *Surface {
	return &Surface{Kind: ZCylinderKind, Coeffs: []float64{x0, y0, r}}
}

// XPlane returns the plane x = x0.
func XPlane(x0 float64) *Surface {
	return &Surface{Kind: XPlaneKind, Coeffs: []float64{x0}}
}

// YPlane returns the plane y = y0.
func YPlane(y0 float64) *Surface {
	return &Surface{Kind: YPlaneKind, Coeffs: []float64{y0}}
}

// ZPlane returns the plane z = z0.
func ZPlane(z0 float64) *Surface {
	return &Surface{Kind: ZPlaneKind, Coeffs: []float64{z0}}
}

// Plane returns the general plane a·x + b·y + c·z = d.
func Plane(a, b, c, d float64) *Surface {
	return &Surface{Kind: PlaneKind, Coeffs: []float64{a, b, c, d}}
}

// WithBoundary sets the boundary condition and returns s.
func (s *Surface) WithBoundary(b Boundary) *Surface {
	s.Boundary = b
	return s
}

// Named sets the surface name and returns s.
func (s *Surface) Named(name string) *Surface {
	s.Name = name
	return s
}

// Evaluate returns the surface function at (x, y, z); negative values lie
// in the negative half-space.
func (s *Surface) Evaluate(x, y, z float64) float64 {
	c := s.Coeffs
	switch s.Kind {
	case ZCylinderKind:
		dx, dy := x-c[0], y-c[1]
		return dx*dx + dy*dy - c[2]*c[2]
	case XPlaneKind:
		return x - c[0]
	case YPlaneKind:
		return y - c[0]
	case ZPlaneKind:
		return z - c[0]
	case PlaneKind:
		return c[0]*x + c[1]*y + c[2]*z - c[3]
	}
	return 0
}
