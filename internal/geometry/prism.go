package geometry

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
)

// HexagonalPrism is an infinite hexagonal prism parallel to z bounded by
// six planes. A y-oriented prism has two corners on the y axis and flat
// sides normal to x; an x-oriented prism has corners on the x axis.
type HexagonalPrism struct {
	Edge        float64
	Orientation hexlat.Orientation
	Origin      [2]float64

	// y orientation: Right/Left are x-planes; x orientation: Top/Bottom
	// are y-planes. The four slanted sides are general planes.
	Right, Left, Top, Bottom *Surface

	UpperRight, UpperLeft, LowerRight, LowerLeft *Surface
}

// NewHexagonalPrism builds the bounding planes of a prism with the given
// edge length centred at origin.
func NewHexagonalPrism(edge float64, o hexlat.Orientation, origin [2]float64, b Boundary) (*HexagonalPrism, error) {
	if !(edge > 0) {
		return nil, fmt.Errorf("hexagonal prism: edge length must be positive, got %g", edge)
	}
	x0, y0 := origin[0], origin[1]
	l := edge
	p := &HexagonalPrism{Edge: edge, Orientation: o, Origin: origin}

	switch o {
	case hexlat.OrientationY:
		c := math.Sqrt(3) / 3
		p.Right = XPlane(x0 + math.Sqrt(3)/2*l)
		p.Left = XPlane(x0 - math.Sqrt(3)/2*l)
		p.UpperRight = Plane(c, 1, 0, l+x0*c+y0)
		p.LowerRight = Plane(-c, 1, 0, -l-x0*c+y0)
		p.LowerLeft = Plane(c, 1, 0, -l+x0*c+y0)
		p.UpperLeft = Plane(-c, 1, 0, l-x0*c+y0)
	case hexlat.OrientationX:
		c := math.Sqrt(3)
		p.Top = YPlane(y0 + math.Sqrt(3)/2*l)
		p.Bottom = YPlane(y0 - math.Sqrt(3)/2*l)
		p.UpperRight = Plane(c, 1, 0, c*l+c*x0+y0)
		p.LowerRight = Plane(-c, 1, 0, -c*l-c*x0+y0)
		p.LowerLeft = Plane(c, 1, 0, -c*l+c*x0+y0)
		p.UpperLeft = Plane(-c, 1, 0, c*l-c*x0+y0)
	default:
		return nil, fmt.Errorf("hexagonal prism: unknown orientation %q", o)
	}

	for _, s := range p.Planes() {
		s.Boundary = b
	}
	return p, nil
}

// Planes returns the six bounding surfaces.
func (p *HexagonalPrism) Planes() []*Surface {
	if p.Orientation == hexlat.OrientationY {
		return []*Surface{p.Right, p.Left, p.UpperRight, p.UpperLeft, p.LowerRight, p.LowerLeft}
	}
	return []*Surface{p.Top, p.Bottom, p.UpperRight, p.UpperLeft, p.LowerRight, p.LowerLeft}
}

// Inside returns the region enclosed by the prism.
func (p *HexagonalPrism) Inside() Intersection {
	if p.Orientation == hexlat.OrientationY {
		return And(Below(p.Right), Above(p.Left),
			Below(p.UpperRight), Below(p.UpperLeft),
			Above(p.LowerRight), Above(p.LowerLeft))
	}
	return And(Below(p.Top), Above(p.Bottom),
		Below(p.UpperRight), Below(p.UpperLeft),
		Above(p.LowerRight), Above(p.LowerLeft))
}

// Outside returns the region outside the prism.
func (p *HexagonalPrism) Outside() Complement {
	return Not(p.Inside())
}
