package hexlat

import (
	"fmt"
	"math"
)

// Point is a position in the lattice plane.
type Point struct {
	X float64
	Y float64
}

// Norm returns the distance of p from the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Orientation selects which axis a lattice's neighbouring positions lie on.
type Orientation string

const (
	// OrientationX places the first neighbour on the +x axis.
	OrientationX Orientation = "x"
	// OrientationY places the first neighbour on the +y axis.
	OrientationY Orientation = "y"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == OrientationX || o == OrientationY
}

const sixty = math.Pi / 3

// RingCoordinates returns the centres of every position in ring r for the
// given pitch. Side s starts at angle s·60° and walks r positions towards
// the next corner; the corners lie exactly r·pitch from the origin.
func RingCoordinates(ring int, pitch float64) ([]Point, error) {
	if ring < 0 {
		return nil, fmt.Errorf("%w: %d", ErrRingIndex, ring)
	}
	if !(pitch > 0) {
		return nil, fmt.Errorf("%w: %g", ErrPitch, pitch)
	}
	if ring == 0 {
		return []Point{{X: 0, Y: 0}}, nil
	}

	pts := make([]Point, 0, 6*ring)
	r := float64(ring)
	for side := 0; side < 6; side++ {
		angle := sixty * float64(side)
		for i := 0; i < ring; i++ {
			off := float64(i)
			pts = append(pts, Point{
				X: r*pitch*math.Cos(angle) - off*pitch*math.Cos(angle+sixty),
				Y: r*pitch*math.Sin(angle) - off*pitch*math.Sin(angle+sixty),
			})
		}
	}
	return pts, nil
}

// LatticeCoordinates returns the centres of all positions of a lattice with
// the given number of rings, centre ring first.
func LatticeCoordinates(rings int, pitch float64) ([]Point, error) {
	if rings < 1 {
		return nil, fmt.Errorf("%w: rings=%d", ErrRingCount, rings)
	}
	pts := make([]Point, 0, Positions(rings))
	for r := 0; r < rings; r++ {
		ring, err := RingCoordinates(r, pitch)
		if err != nil {
			return nil, err
		}
		pts = append(pts, ring...)
	}
	return pts, nil
}

// Rotate returns pts rotated counter-clockwise about the origin.
func Rotate(pts []Point, degrees float64) []Point {
	s, c := math.Sincos(degrees * math.Pi / 180)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
	}
	return out
}

// Oriented returns lattice coordinates for a lattice of the given
// orientation. RingCoordinates places neighbours along +x; a y-oriented
// lattice is the same pattern turned by 30°.
func Oriented(pts []Point, o Orientation) []Point {
	if o == OrientationY {
		return Rotate(pts, 30)
	}
	return pts
}

// Hexagon returns the closed outline (seven points, first repeated last) of
// a hexagon with the given edge length. An x-oriented hexagon has corners on
// the x axis; a y-oriented one has corners on the y axis.
func Hexagon(edge float64, o Orientation) ([]Point, error) {
	if !(edge > 0) {
		return nil, fmt.Errorf("%w: edge %g", ErrPitch, edge)
	}
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrOrientation, o)
	}
	start := 0.0
	if o == OrientationY {
		start = math.Pi / 2
	}
	pts := make([]Point, 7)
	for k := 0; k < 6; k++ {
		a := start + sixty*float64(k)
		pts[k] = Point{X: edge * math.Cos(a), Y: edge * math.Sin(a)}
	}
	pts[6] = pts[0]
	return pts, nil
}
