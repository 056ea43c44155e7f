package geometry

import (
	"fmt"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/material"
)

// Cell binds a region to at most one fill. A cell with no fill is void.
type Cell struct {
	ID       int
	Name     string
	Region   Region
	Material *material.Material
	Universe *Universe
	Lattice  *HexLattice
}

// Void reports whether the cell has no fill.
func (c *Cell) Void() bool {
	return c.Material == nil && c.Universe == nil && c.Lattice == nil
}

func (c *Cell) validate() error {
	n := 0
	if c.Material != nil {
		n++
	}
	if c.Universe != nil {
		n++
	}
	if c.Lattice != nil {
		n++
	}
	if n > 1 {
		return fmt.Errorf("cell %q has more than one fill", c.Name)
	}
	return nil
}

// Universe is a collection of cells that together cover the plane.
type Universe struct {
	ID    int
	Name  string
	Cells []*Cell
}

// NewUniverse groups cells into a universe.
func NewUniverse(name string, cells ...*Cell) *Universe {
	return &Universe{Name: name, Cells: cells}
}

// Fill returns a universe with a single unbounded cell of material m.
func Fill(name string, m *material.Material) *Universe {
	return NewUniverse(name, &Cell{Name: name, Material: m})
}

// HexLattice arranges universes on a hexagonal grid addressed by rings.
// Rings holds the layout outermost ring first, as built by hexlat.
type HexLattice struct {
	ID          int
	Name        string
	Center      [2]float64
	Pitch       float64
	Orientation hexlat.Orientation
	Outer       *Universe
	Rings       [][]*Universe
}

// NewHexLattice builds a lattice whose ring r is filled with fill(r).
func NewHexLattice(name string, rings int, pitch float64, o hexlat.Orientation, fill func(ring int) *Universe) (*HexLattice, error) {
	layout, err := hexlat.BuildLayout(rings, fill)
	if err != nil {
		return nil, fmt.Errorf("lattice %q: %w", name, err)
	}
	lat := &HexLattice{Name: name, Pitch: pitch, Orientation: o, Rings: layout}
	return lat, lat.Validate()
}

// NumRings returns the number of rings.
func (l *HexLattice) NumRings() int { return len(l.Rings) }

// Validate checks ring sizes, pitch, orientation and that every position is
// filled.
func (l *HexLattice) Validate() error {
	if err := hexlat.ValidateLayout(l.Rings); err != nil {
		return fmt.Errorf("lattice %q: %w", l.Name, err)
	}
	if !(l.Pitch > 0) {
		return fmt.Errorf("lattice %q: %w", l.Name, hexlat.ErrPitch)
	}
	if !l.Orientation.Valid() {
		return fmt.Errorf("lattice %q: %w", l.Name, hexlat.ErrOrientation)
	}
	for i, ring := range l.Rings {
		for j, u := range ring {
			if u == nil {
				return fmt.Errorf("lattice %q: ring %d position %d is empty", l.Name, len(l.Rings)-1-i, j)
			}
		}
	}
	return nil
}

// Rows returns the universes in the engine's pictorial row order.
func (l *HexLattice) Rows() ([][]*Universe, error) {
	return hexlat.Rows(l.Rings, l.Orientation)
}

// Centers returns the centre of every lattice position, centre ring first,
// offset by the lattice centre.
func (l *HexLattice) Centers() ([]hexlat.Point, error) {
	pts, err := hexlat.LatticeCoordinates(l.NumRings(), l.Pitch)
	if err != nil {
		return nil, err
	}
	pts = hexlat.Oriented(pts, l.Orientation)
	for i := range pts {
		pts[i].X += l.Center[0]
		pts[i].Y += l.Center[1]
	}
	return pts, nil
}
