package geometry

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gosfr/internal/material"
)

// ErrCellNotFound is returned by FindCell for an unknown cell name.
var ErrCellNotFound = errors.New("geometry: cell not found")

// Geometry is a model rooted at a single universe.
type Geometry struct {
	Root *Universe
}

// New returns a geometry whose root universe holds the given cells.
func New(cells ...*Cell) *Geometry {
	return &Geometry{Root: NewUniverse("root", cells...)}
}

// Contents lists every object reachable from the root, each exactly once,
// in depth-first discovery order.
type Contents struct {
	Surfaces  []*Surface
	Cells     []*Cell
	Universes []*Universe
	Lattices  []*HexLattice
	Materials []*material.Material
}

// Collect walks the model from the root.
func (g *Geometry) Collect() (*Contents, error) {
	if g.Root == nil {
		return nil, errors.New("geometry: no root universe")
	}
	w := &walker{
		surfaces:  map[*Surface]bool{},
		cells:     map[*Cell]bool{},
		universes: map[*Universe]bool{},
		lattices:  map[*HexLattice]bool{},
		materials: map[*material.Material]bool{},
	}
	if err := w.universe(g.Root); err != nil {
		return nil, err
	}
	return &w.out, nil
}

// Assign gives every unnumbered object an ID. Surfaces, cells and
// materials are numbered in their own sequences; universes and lattices
// share one sequence since the engine fills cells from either. Existing IDs
// are kept and never reused.
func (g *Geometry) Assign() (*Contents, error) {
	c, err := g.Collect()
	if err != nil {
		return nil, err
	}

	next := func(used map[int]bool) func() int {
		n := 0
		return func() int {
			for {
				n++
				if !used[n] {
					used[n] = true
					return n
				}
			}
		}
	}

	used := map[int]bool{}
	for _, s := range c.Surfaces {
		used[s.ID] = true
	}
	nid := next(used)
	for _, s := range c.Surfaces {
		if s.ID == 0 {
			s.ID = nid()
		}
	}

	used = map[int]bool{}
	for _, cell := range c.Cells {
		used[cell.ID] = true
	}
	nid = next(used)
	for _, cell := range c.Cells {
		if cell.ID == 0 {
			cell.ID = nid()
		}
	}

	used = map[int]bool{}
	for _, m := range c.Materials {
		used[m.ID] = true
	}
	nid = next(used)
	for _, m := range c.Materials {
		if m.ID == 0 {
			m.ID = nid()
		}
	}

	used = map[int]bool{}
	for _, u := range c.Universes {
		used[u.ID] = true
	}
	for _, l := range c.Lattices {
		used[l.ID] = true
	}
	nid = next(used)
	for _, u := range c.Universes {
		if u.ID == 0 {
			u.ID = nid()
		}
	}
	for _, l := range c.Lattices {
		if l.ID == 0 {
			l.ID = nid()
		}
	}
	return c, nil
}

// FindCell returns the unique cell with the given name.
func (g *Geometry) FindCell(name string) (*Cell, error) {
	c, err := g.Collect()
	if err != nil {
		return nil, err
	}
	var found *Cell
	for _, cell := range c.Cells {
		if cell.Name != name {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("geometry: cell name %q is not unique", name)
		}
		found = cell
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrCellNotFound, name)
	}
	return found, nil
}

type walker struct {
	out       Contents
	surfaces  map[*Surface]bool
	cells     map[*Cell]bool
	universes map[*Universe]bool
	lattices  map[*HexLattice]bool
	materials map[*material.Material]bool
}

func (w *walker) universe(u *Universe) error {
	if w.universes[u] {
		return nil
	}
	w.universes[u] = true
	w.out.Universes = append(w.out.Universes, u)
	if len(u.Cells) == 0 {
		return fmt.Errorf("geometry: universe %q has no cells", u.Name)
	}
	for _, c := range u.Cells {
		if err := w.cell(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) cell(c *Cell) error {
	if w.cells[c] {
		return fmt.Errorf("geometry: cell %q belongs to more than one universe", c.Name)
	}
	w.cells[c] = true
	w.out.Cells = append(w.out.Cells, c)
	if err := c.validate(); err != nil {
		return err
	}

	if c.Region != nil {
		for _, s := range c.Region.Surfaces() {
			if !w.surfaces[s] {
				w.surfaces[s] = true
				w.out.Surfaces = append(w.out.Surfaces, s)
			}
		}
	}

	switch {
	case c.Material != nil:
		if !w.materials[c.Material] {
			w.materials[c.Material] = true
			w.out.Materials = append(w.out.Materials, c.Material)
		}
	case c.Universe != nil:
		return w.universe(c.Universe)
	case c.Lattice != nil:
		return w.lattice(c.Lattice)
	}
	return nil
}

func (w *walker) lattice(l *HexLattice) error {
	if w.lattices[l] {
		return nil
	}
	w.lattices[l] = true
	w.out.Lattices = append(w.out.Lattices, l)
	if err := l.Validate(); err != nil {
		return err
	}
	if l.Outer != nil {
		if err := w.universe(l.Outer); err != nil {
			return err
		}
	}
	for _, ring := range l.Rings {
		for _, u := range ring {
			if err := w.universe(u); err != nil {
				return err
			}
		}
	}
	return nil
}
