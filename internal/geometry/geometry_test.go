package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/material"
)

func TestHexagonalPrism_YOrientation(t *testing.T) {
	p, err := NewHexagonalPrism(1, hexlat.OrientationY, [2]float64{}, Reflective)
	require.NoError(t, err)
	in := p.Inside()

	require.True(t, in.Contains(0, 0, 0))
	// top corner at (0, 1), flat sides at x = ±√3/2
	require.True(t, in.Contains(0, 0.99, 0))
	require.False(t, in.Contains(0, 1.01, 0))
	require.True(t, in.Contains(0.86, 0, 0))
	require.False(t, in.Contains(0.87, 0, 0))
	require.False(t, in.Contains(0.8, 0.6, 0))
	require.True(t, p.Outside().Contains(2, 2, 0))

	for _, s := range p.Planes() {
		require.Equal(t, Reflective, s.Boundary)
	}
}

func TestHexagonalPrism_XOrientation(t *testing.T) {
	p, err := NewHexagonalPrism(2, hexlat.OrientationX, [2]float64{1, -1}, Transmission)
	require.NoError(t, err)
	in := p.Inside()

	require.True(t, in.Contains(1, -1, 0))
	require.True(t, in.Contains(1+1.99, -1, 0))
	require.False(t, in.Contains(1+2.01, -1, 0))
	require.True(t, in.Contains(1, -1+math.Sqrt(3)-0.01, 0))
	require.False(t, in.Contains(1, -1+math.Sqrt(3)+0.01, 0))
}

func TestHexagonalPrism_MatchesHexagonOutline(t *testing.T) {
	for _, o := range []hexlat.Orientation{hexlat.OrientationX, hexlat.OrientationY} {
		p, err := NewHexagonalPrism(3, o, [2]float64{}, Transmission)
		require.NoError(t, err)
		outline, err := hexlat.Hexagon(3, o)
		require.NoError(t, err)
		for _, v := range outline[:6] {
			require.True(t, p.Inside().Contains(0.99*v.X, 0.99*v.Y, 0), "orientation %s", o)
			require.False(t, p.Inside().Contains(1.01*v.X, 1.01*v.Y, 0), "orientation %s", o)
		}
	}
}

func TestHexagonalPrism_Rejects(t *testing.T) {
	_, err := NewHexagonalPrism(0, hexlat.OrientationX, [2]float64{}, Transmission)
	require.Error(t, err)
	_, err = NewHexagonalPrism(1, "q", [2]float64{}, Transmission)
	require.Error(t, err)
}

func TestExpression(t *testing.T) {
	a, b, c := ZCylinder(0, 0, 1), ZCylinder(0, 0, 2), ZPlane(5)
	a.ID, b.ID, c.ID = 1, 2, 3

	require.Equal(t, "-1", Expression(Below(a)))
	require.Equal(t, "1 -2", Expression(And(Above(a), Below(b))))
	require.Equal(t, "-1 | 2", Expression(Or(Below(a), Above(b))))
	require.Equal(t, "(-1 | 2) -3", Expression(And(Or(Below(a), Above(b)), Below(c))))
	require.Equal(t, "~(1 -2) -3", Expression(And(Not(And(Above(a), Below(b))), Below(c))))
	require.Equal(t, "1 -2 -3", Expression(And(And(Above(a), Below(b)), Below(c))))
	require.Equal(t, "", Expression(nil))
}

func TestParseBoundary(t *testing.T) {
	b, err := ParseBoundary("reflective")
	require.NoError(t, err)
	require.Equal(t, Reflective, b)

	b, err = ParseBoundary("transmission")
	require.NoError(t, err)
	require.Equal(t, Transmission, b)

	_, err = ParseBoundary("periodic-ish")
	require.Error(t, err)
}

func pinUniverse(fuel, na *material.Material) *Universe {
	r := ZCylinder(0, 0, 0.3)
	return NewUniverse("pin",
		&Cell{Name: "fuel", Region: Below(r), Material: fuel},
		&Cell{Name: "coolant", Region: Above(r), Material: na},
	)
}

func TestAssign_NumbersEverythingOnce(t *testing.T) {
	fuel := material.MetallicFuel("fuel", material.InnerFuelVector)
	na := material.Sodium("na")
	pin := pinUniverse(fuel, na)

	lat, err := NewHexLattice("assembly", 3, 0.85, hexlat.OrientationY, func(int) *Universe { return pin })
	require.NoError(t, err)
	lat.Outer = Fill("outer", na)

	edge, err := NewHexagonalPrism(3, hexlat.OrientationY, [2]float64{}, Reflective)
	require.NoError(t, err)
	g := New(&Cell{Name: "main", Region: edge.Inside(), Lattice: lat})

	c, err := g.Assign()
	require.NoError(t, err)

	// six prism planes and the fuel cylinder
	require.Len(t, c.Surfaces, 7)
	require.Len(t, c.Cells, 4)
	require.Len(t, c.Universes, 3)
	require.Len(t, c.Lattices, 1)
	require.Len(t, c.Materials, 2)

	ids := map[int]bool{}
	for _, u := range c.Universes {
		require.NotZero(t, u.ID)
		require.False(t, ids[u.ID])
		ids[u.ID] = true
	}
	require.False(t, ids[lat.ID], "lattice shares the universe id space")

	// keeps existing ids on a second pass
	before := fuel.ID
	_, err = g.Assign()
	require.NoError(t, err)
	require.Equal(t, before, fuel.ID)
}

func TestAssign_KeepsPresetIDs(t *testing.T) {
	na := material.Sodium("na")
	na.ID = 1
	s := ZCylinder(0, 0, 1)
	s.ID = 1
	g := New(&Cell{Name: "a", Region: Below(s), Material: na}, &Cell{Name: "b", Region: Above(ZCylinder(0, 0, 2))})
	c, err := g.Assign()
	require.NoError(t, err)
	require.Equal(t, 1, c.Surfaces[0].ID)
	require.Equal(t, 2, c.Surfaces[1].ID)
}

func TestCollect_Errors(t *testing.T) {
	_, err := (&Geometry{}).Collect()
	require.Error(t, err)

	shared := &Cell{Name: "shared"}
	g := New(&Cell{Name: "a", Universe: NewUniverse("u1", shared)}, &Cell{Name: "b", Universe: NewUniverse("u2", shared)})
	_, err = g.Collect()
	require.ErrorContains(t, err, "more than one universe")

	na := material.Sodium("na")
	g = New(&Cell{Name: "double", Material: na, Universe: Fill("x", na)})
	_, err = g.Collect()
	require.ErrorContains(t, err, "more than one fill")
}

func TestFindCell(t *testing.T) {
	na := material.Sodium("na")
	g := New(&Cell{Name: "a", Material: na}, &Cell{Name: "b"}, &Cell{Name: "b"})
	c, err := g.FindCell("a")
	require.NoError(t, err)
	require.Equal(t, "a", c.Name)

	_, err = g.FindCell("missing")
	require.ErrorIs(t, err, ErrCellNotFound)

	_, err = g.FindCell("b")
	require.ErrorContains(t, err, "not unique")
}

func TestHexLattice_CentersAndRows(t *testing.T) {
	u := Fill("u", material.Sodium("na"))
	lat, err := NewHexLattice("l", 4, 0.85, hexlat.OrientationX, func(int) *Universe { return u })
	require.NoError(t, err)
	lat.Center = [2]float64{1, 2}

	pts, err := lat.Centers()
	require.NoError(t, err)
	require.Len(t, pts, hexlat.Positions(4))
	require.Equal(t, hexlat.Point{X: 1, Y: 2}, pts[0])

	rows, err := lat.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 7)

	lat.Rings[1][0] = nil
	require.ErrorContains(t, lat.Validate(), "empty")
}
