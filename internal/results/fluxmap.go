package results

import (
	"fmt"
	"math"
)

// FluxMap is a 2-D slice of a mesh tally, indexed [ix][iy] with ix = 0 at
// the lower-left corner.
type FluxMap struct {
	Values [][]float64
	StdDev [][]float64

	XMin, XMax float64
	YMin, YMax float64
}

// NewFluxMap reshapes the flat mesh entries of score into the mesh's x-y
// grid. For 3-D meshes the bottom layer is taken. Every mesh bin must be
// present exactly once.
func NewFluxMap(t *Tally, dimension []int, lowerLeft, upperRight []float64, score string) (*FluxMap, error) {
	if len(dimension) < 2 || len(lowerLeft) < 2 || len(upperRight) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 dimensions", ErrShapeMismatch)
	}
	nx, ny := dimension[0], dimension[1]
	nz := 1
	if len(dimension) > 2 {
		nz = dimension[2]
	}

	entries := t.Select(score, TotalNuclide)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: tally %q score %q", ErrNoEntries, t.Name, score)
	}
	if len(entries) != nx*ny*nz {
		return nil, fmt.Errorf("%w: tally %q has %d bins, mesh %dx%dx%d needs %d",
			ErrShapeMismatch, t.Name, len(entries), nx, ny, nz, nx*ny*nz)
	}

	m := &FluxMap{
		Values: grid(nx, ny),
		StdDev: grid(nx, ny),
		XMin:   lowerLeft[0],
		XMax:   upperRight[0],
		YMin:   lowerLeft[1],
		YMax:   upperRight[1],
	}
	seen := grid(nx, ny)
	for _, e := range entries {
		if len(e.MeshIndex) < 2 {
			return nil, fmt.Errorf("%w: entry without mesh index", ErrShapeMismatch)
		}
		i, j := e.MeshIndex[0]-1, e.MeshIndex[1]-1
		if i < 0 || i >= nx || j < 0 || j >= ny {
			return nil, fmt.Errorf("%w: mesh index %v outside %dx%d", ErrShapeMismatch, e.MeshIndex, nx, ny)
		}
		if len(e.MeshIndex) > 2 && e.MeshIndex[2] != 1 {
			continue
		}
		if seen[i][j] != 0 {
			return nil, fmt.Errorf("%w: mesh index %v repeated", ErrShapeMismatch, e.MeshIndex)
		}
		seen[i][j] = 1
		m.Values[i][j] = e.Mean
		m.StdDev[i][j] = e.StdDev
	}
	return m, nil
}

func grid(nx, ny int) [][]float64 {
	g := make([][]float64, nx)
	for i := range g {
		g[i] = make([]float64, ny)
	}
	return g
}

// Max returns the largest value.
func (m *FluxMap) Max() float64 {
	peak := math.Inf(-1)
	for _, col := range m.Values {
		for _, v := range col {
			peak = math.Max(peak, v)
		}
	}
	return peak
}

// Normalize scales the map so its maximum is 1. A map with no positive
// value is left unchanged.
func (m *FluxMap) Normalize() *FluxMap {
	peak := m.Max()
	if !(peak > 0) {
		return m
	}
	for i := range m.Values {
		for j := range m.Values[i] {
			m.Values[i][j] /= peak
			m.StdDev[i][j] /= peak
		}
	}
	return m
}

// Centerline returns the values along the middle row of the mesh, from
// x = XMin to XMax.
func (m *FluxMap) Centerline() []float64 {
	_, ny := m.Dims()
	row := ny / 2
	out := make([]float64, len(m.Values))
	for i := range m.Values {
		out[i] = m.Values[i][row]
	}
	return out
}

// Dims returns the number of columns (x) and rows (y).
// It implements gonum's plotter.GridXYZ.
func (m *FluxMap) Dims() (c, r int) {
	if len(m.Values) == 0 {
		return 0, 0
	}
	return len(m.Values), len(m.Values[0])
}

// Z returns the value of cell (c, r).
func (m *FluxMap) Z(c, r int) float64 { return m.Values[c][r] }

// X returns the x coordinate of column c's centre.
func (m *FluxMap) X(c int) float64 {
	nx, _ := m.Dims()
	return m.XMin + (float64(c)+0.5)*(m.XMax-m.XMin)/float64(nx)
}

// Y returns the y coordinate of row r's centre.
func (m *FluxMap) Y(r int) float64 {
	_, ny := m.Dims()
	return m.YMin + (float64(r)+0.5)*(m.YMax-m.YMin)/float64(ny)
}
