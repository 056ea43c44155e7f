package reactor

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/alexiusacademia/gosfr/internal/geometry"
	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/material"
)

// hexApothem is the ratio of a regular hexagon's apothem to its edge.
var hexApothem = math.Sqrt(3) / 2

// Model is an engine-neutral description of a complete run.
type Model struct {
	Name      string
	Materials []*material.Material
	Geometry  *geometry.Geometry
	Settings  Settings
	Meshes    []*Mesh
	Tallies   []*Tally
	Plots     []*Plot

	// Overlay locates what the flux map is drawn over.
	Overlay Overlay
}

// RunMode selects the engine's calculation type.
type RunMode string

const (
	Eigenvalue  RunMode = "eigenvalue"
	FixedSource RunMode = "fixed source"
)

// SourceKind is the spatial distribution of the initial source.
type SourceKind string

const (
	PointSource SourceKind = "point"
	BoxSource   SourceKind = "box"
)

// Settings are the run parameters.
type Settings struct {
	RunMode           RunMode
	Particles         int
	Batches           int
	Inactive          int
	Seed              int64
	Source            Source
	TemperatureMethod string
	OutputTallies     bool
	Trigger           *Trigger
}

// Source is the initial fission source.
type Source struct {
	Kind            SourceKind
	Point           [3]float64
	LowerLeft       [3]float64
	UpperRight      [3]float64
	OnlyFissionable bool
}

// Trigger extends the run until tally triggers are met or MaxBatches is
// reached.
type Trigger struct {
	Active        bool
	MaxBatches    int
	BatchInterval int
}

// Mesh is a regular Cartesian mesh of 2 or 3 dimensions.
type Mesh struct {
	ID         int
	Name       string
	Dimension  []int
	LowerLeft  []float64
	UpperRight []float64
}

// Extent returns the x and y bounds of the mesh.
func (m *Mesh) Extent() (xmin, xmax, ymin, ymax float64) {
	return m.LowerLeft[0], m.UpperRight[0], m.LowerLeft[1], m.UpperRight[1]
}

// FilterKind names a tally filter type.
type FilterKind string

const (
	CellFilter     FilterKind = "cell"
	MaterialFilter FilterKind = "material"
	MeshFilter     FilterKind = "mesh"
)

// Filter restricts a tally to a set of bins.
type Filter struct {
	ID        int
	Kind      FilterKind
	Cells     []*geometry.Cell
	Materials []*material.Material
	Mesh      *Mesh
}

// Bins returns the engine IDs the filter selects.
func (f *Filter) Bins() []int {
	var bins []int
	switch f.Kind {
	case CellFilter:
		for _, c := range f.Cells {
			bins = append(bins, c.ID)
		}
	case MaterialFilter:
		for _, m := range f.Materials {
			bins = append(bins, m.ID)
		}
	case MeshFilter:
		bins = append(bins, f.Mesh.ID)
	}
	return bins
}

// Tally is a named request for scores over filters.
type Tally struct {
	ID       int
	Name     string
	Filters  []*Filter
	Nuclides []string
	Scores   []string
}

// MeshFilter returns the tally's mesh filter, if any.
func (t *Tally) MeshFilter() *Filter {
	for _, f := range t.Filters {
		if f.Kind == MeshFilter {
			return f
		}
	}
	return nil
}

// Plot is a geometry slice rendered by the engine.
type Plot struct {
	ID       int
	Filename string
	Basis    string
	Origin   [3]float64
	Width    [2]float64
	Pixels   [2]int
	ColorBy  string
	// Colors maps a material or cell ID to its colour.
	Colors map[int]color.RGBA
}

// Overlay is the pin or assembly layout under a flux map.
type Overlay struct {
	Label    string         // legend entry for the centres
	Centers  []hexlat.Point // lattice position centres
	Boundary []hexlat.Point // closed outline of the root boundary
}

var scores = map[string]bool{
	"flux":               true,
	"total":              true,
	"scatter":            true,
	"elastic":            true,
	"absorption":         true,
	"fission":            true,
	"nu-fission":         true,
	"kappa-fission":      true,
	"heating":            true,
	"events":             true,
	"current":            true,
	"inverse-velocity":   true,
	"prompt-nu-fission":  true,
	"delayed-nu-fission": true,
	"decay-rate":         true,
}

// ValidScore reports whether s is a score the engine understands: a named
// score or a reaction such as "(n,gamma)".
func ValidScore(s string) bool {
	if scores[s] {
		return true
	}
	if strings.HasPrefix(s, "(n,") && strings.HasSuffix(s, ")") && len(s) > 4 {
		return true
	}
	return false
}

// ParseColor accepts an SVG colour name ("skyblue") or a hex triplet
// ("#87ceeb").
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if hex, ok := strings.CutPrefix(name, "#"); ok && len(hex) == 6 {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}
