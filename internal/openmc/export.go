// Package openmc adapts a reactor model to the OpenMC engine: it writes the
// XML input deck, runs the executable and reads its results.
package openmc

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gosfr/internal/geometry"
	"github.com/alexiusacademia/gosfr/internal/material"
	"github.com/alexiusacademia/gosfr/internal/reactor"
)

// Input file names.
const (
	MaterialsFile = "materials.xml"
	GeometryFile  = "geometry.xml"
	SettingsFile  = "settings.xml"
	TalliesFile   = "tallies.xml"
	PlotsFile     = "plots.xml"
)

// Export writes the input deck for m into dir and returns the paths
// written. tallies.xml and plots.xml are written only when the model has
// tallies or plots.
func Export(m *reactor.Model, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	mats, err := materialsDoc(m.Materials)
	if err != nil {
		return nil, err
	}
	geom, err := geometryDoc(m.Geometry)
	if err != nil {
		return nil, err
	}

	docs := []inputFile{
		{MaterialsFile, mats},
		{GeometryFile, geom},
		{SettingsFile, settingsDoc(m.Settings)},
	}
	if len(m.Tallies) > 0 {
		docs = append(docs, inputFile{TalliesFile, talliesDoc(m)})
	}
	if len(m.Plots) > 0 {
		docs = append(docs, inputFile{PlotsFile, plotsDoc(m.Plots)})
	}

	var written []string
	for _, d := range docs {
		path := filepath.Join(dir, d.name)
		if err := writeXML(path, d.doc); err != nil {
			return written, fmt.Errorf("write %s: %w", d.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

type inputFile struct {
	name string
	doc  any
}

func writeXML(path string, doc any) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinFloats(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

func joinInts(vs ...int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func materialsDoc(ms []*material.Material) (*materialsXML, error) {
	doc := &materialsXML{}
	for _, m := range ms {
		comps, err := m.Expand()
		if err != nil {
			return nil, err
		}
		mx := materialXML{
			ID:          m.ID,
			Name:        m.Name,
			Depletable:  m.Depletable,
			Temperature: m.Temperature,
			Density:     densityXML{Units: m.Units, Value: m.Density},
		}
		for _, c := range comps {
			n := nuclideXML{Name: c.Name}
			if c.Type.Engine() == string(material.WeightPercent) {
				n.WO = c.Percent
			} else {
				n.AO = c.Percent
			}
			mx.Nuclides = append(mx.Nuclides, n)
		}
		doc.Materials = append(doc.Materials, mx)
	}
	return doc, nil
}

func geometryDoc(g *geometry.Geometry) (*geometryXML, error) {
	contents, err := g.Collect()
	if err != nil {
		return nil, err
	}

	doc := &geometryXML{}
	for _, u := range contents.Universes {
		for _, c := range u.Cells {
			cx := cellXML{ID: c.ID, Name: c.Name, Universe: u.ID}
			if c.Region != nil {
				cx.Region = geometry.Expression(c.Region)
			}
			switch {
			case c.Material != nil:
				cx.Material = strconv.Itoa(c.Material.ID)
			case c.Universe != nil:
				cx.Fill = c.Universe.ID
			case c.Lattice != nil:
				cx.Fill = c.Lattice.ID
			default:
				cx.Material = "void"
			}
			doc.Cells = append(doc.Cells, cx)
		}
	}
	sort.Slice(doc.Cells, func(i, j int) bool { return doc.Cells[i].ID < doc.Cells[j].ID })

	for _, l := range contents.Lattices {
		lx, err := latticeXML(l)
		if err != nil {
			return nil, err
		}
		doc.Lattices = append(doc.Lattices, lx)
	}

	for _, s := range contents.Surfaces {
		doc.Surfaces = append(doc.Surfaces, surfaceXML{
			ID:       s.ID,
			Name:     s.Name,
			Type:     string(s.Kind),
			Coeffs:   joinFloats(s.Coeffs...),
			Boundary: string(s.Boundary),
		})
	}
	sort.Slice(doc.Surfaces, func(i, j int) bool { return doc.Surfaces[i].ID < doc.Surfaces[j].ID })
	return doc, nil
}

// latticeXML renders the ring layout in the engine's pictorial row order,
// one row per line, centred.
func latticeXML(l *geometry.HexLattice) (hexLatticeXML, error) {
	rows, err := l.Rows()
	if err != nil {
		return hexLatticeXML{}, fmt.Errorf("lattice %q: %w", l.Name, err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	cols := 0
	for _, row := range rows {
		for _, u := range row {
			cols = max(cols, len(strconv.Itoa(u.ID)))
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Repeat(" ", (width-len(row))*(cols+1)/2+6))
		for i, u := range row {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%*d", cols, u.ID)
		}
		b.WriteString("\n")
	}
	b.WriteString("    ")

	lx := hexLatticeXML{
		ID:          l.ID,
		Name:        l.Name,
		NRings:      l.NumRings(),
		Orientation: string(l.Orientation),
		Pitch:       formatFloat(l.Pitch),
		Center:      joinFloats(l.Center[0], l.Center[1]),
		Universes:   b.String(),
	}
	if l.Outer != nil {
		lx.Outer = l.Outer.ID
	}
	return lx, nil
}

func settingsDoc(s reactor.Settings) *settingsXML {
	doc := &settingsXML{
		RunMode:           string(s.RunMode),
		Particles:         s.Particles,
		Batches:           s.Batches,
		Inactive:          s.Inactive,
		Seed:              s.Seed,
		Output:            outputXML{Tallies: s.OutputTallies},
		TemperatureMethod: s.TemperatureMethod,
		Source: sourceXML{
			Type:     "independent",
			Strength: 1,
			Particle: "neutron",
		},
	}

	src := s.Source
	switch src.Kind {
	case reactor.BoxSource:
		doc.Source.Space.Type = "box"
		if src.OnlyFissionable {
			doc.Source.Space.Type = "fission"
		}
		doc.Source.Space.Parameters = joinFloats(append(src.LowerLeft[:], src.UpperRight[:]...)...)
	default:
		doc.Source.Space.Type = "point"
		doc.Source.Space.Parameters = joinFloats(src.Point[:]...)
	}

	if t := s.Trigger; t != nil {
		doc.Trigger = &triggerXML{Active: t.Active, MaxBatches: t.MaxBatches, BatchInterval: t.BatchInterval}
	}
	return doc
}

func talliesDoc(m *reactor.Model) *talliesXML {
	doc := &talliesXML{}
	for _, mesh := range m.Meshes {
		doc.Meshes = append(doc.Meshes, meshXML{
			ID:         mesh.ID,
			Name:       mesh.Name,
			Dimension:  joinInts(mesh.Dimension...),
			LowerLeft:  joinFloats(mesh.LowerLeft...),
			UpperRight: joinFloats(mesh.UpperRight...),
		})
	}
	for _, t := range m.Tallies {
		tx := tallyXML{
			ID:       t.ID,
			Name:     t.Name,
			Nuclides: strings.Join(t.Nuclides, " "),
			Scores:   strings.Join(t.Scores, " "),
		}
		var ids []int
		for _, f := range t.Filters {
			doc.Filters = append(doc.Filters, filterXML{ID: f.ID, Type: string(f.Kind), Bins: joinInts(f.Bins()...)})
			ids = append(ids, f.ID)
		}
		tx.Filters = joinInts(ids...)
		doc.Tallies = append(doc.Tallies, tx)
	}
	return doc
}

func plotsDoc(ps []*reactor.Plot) *plotsXML {
	doc := &plotsXML{}
	for _, p := range ps {
		px := plotXML{
			ID:       p.ID,
			Filename: p.Filename,
			Type:     "slice",
			Basis:    p.Basis,
			ColorBy:  p.ColorBy,
			Origin:   joinFloats(p.Origin[:]...),
			Width:    joinFloats(p.Width[:]...),
			Pixels:   joinInts(p.Pixels[:]...),
		}
		ids := make([]int, 0, len(p.Colors))
		for id := range p.Colors {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			c := p.Colors[id]
			px.Colors = append(px.Colors, colorXML{ID: id, RGB: joinInts(int(c.R), int(c.G), int(c.B))})
		}
		doc.Plots = append(doc.Plots, px)
	}
	return doc
}
