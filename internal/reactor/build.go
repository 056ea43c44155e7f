package reactor

import (
	"fmt"
	"image/color"

	"github.com/alexiusacademia/gosfr/internal/geometry"
	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/material"
)

// Build turns a configuration into a model with every ID assigned.
func Build(cfg *Config) (*Model, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		cfg:        cfg,
		materials:  map[string]*material.Material{},
		pins:       map[string]*geometry.Universe{},
		assemblies: map[string]*geometry.Universe{},
		fills:      map[string]*geometry.Universe{},
	}
	m := &Model{Name: cfg.Name}

	keep := map[string]bool{}
	for _, el := range cfg.Engine.NaturalElements {
		keep[el] = true
	}
	for i, spec := range cfg.Materials {
		mat, err := newMaterial(spec, keep)
		if err != nil {
			return nil, err
		}
		mat.ID = i + 1
		b.materials[spec.Name] = mat
		m.Materials = append(m.Materials, mat)
	}

	root, overlay, err := b.root()
	if err != nil {
		return nil, err
	}
	m.Geometry = &geometry.Geometry{Root: root}
	m.Overlay = overlay
	if _, err := m.Geometry.Assign(); err != nil {
		return nil, err
	}

	m.Settings = newSettings(cfg.Settings)

	meshes := map[string]*Mesh{}
	for i, spec := range cfg.Meshes {
		mesh := &Mesh{
			ID:         i + 1,
			Name:       spec.Name,
			Dimension:  append([]int(nil), spec.Dimension...),
			LowerLeft:  append([]float64(nil), spec.LowerLeft...),
			UpperRight: append([]float64(nil), spec.UpperRight...),
		}
		meshes[spec.Name] = mesh
		m.Meshes = append(m.Meshes, mesh)
	}

	filterID := 0
	for i, spec := range cfg.Tallies {
		t := &Tally{ID: i + 1, Name: spec.Name, Nuclides: spec.Nuclides, Scores: spec.Scores}
		for _, fs := range spec.Filters {
			filterID++
			f := &Filter{ID: filterID, Kind: FilterKind(fs.Type)}
			switch f.Kind {
			case CellFilter:
				for _, name := range fs.Bins {
					cell, err := m.Geometry.FindCell(name)
					if err != nil {
						return nil, fmt.Errorf("tally %q: %w", spec.Name, err)
					}
					f.Cells = append(f.Cells, cell)
				}
			case MaterialFilter:
				for _, name := range fs.Bins {
					f.Materials = append(f.Materials, b.materials[name])
				}
			case MeshFilter:
				f.Mesh = meshes[fs.Mesh]
			}
			t.Filters = append(t.Filters, f)
		}
		m.Tallies = append(m.Tallies, t)
	}

	for i, spec := range cfg.Plots {
		p, err := b.plot(m, spec)
		if err != nil {
			return nil, err
		}
		p.ID = i + 1
		m.Plots = append(m.Plots, p)
	}
	return m, nil
}

func newMaterial(spec MaterialSpec, keepNatural map[string]bool) (*material.Material, error) {
	mat := material.New(spec.Name).SetDensity(spec.Units, spec.Density)
	if len(keepNatural) > 0 {
		mat.KeepNatural = keepNatural
	}
	mat.Depletable = spec.Depletable
	mat.Temperature = spec.Temperature
	for _, c := range spec.Components {
		t := material.PercentType(c.Type)
		if t == "" {
			t = material.AtomPercent
		}
		if c.Element != "" {
			mat.AddElement(c.Element, c.Percent, t)
		} else {
			mat.AddNuclide(c.Nuclide, c.Percent, t)
		}
	}
	if err := mat.Validate(); err != nil {
		return nil, &ValidationError{msg: err.Error()}
	}
	return mat, nil
}

func newSettings(spec SettingsSpec) Settings {
	s := Settings{
		RunMode:           RunMode(spec.RunMode),
		Particles:         spec.Particles,
		Batches:           spec.Batches,
		Inactive:          spec.Inactive,
		Seed:              spec.Seed,
		TemperatureMethod: spec.TemperatureMethod,
		OutputTallies:     spec.OutputTallies,
		Source: Source{
			Kind:            SourceKind(spec.Source.Type),
			OnlyFissionable: spec.Source.OnlyFissionable,
		},
	}
	copy(s.Source.Point[:], spec.Source.Point)
	copy(s.Source.LowerLeft[:], spec.Source.LowerLeft)
	copy(s.Source.UpperRight[:], spec.Source.UpperRight)
	if t := spec.Trigger; t != nil {
		s.Trigger = &Trigger{Active: t.Active, MaxBatches: t.MaxBatches, BatchInterval: t.BatchInterval}
	}
	return s
}

type builder struct {
	cfg        *Config
	materials  map[string]*material.Material
	pins       map[string]*geometry.Universe
	assemblies map[string]*geometry.Universe
	fills      map[string]*geometry.Universe
}

// fill returns the shared single-material universe used as a lattice
// background.
func (b *builder) fill(name string) *geometry.Universe {
	if u, ok := b.fills[name]; ok {
		return u
	}
	u := geometry.Fill(name+" background", b.materials[name])
	b.fills[name] = u
	return u
}

func (b *builder) pin(name string) (*geometry.Universe, error) {
	if u, ok := b.pins[name]; ok {
		return u, nil
	}
	var spec PinSpec
	for _, p := range b.cfg.Pins {
		if p.Name == name {
			spec = p
		}
	}

	cellPrism, err := geometry.NewHexagonalPrism(spec.CellEdge, hexlat.Orientation(spec.CellOrientation), [2]float64{}, geometry.Transmission)
	if err != nil {
		return nil, fmt.Errorf("pin %q: %w", name, err)
	}
	inCell := cellPrism.Inside()

	var cells []*geometry.Cell
	switch spec.Kind {
	case PinRod:
		rod := geometry.ZCylinder(0, 0, spec.FuelRadius).Named(name + " rod")
		cells = []*geometry.Cell{
			{Name: name + " rod", Region: geometry.Below(rod), Material: b.materials[spec.Fuel]},
			{Name: name + " coolant", Region: geometry.And(geometry.Above(rod), inCell), Material: b.materials[spec.Coolant]},
		}
	default:
		fuelOR := geometry.ZCylinder(0, 0, spec.FuelRadius).Named(name + " fuel outer radius")
		cladIR := geometry.ZCylinder(0, 0, spec.CladInnerRadius).Named(name + " clad inner radius")
		cladOR := geometry.ZCylinder(0, 0, spec.CladOuterRadius).Named(name + " clad outer radius")
		gap := &geometry.Cell{Name: name + " gap", Region: geometry.And(geometry.Above(fuelOR), geometry.Below(cladIR))}
		if spec.Gap != "" {
			gap.Material = b.materials[spec.Gap]
		}
		cells = []*geometry.Cell{
			{Name: name + " fuel", Region: geometry.Below(fuelOR), Material: b.materials[spec.Fuel]},
			gap,
			{Name: name + " clad", Region: geometry.And(geometry.Above(cladIR), geometry.Below(cladOR)), Material: b.materials[spec.Clad]},
			{Name: name + " coolant", Region: geometry.And(geometry.Above(cladOR), inCell), Material: b.materials[spec.Coolant]},
		}
	}

	u := geometry.NewUniverse(name, cells...)
	b.pins[name] = u
	return u, nil
}

func (b *builder) assemblySpec(name string) AssemblySpec {
	for _, a := range b.cfg.Assemblies {
		if a.Name == name {
			return a
		}
	}
	return AssemblySpec{}
}

// lattice builds the pin lattice of an assembly.
func (b *builder) lattice(spec AssemblySpec) (*geometry.HexLattice, error) {
	pinOf := func(ring int) string {
		if len(spec.RingPins) > 0 {
			return spec.RingPins[ring]
		}
		return spec.Pin
	}

	var ferr error
	lat, err := geometry.NewHexLattice(spec.Name+" lattice", spec.Rings, spec.Pitch, hexlat.Orientation(spec.Orientation), func(ring int) *geometry.Universe {
		u, err := b.pin(pinOf(ring))
		if err != nil && ferr == nil {
			ferr = err
		}
		return u
	})
	if ferr != nil {
		return nil, ferr
	}
	if err != nil {
		return nil, err
	}
	lat.Outer = b.fill(spec.Background)
	return lat, nil
}

// assembly builds the universe placed in the core lattice: the pin lattice
// inside the assembly prism, the surround material outside it.
func (b *builder) assembly(name string, axial geometry.Region) (*geometry.Universe, error) {
	if u, ok := b.assemblies[name]; ok {
		return u, nil
	}
	spec := b.assemblySpec(name)
	lat, err := b.lattice(spec)
	if err != nil {
		return nil, err
	}
	prism, err := geometry.NewHexagonalPrism(spec.Edge, hexlat.Orientation(spec.EdgeOrientation), [2]float64{}, geometry.Transmission)
	if err != nil {
		return nil, fmt.Errorf("assembly %q: %w", name, err)
	}

	inside := geometry.Region(prism.Inside())
	outside := geometry.Region(prism.Outside())
	if axial != nil {
		inside = geometry.And(inside, axial)
		outside = geometry.And(outside, axial)
	}
	cells := []*geometry.Cell{{Name: name + " lattice", Region: inside, Lattice: lat}}
	if spec.Surround != "" {
		cells = append(cells, &geometry.Cell{Name: name + " surround", Region: outside, Material: b.materials[spec.Surround]})
	}

	u := geometry.NewUniverse(name, cells...)
	b.assemblies[name] = u
	return u, nil
}

func (b *builder) root() (*geometry.Universe, Overlay, error) {
	if b.cfg.Core != nil {
		return b.core()
	}

	spec := b.assemblySpec(b.cfg.Root)
	lat, err := b.lattice(spec)
	if err != nil {
		return nil, Overlay{}, err
	}
	bc, _ := geometry.ParseBoundary(spec.Boundary)
	edgeO := hexlat.Orientation(spec.EdgeOrientation)
	prism, err := geometry.NewHexagonalPrism(spec.Edge, edgeO, [2]float64{}, bc)
	if err != nil {
		return nil, Overlay{}, fmt.Errorf("assembly %q: %w", spec.Name, err)
	}

	overlay, err := overlayOf(lat, spec.Edge, edgeO, "Fuel pins")
	if err != nil {
		return nil, Overlay{}, err
	}
	main := &geometry.Cell{Name: spec.Name + " main", Region: prism.Inside(), Lattice: lat}
	return geometry.NewUniverse("root", main), overlay, nil
}

func (b *builder) core() (*geometry.Universe, Overlay, error) {
	spec := b.cfg.Core

	var axial geometry.Region
	if spec.Height > 0 {
		bc, _ := geometry.ParseBoundary(spec.AxialBoundary)
		top := geometry.ZPlane(spec.Height / 2).WithBoundary(bc).Named("core top")
		bottom := geometry.ZPlane(-spec.Height / 2).WithBoundary(bc).Named("core bottom")
		axial = geometry.And(geometry.Below(top), geometry.Above(bottom))
	}

	var ferr error
	lat, err := geometry.NewHexLattice("core lattice", len(spec.Rings), spec.Pitch, hexlat.Orientation(spec.Orientation), func(ring int) *geometry.Universe {
		u, err := b.assembly(spec.Rings[ring], axial)
		if err != nil && ferr == nil {
			ferr = err
		}
		return u
	})
	if ferr != nil {
		return nil, Overlay{}, ferr
	}
	if err != nil {
		return nil, Overlay{}, err
	}
	lat.Outer = b.fill(spec.Background)

	bc, _ := geometry.ParseBoundary(spec.Boundary)
	edgeO := hexlat.Orientation(spec.EdgeOrientation)
	prism, err := geometry.NewHexagonalPrism(spec.Edge, edgeO, [2]float64{}, bc)
	if err != nil {
		return nil, Overlay{}, fmt.Errorf("core: %w", err)
	}
	region := geometry.Region(prism.Inside())
	if axial != nil {
		region = geometry.And(region, axial)
	}

	overlay, err := overlayOf(lat, spec.Edge, edgeO, "Assemblies")
	if err != nil {
		return nil, Overlay{}, err
	}
	cell := &geometry.Cell{Name: "core", Region: region, Lattice: lat}
	return geometry.NewUniverse("root", cell), overlay, nil
}

func overlayOf(lat *geometry.HexLattice, edge float64, o hexlat.Orientation, label string) (Overlay, error) {
	centers, err := lat.Centers()
	if err != nil {
		return Overlay{}, err
	}
	outline, err := hexlat.Hexagon(edge, o)
	if err != nil {
		return Overlay{}, err
	}
	return Overlay{Label: label, Centers: centers, Boundary: outline}, nil
}

func (b *builder) plot(m *Model, spec PlotSpec) (*Plot, error) {
	p := &Plot{
		Filename: spec.Filename,
		Basis:    spec.Basis,
		ColorBy:  spec.ColorBy,
		Colors:   map[int]color.RGBA{},
	}
	copy(p.Origin[:], spec.Origin)
	copy(p.Width[:], spec.Width)
	copy(p.Pixels[:], spec.Pixels)

	for name, col := range spec.Colors {
		rgb, err := ParseColor(col)
		if err != nil {
			return nil, &ValidationError{msg: fmt.Sprintf("plot %q: %v", spec.Filename, err)}
		}
		if spec.ColorBy == "cell" {
			cell, err := m.Geometry.FindCell(name)
			if err != nil {
				return nil, fmt.Errorf("plot %q: %w", spec.Filename, err)
			}
			p.Colors[cell.ID] = rgb
			continue
		}
		p.Colors[b.materials[name].ID] = rgb
	}
	return p, nil
}
