package reactor

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosfr/internal/geometry"
	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/material"
)

// ValidationError represents a configuration error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks the configuration, including every cross reference by
// name. It reports the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("case name is required")
	}

	materials := map[string]bool{}
	for i, m := range c.Materials {
		if m.Name == "" {
			return invalid("material %d: name is required", i+1)
		}
		if materials[m.Name] {
			return invalid("material %q is defined twice", m.Name)
		}
		materials[m.Name] = true
		if m.Density <= 0 {
			return invalid("material %q: density must be positive", m.Name)
		}
		if len(m.Components) == 0 {
			return invalid("material %q: at least one component is required", m.Name)
		}
		for j, comp := range m.Components {
			if (comp.Nuclide == "") == (comp.Element == "") {
				return invalid("material %q component %d: give exactly one of nuclide or element", m.Name, j+1)
			}
			if comp.Percent <= 0 {
				return invalid("material %q component %d: percent must be positive", m.Name, j+1)
			}
		}
	}
	material := func(where, name string, optional bool) error {
		if name == "" {
			if optional {
				return nil
			}
			return invalid("%s: material is required", where)
		}
		if !materials[name] {
			return invalid("%s: unknown material %q", where, name)
		}
		return nil
	}

	pins := map[string]bool{}
	for i, p := range c.Pins {
		if p.Name == "" {
			return invalid("pin %d: name is required", i+1)
		}
		if pins[p.Name] {
			return invalid("pin %q is defined twice", p.Name)
		}
		pins[p.Name] = true
		if err := c.validatePin(p, material); err != nil {
			return err
		}
	}

	assemblies := map[string]bool{}
	for i, a := range c.Assemblies {
		if a.Name == "" {
			return invalid("assembly %d: name is required", i+1)
		}
		if assemblies[a.Name] {
			return invalid("assembly %q is defined twice", a.Name)
		}
		assemblies[a.Name] = true

		where := fmt.Sprintf("assembly %q", a.Name)
		if a.Rings < 1 {
			return invalid("%s: rings must be at least 1", where)
		}
		if a.Pitch <= 0 {
			return invalid("%s: pitch must be positive", where)
		}
		if a.Edge <= 0 {
			return invalid("%s: edge must be positive", where)
		}
		if err := orientation(where, a.Orientation, a.EdgeOrientation); err != nil {
			return err
		}
		if err := boundary(where, a.Boundary); err != nil {
			return err
		}
		if err := material(where+" background", a.Background, false); err != nil {
			return err
		}
		if err := material(where+" surround", a.Surround, true); err != nil {
			return err
		}
		if len(a.RingPins) == 0 && a.Pin == "" {
			return invalid("%s: pin is required", where)
		}
		if len(a.RingPins) > 0 && len(a.RingPins) != a.Rings {
			return invalid("%s: ring_pins has %d entries for %d rings", where, len(a.RingPins), a.Rings)
		}
		for _, name := range append([]string{a.Pin}, a.RingPins...) {
			if name != "" && !pins[name] {
				return invalid("%s: unknown pin %q", where, name)
			}
		}
	}

	if c.Core != nil {
		if err := c.validateCore(assemblies, material); err != nil {
			return err
		}
	} else {
		if c.Root == "" {
			return invalid("either core or root assembly is required")
		}
		if !assemblies[c.Root] {
			return invalid("root: unknown assembly %q", c.Root)
		}
	}

	if err := c.Settings.validate(); err != nil {
		return err
	}

	meshes := map[string]bool{}
	for i, m := range c.Meshes {
		if m.Name == "" {
			return invalid("mesh %d: name is required", i+1)
		}
		if meshes[m.Name] {
			return invalid("mesh %q is defined twice", m.Name)
		}
		meshes[m.Name] = true
		n := len(m.Dimension)
		if n != 2 && n != 3 {
			return invalid("mesh %q: dimension must have 2 or 3 entries", m.Name)
		}
		if len(m.LowerLeft) != n || len(m.UpperRight) != n {
			return invalid("mesh %q: lower_left and upper_right must match the dimension", m.Name)
		}
		for k := 0; k < n; k++ {
			if m.Dimension[k] < 1 {
				return invalid("mesh %q: dimension entries must be positive", m.Name)
			}
			if m.UpperRight[k] <= m.LowerLeft[k] {
				return invalid("mesh %q: upper_right must exceed lower_left", m.Name)
			}
		}
	}

	tallies := map[string]bool{}
	for i, t := range c.Tallies {
		if t.Name == "" {
			return invalid("tally %d: name is required", i+1)
		}
		if tallies[t.Name] {
			return invalid("tally %q is defined twice", t.Name)
		}
		tallies[t.Name] = true
		if len(t.Scores) == 0 {
			return invalid("tally %q: at least one score is required", t.Name)
		}
		for _, s := range t.Scores {
			if !ValidScore(s) {
				return invalid("tally %q: unknown score %q", t.Name, s)
			}
		}
		for _, f := range t.Filters {
			switch FilterKind(f.Type) {
			case CellFilter:
				if len(f.Bins) == 0 {
					return invalid("tally %q: cell filter needs bins", t.Name)
				}
			case MaterialFilter:
				if len(f.Bins) == 0 {
					return invalid("tally %q: material filter needs bins", t.Name)
				}
				for _, b := range f.Bins {
					if err := material(fmt.Sprintf("tally %q filter", t.Name), b, false); err != nil {
						return err
					}
				}
			case MeshFilter:
				if !meshes[f.Mesh] {
					return invalid("tally %q: unknown mesh %q", t.Name, f.Mesh)
				}
			default:
				return invalid("tally %q: unknown filter type %q", t.Name, f.Type)
			}
		}
	}

	for i, p := range c.Plots {
		where := fmt.Sprintf("plot %d", i+1)
		if p.Filename == "" {
			return invalid("%s: filename is required", where)
		}
		if len(p.Width) != 2 || p.Width[0] <= 0 || p.Width[1] <= 0 {
			return invalid("%s: width must be two positive numbers", where)
		}
		if len(p.Pixels) != 2 || p.Pixels[0] < 1 || p.Pixels[1] < 1 {
			return invalid("%s: pixels must be two positive integers", where)
		}
		if len(p.Origin) != 0 && len(p.Origin) != 3 {
			return invalid("%s: origin must have 3 entries", where)
		}
		switch p.Basis {
		case "xy", "xz", "yz":
		default:
			return invalid("%s: unknown basis %q", where, p.Basis)
		}
		switch p.ColorBy {
		case "material", "cell":
		default:
			return invalid("%s: color_by must be material or cell", where)
		}
		for name, col := range p.Colors {
			if p.ColorBy == "material" {
				if err := material(where+" colors", name, false); err != nil {
					return err
				}
			}
			if _, err := ParseColor(col); err != nil {
				return invalid("%s: %v", where, err)
			}
		}
	}

	return c.Engine.validate()
}

func (e EngineSpec) validate() error {
	if e.Threads < 0 {
		return invalid("engine threads must not be negative")
	}
	for _, el := range e.NaturalElements {
		if _, err := material.Element(el); err != nil {
			return invalid("engine natural_elements: %v", err)
		}
	}
	return nil
}

func (c *Config) validatePin(p PinSpec, material func(string, string, bool) error) error {
	where := fmt.Sprintf("pin %q", p.Name)
	if p.CellEdge <= 0 {
		return invalid("%s: cell_edge must be positive", where)
	}
	if err := orientation(where, p.CellOrientation); err != nil {
		return err
	}
	if p.FuelRadius <= 0 {
		return invalid("%s: fuel_radius must be positive", where)
	}
	if err := material(where+" fuel", p.Fuel, false); err != nil {
		return err
	}
	if err := material(where+" coolant", p.Coolant, false); err != nil {
		return err
	}

	outer := p.FuelRadius
	switch p.Kind {
	case PinFuel:
		if !(p.FuelRadius < p.CladInnerRadius && p.CladInnerRadius < p.CladOuterRadius) {
			return invalid("%s: radii must satisfy fuel < clad inner < clad outer", where)
		}
		if err := material(where+" gap", p.Gap, true); err != nil {
			return err
		}
		if err := material(where+" clad", p.Clad, false); err != nil {
			return err
		}
		outer = p.CladOuterRadius
	case PinRod:
	default:
		return invalid("%s: unknown kind %q (fuel or rod)", where, p.Kind)
	}

	// the outermost cylinder must fit inside the cell prism
	if apothem := p.CellEdge * hexApothem; outer >= apothem {
		return invalid("%s: radius %g does not fit in a cell of edge %g", where, outer, p.CellEdge)
	}
	return nil
}

func (c *Config) validateCore(assemblies map[string]bool, material func(string, string, bool) error) error {
	core := c.Core
	if core.Pitch <= 0 {
		return invalid("core: pitch must be positive")
	}
	if len(core.Rings) == 0 {
		return invalid("core: at least one ring is required")
	}
	for i, name := range core.Rings {
		if !assemblies[name] {
			return invalid("core ring %d: unknown assembly %q", i, name)
		}
	}
	if core.Edge <= 0 {
		return invalid("core: edge must be positive")
	}
	if err := orientation("core", core.Orientation, core.EdgeOrientation); err != nil {
		return err
	}
	if err := material("core background", core.Background, false); err != nil {
		return err
	}
	if err := boundary("core", core.Boundary); err != nil {
		return err
	}
	if core.Height < 0 {
		return invalid("core: height must not be negative")
	}
	return boundary("core axial", core.AxialBoundary)
}

func (s SettingsSpec) validate() error {
	switch RunMode(s.RunMode) {
	case Eigenvalue, FixedSource:
	default:
		return invalid("settings: unknown run mode %q", s.RunMode)
	}
	if s.Particles < 1 {
		return invalid("settings: particles must be positive")
	}
	if s.Batches < 1 {
		return invalid("settings: batches must be positive")
	}
	if s.Inactive < 0 || s.Inactive >= s.Batches {
		return invalid("settings: inactive batches must be in [0, batches)")
	}
	if s.Trigger != nil && s.Trigger.Active && s.Trigger.MaxBatches < s.Batches {
		return invalid("settings: trigger max_batches must be at least batches")
	}
	switch s.TemperatureMethod {
	case "", "nearest", "interpolation":
	default:
		return invalid("settings: unknown temperature method %q", s.TemperatureMethod)
	}

	src := s.Source
	switch SourceKind(src.Type) {
	case PointSource:
		if len(src.Point) != 3 {
			return invalid("settings: point source needs 3 coordinates")
		}
	case BoxSource:
		if len(src.LowerLeft) != 3 || len(src.UpperRight) != 3 {
			return invalid("settings: box source needs lower_left and upper_right with 3 coordinates")
		}
		for k := 0; k < 3; k++ {
			if src.UpperRight[k] <= src.LowerLeft[k] {
				return invalid("settings: box source upper_right must exceed lower_left")
			}
		}
	default:
		return invalid("settings: unknown source type %q (point or box)", src.Type)
	}
	return nil
}

func orientation(where string, values ...string) error {
	for _, v := range values {
		if !hexlat.Orientation(v).Valid() {
			return invalid("%s: orientation must be x or y, got %q", where, v)
		}
	}
	return nil
}

func boundary(where, b string) error {
	if _, err := geometry.ParseBoundary(b); err != nil {
		return invalid("%s: %v", where, err)
	}
	return nil
}
