// Package material describes the compositions handed to the transport
// engine: nuclides and natural elements with weight or atom percentages and
// a mass density.
package material

import (
	"fmt"
	"strings"
)

// PercentType is the unit of a component quantity.
type PercentType string

const (
	WeightPercent PercentType = "wo"
	AtomPercent   PercentType = "ao"
	AtomFraction  PercentType = "af"
)

// Engine returns the attribute name the engine uses for this quantity.
// Atom fractions are normalised by the engine the same way atom percents are.
func (p PercentType) Engine() string {
	if p == AtomFraction {
		return string(AtomPercent)
	}
	return string(p)
}

func (p PercentType) valid() bool {
	return p == WeightPercent || p == AtomPercent || p == AtomFraction
}

// Density units understood by the engine.
var densityUnits = map[string]bool{
	"g/cm3":     true,
	"g/cc":      true,
	"kg/m3":     true,
	"atom/b-cm": true,
	"atom/cm3":  true,
}

// Component is one nuclide or natural element of a material.
type Component struct {
	Name    string      // nuclide ("U238") or element ("Zr")
	Percent float64     // quantity in units of Type
	Type    PercentType // wo, ao or af
	Element bool        // expand to natural isotopes before export
}

// Material is a named composition with a density.
type Material struct {
	ID          int
	Name        string
	Components  []Component
	Density     float64
	Units       string
	Depletable  bool
	Temperature float64 // K, zero leaves the engine default

	// KeepNatural lists elements written as a single natural-element
	// nuclide (C0) instead of being split into isotopes. Libraries such as
	// ENDF/B-VII.1 carry only the natural data set for some elements.
	KeepNatural map[string]bool
}

// New creates an empty material.
func New(name string) *Material {
	return &Material{Name: name}
}

// AddNuclide appends a nuclide component.
func (m *Material) AddNuclide(name string, percent float64, t PercentType) *Material {
	m.Components = append(m.Components, Component{Name: name, Percent: percent, Type: t})
	return m
}

// AddElement appends a natural element component.
func (m *Material) AddElement(symbol string, percent float64, t PercentType) *Material {
	m.Components = append(m.Components, Component{Name: symbol, Percent: percent, Type: t, Element: true})
	return m
}

// SetDensity sets the mass or number density.
func (m *Material) SetDensity(units string, value float64) *Material {
	m.Units = units
	m.Density = value
	return m
}

// Validate checks the material definition.
func (m *Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("material: name is required")
	}
	if !(m.Density > 0) {
		return fmt.Errorf("material %q: density must be positive", m.Name)
	}
	if !densityUnits[m.Units] {
		return fmt.Errorf("material %q: unknown density unit %q", m.Name, m.Units)
	}
	if len(m.Components) == 0 {
		return fmt.Errorf("material %q: no components", m.Name)
	}

	weight, atom := false, false
	for _, c := range m.Components {
		if !c.Type.valid() {
			return fmt.Errorf("material %q: %s has unknown percent type %q", m.Name, c.Name, c.Type)
		}
		if !(c.Percent > 0) {
			return fmt.Errorf("material %q: %s must have a positive amount", m.Name, c.Name)
		}
		if c.Element {
			if _, err := naturalIsotopes(c.Name); err != nil {
				return fmt.Errorf("material %q: %w", m.Name, err)
			}
		} else if _, err := ParseNuclide(c.Name); err != nil {
			return fmt.Errorf("material %q: %w", m.Name, err)
		}
		if c.Type == WeightPercent {
			weight = true
		} else {
			atom = true
		}
	}
	if weight && atom {
		return fmt.Errorf("material %q: cannot mix weight and atom quantities", m.Name)
	}
	return nil
}

// Expand returns the components with every natural element replaced by its
// isotopes, or by its natural-element nuclide when listed in KeepNatural. For weight quantities the natural atom abundances are converted
// to weight fractions first. Nuclides listed more than once are summed.
func (m *Material) Expand() ([]Component, error) {
	var out []Component
	index := map[string]int{}

	add := func(c Component) {
		if i, ok := index[c.Name]; ok {
			out[i].Percent += c.Percent
			return
		}
		index[c.Name] = len(out)
		out = append(out, c)
	}

	for _, c := range m.Components {
		if !c.Element {
			add(c)
			continue
		}
		if m.KeepNatural[c.Name] {
			add(Component{Name: c.Name + "0", Percent: c.Percent, Type: c.Type})
			continue
		}
		isotopes, err := naturalIsotopes(c.Name)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name, err)
		}

		fractions := make([]float64, len(isotopes))
		if c.Type == WeightPercent {
			var elemMass float64
			for _, iso := range isotopes {
				elemMass += iso.abundance * iso.mass
			}
			for i, iso := range isotopes {
				fractions[i] = iso.abundance * iso.mass / elemMass
			}
		} else {
			for i, iso := range isotopes {
				fractions[i] = iso.abundance
			}
		}

		for i, iso := range isotopes {
			add(Component{Name: iso.name, Percent: c.Percent * fractions[i], Type: c.Type})
		}
	}
	return out, nil
}

// Fissionable reports whether the material contains actinides.
func (m *Material) Fissionable() bool {
	for _, c := range m.Components {
		if c.Element {
			if z, err := Element(c.Name); err == nil && z >= 90 {
				return true
			}
			continue
		}
		if n, err := ParseNuclide(c.Name); err == nil && n.Z >= 90 {
			return true
		}
	}
	return false
}

// Total returns the sum of the component quantities.
func (m *Material) Total() float64 {
	var sum float64
	for _, c := range m.Components {
		sum += c.Percent
	}
	return sum
}
