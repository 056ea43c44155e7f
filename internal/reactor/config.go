// Package reactor lifts every dimension, composition and run parameter of
// an SFR case into a configuration file and builds the engine-neutral model
// from it.
package reactor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is a complete case description.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Materials  []MaterialSpec `json:"materials" yaml:"materials"`
	Pins       []PinSpec      `json:"pins" yaml:"pins"`
	Assemblies []AssemblySpec `json:"assemblies" yaml:"assemblies"`

	// Core, when present, is the root of the geometry. Otherwise the
	// assembly named by Root is.
	Core *CoreSpec `json:"core,omitempty" yaml:"core,omitempty"`
	Root string    `json:"root,omitempty" yaml:"root,omitempty"`

	Settings SettingsSpec `json:"settings" yaml:"settings"`
	Meshes   []MeshSpec   `json:"meshes,omitempty" yaml:"meshes,omitempty"`
	Tallies  []TallySpec  `json:"tallies,omitempty" yaml:"tallies,omitempty"`
	Plots    []PlotSpec   `json:"plots,omitempty" yaml:"plots,omitempty"`
	Engine   EngineSpec   `json:"engine" yaml:"engine"`
}

// MaterialSpec describes one material.
type MaterialSpec struct {
	Name        string          `json:"name" yaml:"name"`
	Density     float64         `json:"density" yaml:"density"`
	Units       string          `json:"units,omitempty" yaml:"units,omitempty"` // default g/cm3
	Depletable  bool            `json:"depletable,omitempty" yaml:"depletable,omitempty"`
	Temperature float64         `json:"temperature,omitempty" yaml:"temperature,omitempty"` // K
	Components  []ComponentSpec `json:"components" yaml:"components"`
}

// ComponentSpec is a nuclide or a natural element with its quantity.
// Type is wo, ao or af; atom percent when empty.
type ComponentSpec struct {
	Nuclide string  `json:"nuclide,omitempty" yaml:"nuclide,omitempty"`
	Element string  `json:"element,omitempty" yaml:"element,omitempty"`
	Percent float64 `json:"percent" yaml:"percent"`
	Type    string  `json:"type,omitempty" yaml:"type,omitempty"`
}

// Pin kinds.
const (
	PinFuel = "fuel" // fuel, gap, clad, coolant
	PinRod  = "rod"  // solid rod of the fuel material, coolant
)

// PinSpec describes a pin cell bounded by a hexagonal prism.
type PinSpec struct {
	Name            string  `json:"name" yaml:"name"`
	Kind            string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Fuel            string  `json:"fuel" yaml:"fuel"`
	Gap             string  `json:"gap,omitempty" yaml:"gap,omitempty"` // empty is void
	Clad            string  `json:"clad,omitempty" yaml:"clad,omitempty"`
	Coolant         string  `json:"coolant" yaml:"coolant"`
	FuelRadius      float64 `json:"fuel_radius" yaml:"fuel_radius"`
	CladInnerRadius float64 `json:"clad_inner_radius,omitempty" yaml:"clad_inner_radius,omitempty"`
	CladOuterRadius float64 `json:"clad_outer_radius,omitempty" yaml:"clad_outer_radius,omitempty"`
	CellEdge        float64 `json:"cell_edge" yaml:"cell_edge"`
	CellOrientation string  `json:"cell_orientation,omitempty" yaml:"cell_orientation,omitempty"`
}

// AssemblySpec describes a hexagonal lattice of pins inside a hexagonal
// boundary.
type AssemblySpec struct {
	Name string `json:"name" yaml:"name"`
	Pin  string `json:"pin" yaml:"pin"`
	// RingPins optionally overrides Pin per ring, centre ring first.
	RingPins    []string `json:"ring_pins,omitempty" yaml:"ring_pins,omitempty"`
	Rings       int      `json:"rings" yaml:"rings"`
	Pitch       float64  `json:"pitch" yaml:"pitch"`
	Orientation string   `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Background  string   `json:"background" yaml:"background"`

	Edge            float64 `json:"edge" yaml:"edge"`
	EdgeOrientation string  `json:"edge_orientation,omitempty" yaml:"edge_orientation,omitempty"`
	// Surround fills the space between the boundary and the core lattice
	// cell. Unused when the assembly is the root.
	Surround string `json:"surround,omitempty" yaml:"surround,omitempty"`
	// Boundary applies to the prism when the assembly is the root.
	Boundary string `json:"boundary,omitempty" yaml:"boundary,omitempty"`
}

// CoreSpec describes the core lattice of assemblies.
type CoreSpec struct {
	Pitch       float64 `json:"pitch" yaml:"pitch"`
	Orientation string  `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Background  string  `json:"background" yaml:"background"`
	// Rings names the assembly of every ring, centre ring first.
	Rings []string `json:"rings" yaml:"rings"`

	Edge            float64 `json:"edge,omitempty" yaml:"edge,omitempty"` // default (rings-1)·pitch
	EdgeOrientation string  `json:"edge_orientation,omitempty" yaml:"edge_orientation,omitempty"`
	Boundary        string  `json:"boundary,omitempty" yaml:"boundary,omitempty"`

	// Height > 0 bounds the core axially at ±Height/2.
	Height        float64 `json:"height,omitempty" yaml:"height,omitempty"`
	AxialBoundary string  `json:"axial_boundary,omitempty" yaml:"axial_boundary,omitempty"`
}

// SettingsSpec holds the run parameters.
type SettingsSpec struct {
	RunMode           string       `json:"run_mode,omitempty" yaml:"run_mode,omitempty"`
	Particles         int          `json:"particles" yaml:"particles"`
	Batches           int          `json:"batches" yaml:"batches"`
	Inactive          int          `json:"inactive" yaml:"inactive"`
	Seed              int64        `json:"seed,omitempty" yaml:"seed,omitempty"`
	Source            SourceSpec   `json:"source" yaml:"source"`
	TemperatureMethod string       `json:"temperature_method,omitempty" yaml:"temperature_method,omitempty"`
	OutputTallies     bool         `json:"output_tallies,omitempty" yaml:"output_tallies,omitempty"`
	Trigger           *TriggerSpec `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// SourceSpec is the spatial source distribution.
type SourceSpec struct {
	Type            string    `json:"type" yaml:"type"` // point or box
	Point           []float64 `json:"point,omitempty" yaml:"point,omitempty"`
	LowerLeft       []float64 `json:"lower_left,omitempty" yaml:"lower_left,omitempty"`
	UpperRight      []float64 `json:"upper_right,omitempty" yaml:"upper_right,omitempty"`
	OnlyFissionable bool      `json:"only_fissionable,omitempty" yaml:"only_fissionable,omitempty"`
}

// TriggerSpec controls batch-extension convergence triggers.
type TriggerSpec struct {
	Active        bool `json:"active" yaml:"active"`
	MaxBatches    int  `json:"max_batches" yaml:"max_batches"`
	BatchInterval int  `json:"batch_interval,omitempty" yaml:"batch_interval,omitempty"`
}

// MeshSpec is a regular Cartesian mesh.
type MeshSpec struct {
	Name       string    `json:"name" yaml:"name"`
	Dimension  []int     `json:"dimension" yaml:"dimension"`
	LowerLeft  []float64 `json:"lower_left" yaml:"lower_left"`
	UpperRight []float64 `json:"upper_right" yaml:"upper_right"`
}

// TallySpec requests scores over a set of filters.
type TallySpec struct {
	Name     string       `json:"name" yaml:"name"`
	Filters  []FilterSpec `json:"filters,omitempty" yaml:"filters,omitempty"`
	Nuclides []string     `json:"nuclides,omitempty" yaml:"nuclides,omitempty"`
	Scores   []string     `json:"scores" yaml:"scores"`
}

// FilterSpec selects tally bins: cells or materials by name, or a mesh.
type FilterSpec struct {
	Type string   `json:"type" yaml:"type"`
	Bins []string `json:"bins,omitempty" yaml:"bins,omitempty"`
	Mesh string   `json:"mesh,omitempty" yaml:"mesh,omitempty"`
}

// PlotSpec is a geometry slice plot rendered by the engine.
type PlotSpec struct {
	Filename string            `json:"filename" yaml:"filename"`
	Basis    string            `json:"basis,omitempty" yaml:"basis,omitempty"`
	Origin   []float64         `json:"origin,omitempty" yaml:"origin,omitempty"`
	Width    []float64         `json:"width" yaml:"width"`
	Pixels   []int             `json:"pixels" yaml:"pixels"`
	ColorBy  string            `json:"color_by,omitempty" yaml:"color_by,omitempty"`
	Colors   map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"` // material name → colour
}

// EngineSpec locates and tunes the transport engine.
type EngineSpec struct {
	Executable    string `json:"executable,omitempty" yaml:"executable,omitempty"`
	Threads       int    `json:"threads,omitempty" yaml:"threads,omitempty"`
	CrossSections string `json:"cross_sections,omitempty" yaml:"cross_sections,omitempty"`
	OutputDir     string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// NaturalElements are written as natural-element nuclides (C0) rather
	// than split into isotopes, for libraries without the isotopic data.
	NaturalElements []string `json:"natural_elements,omitempty" yaml:"natural_elements,omitempty"`
}

// LoadFromFile loads a case from a YAML (.yaml, .yml) or JSON file, fills
// defaults and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the case to path, as JSON or YAML by extension.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("unsupported config format %q (use .yaml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyDefaults fills optional fields.
func (c *Config) ApplyDefaults() {
	for i := range c.Materials {
		if c.Materials[i].Units == "" {
			c.Materials[i].Units = "g/cm3"
		}
	}
	for i := range c.Pins {
		p := &c.Pins[i]
		if p.Kind == "" {
			p.Kind = PinFuel
		}
		if p.CellOrientation == "" {
			p.CellOrientation = "y"
		}
	}
	for i := range c.Assemblies {
		a := &c.Assemblies[i]
		if a.Orientation == "" {
			a.Orientation = "y"
		}
		if a.EdgeOrientation == "" {
			a.EdgeOrientation = "y"
		}
	}
	if c.Core != nil {
		if c.Core.Orientation == "" {
			c.Core.Orientation = "y"
		}
		if c.Core.EdgeOrientation == "" {
			c.Core.EdgeOrientation = c.Core.Orientation
		}
		if c.Core.Edge == 0 && len(c.Core.Rings) > 1 {
			c.Core.Edge = float64(len(c.Core.Rings)-1) * c.Core.Pitch
		}
		if c.Core.Height > 0 && c.Core.AxialBoundary == "" {
			c.Core.AxialBoundary = "reflective"
		}
	}
	if c.Settings.RunMode == "" {
		c.Settings.RunMode = string(Eigenvalue)
	}
	for i := range c.Plots {
		p := &c.Plots[i]
		if p.Basis == "" {
			p.Basis = "xy"
		}
		if p.ColorBy == "" {
			p.ColorBy = "material"
		}
	}
	if c.Engine.Executable == "" {
		c.Engine.Executable = "openmc"
	}
	if c.Engine.OutputDir == "" {
		c.Engine.OutputDir = "output"
	}
}
