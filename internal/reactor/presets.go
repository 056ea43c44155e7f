package reactor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexiusacademia/gosfr/internal/material"
)

// ErrUnknownPreset is returned by Preset for an unknown name.
var ErrUnknownPreset = errors.New("reactor: unknown preset")

// Material names shared by the presets.
const (
	fuelName      = "metallic fuel"
	innerFuelName = "metallic inner fuel"
	outerFuelName = "metallic outer fuel"
	steelName     = "stainless steel clad"
	sodiumName    = "sodium coolant"
)

var presets = map[string]func() *Config{
	"pincell":         PincellPreset,
	"pincell-tallies": PincellTalliesPreset,
	"core":            CorePreset,
}

// PresetNames lists the built-in cases.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of a built-in case with defaults applied.
// Presets split natural elements into isotopes, which suits isotopic
// libraries such as ENDF/B-VIII.0. For ENDF/B-VII.1, which carries carbon
// only as C0, set engine.natural_elements to [C].
func Preset(name string) (*Config, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	cfg := f()
	cfg.ApplyDefaults()
	return cfg, nil
}

// specOf converts a library material into its configuration form.
func specOf(m *material.Material) MaterialSpec {
	spec := MaterialSpec{
		Name:        m.Name,
		Density:     m.Density,
		Units:       m.Units,
		Depletable:  m.Depletable,
		Temperature: m.Temperature,
	}
	for _, c := range m.Components {
		cs := ComponentSpec{Percent: c.Percent, Type: string(c.Type)}
		if c.Element {
			cs.Element = c.Name
		} else {
			cs.Nuclide = c.Name
		}
		spec.Components = append(spec.Components, cs)
	}
	return spec
}

// fuelPin is the standard fuel pin with a void gap.
func fuelPin(name, fuel string, fuelR, cladIR, cladOR float64) PinSpec {
	return PinSpec{
		Name:            name,
		Kind:            PinFuel,
		Fuel:            fuel,
		Clad:            steelName,
		Coolant:         sodiumName,
		FuelRadius:      fuelR,
		CladInnerRadius: cladIR,
		CladOuterRadius: cladOR,
		CellEdge:        0.85,
	}
}

// PincellPreset is a single reflected 6-ring assembly of identical fuel
// pins driven from a point source.
func PincellPreset() *Config {
	return &Config{
		Name:        "pincell",
		Description: "6-ring hexagonal fuel assembly with reflective boundary",
		Materials: []MaterialSpec{
			specOf(material.MetallicFuel(fuelName, material.InnerFuelVector)),
			specOf(material.StainlessSteel(steelName)),
			specOf(material.Sodium(sodiumName)),
		},
		Pins: []PinSpec{fuelPin("pin", fuelName, 0.3000, 0.3075, 0.3575)},
		Assemblies: []AssemblySpec{{
			Name:            "assembly",
			Pin:             "pin",
			Rings:           6,
			Pitch:           0.85,
			Orientation:     "y",
			Background:      sodiumName,
			Edge:            5.1,
			EdgeOrientation: "y",
			Boundary:        "reflective",
		}},
		Root: "assembly",
		Settings: SettingsSpec{
			RunMode:   string(Eigenvalue),
			Particles: 1000,
			Batches:   100,
			Inactive:  10,
			Source:    SourceSpec{Type: string(PointSource), Point: []float64{0, 0, 0}},
		},
		Plots: []PlotSpec{{
			Filename: "hex_lattice_plot",
			Basis:    "xy",
			Width:    []float64{15, 15},
			Pixels:   []int{400, 400},
			ColorBy:  "material",
			Colors: map[string]string{
				fuelName:   "green",
				steelName:  "gray",
				sodiumName: "blue",
			},
		}},
	}
}

// PincellTalliesPreset adds a fuel reaction tally, a mesh flux tally and
// a global reaction rate tally to PincellPreset.
func PincellTalliesPreset() *Config {
	cfg := PincellPreset()
	cfg.Name = "pincell-tallies"
	cfg.Description = "6-ring hexagonal fuel assembly with fuel, flux and reaction rate tallies"
	cfg.Settings.OutputTallies = true
	cfg.Meshes = []MeshSpec{{
		Name:       "flux mesh",
		Dimension:  []int{50, 50, 1},
		LowerLeft:  []float64{-10, -10, -1},
		UpperRight: []float64{10, 10, 1},
	}}
	cfg.Tallies = []TallySpec{
		{
			Name:     "fuel reactions",
			Filters:  []FilterSpec{{Type: string(CellFilter), Bins: []string{"pin fuel"}}},
			Nuclides: []string{"U238"},
			Scores:   []string{"total", "fission", "absorption", "(n,gamma)"},
		},
		{
			Name:    "flux",
			Filters: []FilterSpec{{Type: string(MeshFilter), Mesh: "flux mesh"}},
			Scores:  []string{"flux"},
		},
		{
			Name:   "reaction rates",
			Scores: []string{"fission", "absorption"},
		},
	}
	return cfg
}

// CorePreset is the full core: 4 rings of inner fuel assemblies, 3 of
// outer fuel and 4 of steel reflector, 100 cm tall.
func CorePreset() *Config {
	reflector := PinSpec{
		Name:       "reflector pin",
		Kind:       PinRod,
		Fuel:       steelName,
		Coolant:    sodiumName,
		FuelRadius: 0.2980,
		CellEdge:   0.85,
	}
	assembly := func(name, pin string, rings int, edge float64) AssemblySpec {
		return AssemblySpec{
			Name:            name,
			Pin:             pin,
			Rings:           rings,
			Pitch:           0.85,
			Orientation:     "x",
			Background:      sodiumName,
			Edge:            edge,
			EdgeOrientation: "y",
			Surround:        sodiumName,
		}
	}

	rings := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		switch {
		case i < 4:
			rings = append(rings, "inner assembly")
		case i < 7:
			rings = append(rings, "outer assembly")
		default:
			rings = append(rings, "reflector assembly")
		}
	}

	return &Config{
		Name:        "core",
		Description: "SFR full core with inner and outer metallic fuel zones and steel reflector",
		Materials: []MaterialSpec{
			specOf(material.MetallicFuel(innerFuelName, material.InnerFuelVector)),
			specOf(material.MetallicFuel(outerFuelName, material.OuterFuelVector)),
			specOf(material.StainlessSteel(steelName)),
			specOf(material.Sodium(sodiumName)),
		},
		Pins: []PinSpec{
			fuelPin("inner pin", innerFuelName, 0.3000, 0.3075, 0.3575),
			fuelPin("outer pin", outerFuelName, 0.2980, 0.3050, 0.3550),
			reflector,
		},
		Assemblies: []AssemblySpec{
			assembly("inner assembly", "inner pin", 4, 8.0),
			assembly("outer assembly", "outer pin", 6, 12.2),
			assembly("reflector assembly", "reflector pin", 4, 8.0),
		},
		Core: &CoreSpec{
			Pitch:           14.085,
			Orientation:     "x",
			Background:      sodiumName,
			Rings:           rings,
			Edge:            10 * 14.085,
			EdgeOrientation: "x",
			Boundary:        "reflective",
			Height:          100,
			AxialBoundary:   "reflective",
		},
		Settings: SettingsSpec{
			RunMode:   string(Eigenvalue),
			Particles: 20000,
			Batches:   100,
			Inactive:  10,
			Source: SourceSpec{
				Type:            string(BoxSource),
				LowerLeft:       []float64{-50, -50, -50},
				UpperRight:      []float64{50, 50, 50},
				OnlyFissionable: true,
			},
			TemperatureMethod: "interpolation",
			OutputTallies:     true,
			Trigger:           &TriggerSpec{Active: true, MaxBatches: 200, BatchInterval: 10},
		},
		Meshes: []MeshSpec{{
			Name:       "flux mesh",
			Dimension:  []int{100, 100, 1},
			LowerLeft:  []float64{-150, -150, -50},
			UpperRight: []float64{150, 150, 50},
		}},
		Tallies: []TallySpec{{
			Name:    "flux",
			Filters: []FilterSpec{{Type: string(MeshFilter), Mesh: "flux mesh"}},
			Scores:  []string{"flux"},
		}},
		Plots: []PlotSpec{{
			Filename: "sfr_core_geometry",
			Basis:    "xy",
			Width:    []float64{350, 350},
			Pixels:   []int{1000, 1000},
			ColorBy:  "material",
			Colors: map[string]string{
				innerFuelName: "red",
				outerFuelName: "orange",
				steelName:     "gray",
				sodiumName:    "skyblue",
			},
		}},
	}
}
