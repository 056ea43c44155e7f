package openmc

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/reactor"
)

func buildPreset(t *testing.T, name string) *reactor.Model {
	t.Helper()
	cfg, err := reactor.Preset(name)
	require.NoError(t, err)
	m, err := reactor.Build(cfg)
	require.NoError(t, err)
	return m
}

func readXML(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "<?xml"))
	require.NoError(t, xml.Unmarshal(data, v))
}

func TestExport_PincellTallies(t *testing.T) {
	m := buildPreset(t, "pincell-tallies")
	dir := t.TempDir()

	files, err := Export(m, dir)
	require.NoError(t, err)
	require.Len(t, files, 5)

	var mats materialsXML
	readXML(t, filepath.Join(dir, MaterialsFile), &mats)
	require.Len(t, mats.Materials, 3)
	fuel := mats.Materials[0]
	require.Equal(t, "metallic fuel", fuel.Name)
	require.True(t, fuel.Depletable)
	require.Equal(t, densityXML{Units: "g/cm3", Value: 15.5}, fuel.Density)
	names := map[string]nuclideXML{}
	for _, n := range fuel.Nuclides {
		names[n.Name] = n
	}
	require.Equal(t, 60.0, names["U238"].WO)
	require.Contains(t, names, "Zr90")
	require.NotContains(t, names, "Zr")
	sodium := mats.Materials[2]
	require.Equal(t, []nuclideXML{{Name: "Na23", AO: 1}}, sodium.Nuclides)

	var geom geometryXML
	readXML(t, filepath.Join(dir, GeometryFile), &geom)
	require.Len(t, geom.Cells, 6)
	require.Len(t, geom.Lattices, 1)
	lat := geom.Lattices[0]
	require.Equal(t, 6, lat.NRings)
	require.Equal(t, "y", lat.Orientation)
	require.Equal(t, "0.85", lat.Pitch)
	require.Equal(t, "0 0", lat.Center)
	require.Len(t, strings.Fields(lat.Universes), hexlat.Positions(6))

	gap, err := m.Geometry.FindCell("pin gap")
	require.NoError(t, err)
	for _, c := range geom.Cells {
		if c.ID == gap.ID {
			require.Equal(t, "void", c.Material)
		}
	}
	reflective := 0
	for _, s := range geom.Surfaces {
		if s.Boundary == "reflective" {
			reflective++
		}
	}
	require.Equal(t, 6, reflective)

	var settings settingsXML
	readXML(t, filepath.Join(dir, SettingsFile), &settings)
	require.Equal(t, "eigenvalue", settings.RunMode)
	require.Equal(t, 1000, settings.Particles)
	require.Equal(t, "point", settings.Source.Space.Type)
	require.Equal(t, "0 0 0", settings.Source.Space.Parameters)
	require.True(t, settings.Output.Tallies)
	require.Nil(t, settings.Trigger)

	var tallies talliesXML
	readXML(t, filepath.Join(dir, TalliesFile), &tallies)
	require.Len(t, tallies.Meshes, 1)
	require.Equal(t, "50 50 1", tallies.Meshes[0].Dimension)
	require.Equal(t, "-10 -10 -1", tallies.Meshes[0].LowerLeft)
	fuelCell, err := m.Geometry.FindCell("pin fuel")
	require.NoError(t, err)
	require.Equal(t, filterXML{ID: 1, Type: "cell", Bins: strconv.Itoa(fuelCell.ID)}, tallies.Filters[0])
	require.Equal(t, filterXML{ID: 2, Type: "mesh", Bins: "1"}, tallies.Filters[1])
	require.Equal(t, tallyXML{ID: 1, Name: "fuel reactions", Filters: "1", Nuclides: "U238", Scores: "total fission absorption (n,gamma)"}, tallies.Tallies[0])
	require.Equal(t, tallyXML{ID: 3, Name: "reaction rates", Scores: "fission absorption"}, tallies.Tallies[2])

	var plots plotsXML
	readXML(t, filepath.Join(dir, PlotsFile), &plots)
	require.Len(t, plots.Plots, 1)
	p := plots.Plots[0]
	require.Equal(t, "hex_lattice_plot", p.Filename)
	require.Equal(t, "15 15", p.Width)
	require.Equal(t, "400 400", p.Pixels)
	require.Equal(t, []colorXML{{ID: 1, RGB: "0 128 0"}, {ID: 2, RGB: "128 128 128"}, {ID: 3, RGB: "0 0 255"}}, p.Colors)
}

func TestExport_SkipsEmptyTallies(t *testing.T) {
	m := buildPreset(t, "pincell")
	m.Plots = nil
	dir := t.TempDir()

	files, err := Export(m, dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	require.NoFileExists(t, filepath.Join(dir, TalliesFile))
	require.NoFileExists(t, filepath.Join(dir, PlotsFile))
}

func TestExport_Core(t *testing.T) {
	m := buildPreset(t, "core")
	dir := t.TempDir()
	_, err := Export(m, dir)
	require.NoError(t, err)

	var settings settingsXML
	readXML(t, filepath.Join(dir, SettingsFile), &settings)
	require.Equal(t, "fission", settings.Source.Space.Type)
	require.Equal(t, "-50 -50 -50 50 50 50", settings.Source.Space.Parameters)
	require.Equal(t, "interpolation", settings.TemperatureMethod)
	require.Equal(t, &triggerXML{Active: true, MaxBatches: 200, BatchInterval: 10}, settings.Trigger)

	var geom geometryXML
	readXML(t, filepath.Join(dir, GeometryFile), &geom)
	require.Len(t, geom.Lattices, 4)
	core := geom.Lattices[0]
	require.Equal(t, 11, core.NRings)
	require.Equal(t, "x", core.Orientation)
	require.Len(t, strings.Fields(core.Universes), hexlat.Positions(11))

	var tallies talliesXML
	readXML(t, filepath.Join(dir, TalliesFile), &tallies)
	require.Equal(t, "flux", tallies.Tallies[0].Name)
	require.Equal(t, "100 100 1", tallies.Meshes[0].Dimension)
}

func TestExport_NaturalElementNuclides(t *testing.T) {
	cfg, err := reactor.Preset("pincell")
	require.NoError(t, err)
	cfg.Engine.NaturalElements = []string{"C"}
	m, err := reactor.Build(cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = Export(m, dir)
	require.NoError(t, err)

	var mats materialsXML
	readXML(t, filepath.Join(dir, MaterialsFile), &mats)
	steel := mats.Materials[1]
	require.Equal(t, "stainless steel clad", steel.Name)
	names := map[string]nuclideXML{}
	for _, n := range steel.Nuclides {
		names[n.Name] = n
	}
	require.Equal(t, 0.08, names["C0"].WO)
	require.NotContains(t, names, "C12")
	require.Contains(t, names, "Fe56")
}
