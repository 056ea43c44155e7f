package material

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNuclide(t *testing.T) {
	tests := []struct {
		name string
		want Nuclide
	}{
		{"U238", Nuclide{Symbol: "U", Z: 92, A: 238}},
		{"Pu239", Nuclide{Symbol: "Pu", Z: 94, A: 239}},
		{"H1", Nuclide{Symbol: "H", Z: 1, A: 1}},
		{"Am242_m1", Nuclide{Symbol: "Am", Z: 95, A: 242, Meta: 1}},
	}
	for _, tt := range tests {
		got, err := ParseNuclide(tt.name)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, got)
		require.Equal(t, tt.name, got.String())
	}

	n, err := ParseNuclide("U235")
	require.NoError(t, err)
	require.Equal(t, 922350, n.ZAID())

	c0, err := ParseNuclide("C0")
	require.NoError(t, err)
	require.True(t, c0.Natural())
	require.Equal(t, 6, c0.Z)
	require.Equal(t, "C0", c0.String())

	for _, bad := range []string{"", "U", "238", "Xx12", "U12", "Am242_mx", "C0_m1"} {
		_, err := ParseNuclide(bad)
		require.Error(t, err, bad)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, MetallicFuel("fuel", InnerFuelVector).Validate())
	require.NoError(t, StainlessSteel("steel").Validate())
	require.NoError(t, Sodium("na").Validate())

	m := New("bad").AddNuclide("U238", 1, WeightPercent).AddNuclide("U235", 1, AtomPercent).SetDensity("g/cm3", 10)
	require.ErrorContains(t, m.Validate(), "cannot mix")

	m = New("bad").AddNuclide("U238", 1, WeightPercent)
	require.ErrorContains(t, m.Validate(), "density")

	m = New("bad").AddNuclide("U238", 1, WeightPercent).SetDensity("lb/ft3", 1)
	require.ErrorContains(t, m.Validate(), "unknown density unit")

	m = New("bad").AddElement("Pu", 1, AtomPercent).SetDensity("g/cm3", 1)
	require.ErrorContains(t, m.Validate(), "no natural composition")

	m = New("bad").AddNuclide("U238", 0, AtomPercent).SetDensity("g/cm3", 1)
	require.ErrorContains(t, m.Validate(), "positive amount")

	require.Error(t, New("").Validate())
}

func TestExpand_AtomPercentKeepsAbundances(t *testing.T) {
	m := New("water-ish").AddElement("O", 1, AtomPercent).SetDensity("g/cm3", 1)
	comps, err := m.Expand()
	require.NoError(t, err)
	require.Len(t, comps, 3)
	require.Equal(t, "O16", comps[0].Name)
	require.InDelta(t, 0.99757, comps[0].Percent, 1e-12)
	require.Equal(t, AtomPercent, comps[0].Type)
	require.False(t, comps[0].Element)
}

func TestExpand_WeightPercentConservesTotal(t *testing.T) {
	steel := StainlessSteel("steel")
	comps, err := steel.Expand()
	require.NoError(t, err)

	var sum float64
	for _, c := range comps {
		require.Equal(t, WeightPercent, c.Type)
		sum += c.Percent
	}
	require.InDelta(t, steel.Total(), sum, 1e-9)
	require.InDelta(t, 100.0, sum, 1e-9)
}

func TestExpand_WeightFractionsFavourHeavyIsotopes(t *testing.T) {
	m := New("zr").AddElement("Zr", 100, WeightPercent).SetDensity("g/cm3", 6.5)
	comps, err := m.Expand()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, c := range comps {
		byName[c.Name] = c.Percent
	}
	// weight share of Zr96 exceeds its atom share
	require.Greater(t, byName["Zr96"], 2.80)
	require.Less(t, byName["Zr90"], 51.45)
}

func TestExpand_MergesDuplicates(t *testing.T) {
	m := New("mix").
		AddNuclide("Na23", 0.5, AtomPercent).
		AddElement("Na", 0.5, AtomPercent).
		SetDensity("g/cm3", 0.9)
	comps, err := m.Expand()
	require.NoError(t, err)
	require.Len(t, comps, 1)
	require.InDelta(t, 1.0, comps[0].Percent, 1e-12)
}

func TestFissionable(t *testing.T) {
	require.True(t, MetallicFuel("fuel", OuterFuelVector).Fissionable())
	require.False(t, StainlessSteel("steel").Fissionable())
	require.False(t, Sodium("na").Fissionable())
}

func TestFuelVector_PuFraction(t *testing.T) {
	require.InDelta(t, 20.0/80.0, InnerFuelVector.PuFraction(), 1e-12)
	require.InDelta(t, 17.0/80.0, OuterFuelVector.PuFraction(), 1e-12)
	require.Zero(t, FuelVector{}.PuFraction())
}

func TestPercentType_Engine(t *testing.T) {
	require.Equal(t, "ao", AtomFraction.Engine())
	require.Equal(t, "wo", WeightPercent.Engine())
}

func TestExpand_KeepNatural(t *testing.T) {
	steel := StainlessSteel("steel")
	steel.KeepNatural = map[string]bool{"C": true}
	require.NoError(t, steel.Validate())

	comps, err := steel.Expand()
	require.NoError(t, err)

	names := map[string]float64{}
	for _, c := range comps {
		names[c.Name] = c.Percent
	}
	require.Contains(t, names, "C0")
	require.InDelta(t, 0.08, names["C0"], 1e-12)
	require.NotContains(t, names, "C12")
	require.NotContains(t, names, "C13")
	require.Contains(t, names, "Fe56")
}
