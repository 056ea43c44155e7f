package openmc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosfr/internal/results"
)

const sampleReport = `
 ============================>     TALLY 1: FUEL REACTIONS     <============================

 Cell 5
   U238
     Total Reaction Rate                  0.413 +/- 0.00211
     Fission Rate                         0.00512 +/- 4.1e-05
     Absorption Rate                      0.0187 +/- 0.000102
     (n,gamma)                            0.0136 +/- 9.8e-05

 ============================>     TALLY 2: FLUX     <============================

 Mesh Index (1, 1, 1)
   Total Material
     Flux                                 1.5 +/- 0.1
 Mesh Index (2, 1, 1)
   Total Material
     Flux                                 2.5 +/- 0.2
 Mesh Index (1, 2, 1)
   Total Material
     Flux                                 3.5 +/- 0.3
 Mesh Index (2, 2, 1)
   Total Material
     Flux                                 4.5 +/- 0.4

 ============================>     TALLY 3: REACTION RATES     <============================

   Total Material
     Fission Rate                         0.342 +/- 0.0012
     Absorption Rate                      1.02 +/- 0.003
`

func TestParseTallyReport(t *testing.T) {
	tallies, err := ParseTallyReport(strings.NewReader(sampleReport))
	require.NoError(t, err)
	require.Len(t, tallies, 3)

	fuel := tallies[0]
	require.Equal(t, 1, fuel.ID)
	require.Equal(t, "FUEL REACTIONS", fuel.Name)
	require.Len(t, fuel.Entries, 4)
	require.Equal(t, results.Entry{
		Filters: []string{"Cell 5"},
		Cell:    5,
		Nuclide: "U238",
		Score:   "total",
		Mean:    0.413,
		StdDev:  0.00211,
	}, fuel.Entries[0])
	require.Equal(t, "(n,gamma)", fuel.Entries[3].Score)

	flux := tallies[1]
	require.Len(t, flux.Entries, 4)
	require.Equal(t, []int{1, 2, 1}, flux.Entries[2].MeshIndex)
	require.Equal(t, results.TotalNuclide, flux.Entries[2].Nuclide)
	require.Equal(t, "flux", flux.Entries[2].Score)
	require.Equal(t, 3.5, flux.Entries[2].Mean)

	rates := tallies[2]
	e, err := rates.Value("absorption", "")
	require.NoError(t, err)
	require.Empty(t, e.Filters)
	require.Equal(t, 1.02, e.Mean)
}

func TestParseTallyReport_BadValue(t *testing.T) {
	report := " ===>  TALLY 1: FLUX  <===\n   Total Material\n     Flux   abc +/- 0.1\n"
	_, err := ParseTallyReport(strings.NewReader(report))
	require.Error(t, err)
}

func TestReadTally(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TallyReport), []byte(sampleReport), 0644))

	tally, err := ReadTally(dir, "flux")
	require.NoError(t, err)
	require.Equal(t, "flux", tally.Name)
	require.Equal(t, 2, tally.ID)

	m, err := results.NewFluxMap(tally, []int{2, 2, 1}, []float64{-1, -1, -1}, []float64{1, 1, 1}, "flux")
	require.NoError(t, err)
	require.Equal(t, 2.5, m.Z(1, 0))
	require.Equal(t, 3.5, m.Z(0, 1))

	_, err = ReadTally(dir, "heating")
	require.ErrorIs(t, err, ErrTallyNotFound)

	_, err = ReadTally(t.TempDir(), "flux")
	require.ErrorIs(t, err, os.ErrNotExist)
}
