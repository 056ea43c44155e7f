package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/results"
)

func sampleMap() *results.FluxMap {
	m := &results.FluxMap{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	for i := 0; i < 8; i++ {
		col := make([]float64, 8)
		for j := range col {
			col[j] = float64((i+1)*(8-i)) * float64((j+1)*(8-j))
		}
		m.Values = append(m.Values, col)
		m.StdDev = append(m.StdDev, make([]float64, 8))
	}
	return m.Normalize()
}

func TestExportFluxMap(t *testing.T) {
	centers, err := hexlat.LatticeCoordinates(3, 0.85)
	require.NoError(t, err)
	outline, err := hexlat.Hexagon(5.1, hexlat.OrientationY)
	require.NoError(t, err)

	for _, ext := range []string{".png", ".svg", ".pdf"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plots", "flux"+ext)
			err := ExportFluxMap(FluxMapData{
				Map:          sampleMap(),
				Centers:      centers,
				CentersLabel: "Fuel pins",
				Boundary:     outline,
			}, path)
			require.NoError(t, err)
			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Positive(t, info.Size())
		})
	}
}

func TestExportFluxMap_DefaultsToPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flux")
	require.NoError(t, ExportFluxMap(FluxMapData{Map: sampleMap()}, path))
	require.FileExists(t, path+".png")

	require.Error(t, ExportFluxMap(FluxMapData{}, path))
}

func TestExportFluxProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, ExportFluxProfile(sampleMap(), path))
	require.FileExists(t, path)
}

func TestDrawLatticeRings(t *testing.T) {
	layout, err := hexlat.LayoutFromRings([]string{"inner", "inner", "outer"})
	require.NoError(t, err)

	out := DrawLatticeRings(layout, func(s string) string { return s })
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Contains(t, out, "RING LAYOUT")
	require.Regexp(t, `^\s*2\s+12\s+outer$`, lines[3])
	require.Regexp(t, `^\s*0\s+1\s+inner$`, lines[5])
	require.Regexp(t, `Total\s+19`, out)
}

func TestDrawLatticeMap(t *testing.T) {
	layout, err := hexlat.LayoutFromRings([]string{"fuel", "fuel", "reflector"})
	require.NoError(t, err)

	out, err := DrawLatticeMap(layout, hexlat.OrientationX, func(s string) string { return s })
	require.NoError(t, err)
	require.Contains(t, out, "A = reflector")
	require.Contains(t, out, "B = fuel")
	require.Equal(t, 12, strings.Count(out, "A")-1)
	require.Equal(t, 7, strings.Count(out, "B")-1)
	require.Contains(t, out, "A B B B A")
}

func TestDrawFluxProfile(t *testing.T) {
	require.Empty(t, DrawFluxProfile(nil, "empty"))
	out := DrawFluxProfile([]float64{0.1, 0.5, 1, 0.5, 0.1}, "centreline")
	require.Contains(t, out, "centreline")
	require.Greater(t, strings.Count(out, "\n"), 10)
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("RUN SUMMARY", []string{"k-eff = 1.02345 ± 0.00123", "batches = 100"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		require.Equal(t, width, len([]rune(l)), l)
	}
}
