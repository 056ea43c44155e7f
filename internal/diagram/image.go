package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/results"
)

// FluxMapData holds everything drawn on a flux map.
type FluxMapData struct {
	Title string
	Map   *results.FluxMap
	Label string // colour bar label

	// Optional overlay
	Centers      []hexlat.Point
	CentersLabel string
	Boundary     []hexlat.Point
}

// ExportFluxMap exports a heat map of the flux over the mesh extent, with
// the lattice overlay and a colour bar, to an image file. The format
// follows the extension (png, svg, pdf); other names get ".png" appended.
func ExportFluxMap(data FluxMapData, filename string) error {
	if data.Map == nil {
		return fmt.Errorf("flux map: no data")
	}
	if c, r := data.Map.Dims(); c == 0 || r == 0 {
		return fmt.Errorf("flux map: empty grid")
	}

	cmap := moreland.ExtendedBlackBody()
	lo, hi := minMax(data.Map)
	if !(hi > lo) {
		hi = lo + 1
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Neutron Flux Distribution"
	}
	p.X.Label.Text = "x [cm]"
	p.Y.Label.Text = "y [cm]"
	p.X.Min, p.X.Max = data.Map.XMin, data.Map.XMax
	p.Y.Min, p.Y.Max = data.Map.YMin, data.Map.YMax

	hm := plotter.NewHeatMap(data.Map, cmap.Palette(255))
	hm.Min, hm.Max = lo, hi
	p.Add(hm)

	// Pin or assembly centres inside the mesh window
	if len(data.Centers) > 0 {
		var pts plotter.XYs
		for _, c := range data.Centers {
			if c.X >= data.Map.XMin && c.X <= data.Map.XMax && c.Y >= data.Map.YMin && c.Y <= data.Map.YMax {
				pts = append(pts, plotter.XY{X: c.X, Y: c.Y})
			}
		}
		if len(pts) > 0 {
			centers, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			centers.GlyphStyle.Color = color.RGBA{R: 135, G: 206, B: 235, A: 255}
			centers.GlyphStyle.Radius = vg.Points(1.5)
			centers.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(centers)
			label := data.CentersLabel
			if label == "" {
				label = "Centres"
			}
			p.Legend.Add(label, centers)
		}
	}

	// Boundary outline
	if len(data.Boundary) > 1 {
		outline := make(plotter.XYs, len(data.Boundary))
		for i, b := range data.Boundary {
			outline[i] = plotter.XY{X: b.X, Y: b.Y}
		}
		line, err := plotter.NewLine(outline)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.White
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		p.Legend.Add("Boundary", line)
	}
	p.Legend.Top = true

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = data.Label
	if bar.Y.Label.Text == "" {
		bar.Y.Label.Text = "Flux"
	}
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})

	// Determine file format from extension
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
		ext = ".png"
	}

	width := 8 * vg.Inch
	height := 7 * vg.Inch
	barWidth := 1.2 * vg.Inch

	c, err := draw.NewFormattedCanvas(width, height, ext[1:])
	if err != nil {
		return err
	}
	dc := draw.New(c)
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-barWidth, 0, 0.6*vg.Inch, -0.4*vg.Inch))

	// Create directory if needed
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportFluxProfile exports the centreline profile of a flux map as a line
// plot.
func ExportFluxProfile(m *results.FluxMap, filename string) error {
	profile := m.Centerline()
	pts := make(plotter.XYs, len(profile))
	for i, v := range profile {
		pts[i] = plotter.XY{X: m.X(i), Y: v}
	}

	p := plot.New()
	p.Title.Text = "Centreline Flux Profile"
	p.X.Label.Text = "x [cm]"
	p.Y.Label.Text = "Flux"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	p.Add(line)

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

func minMax(m *results.FluxMap) (lo, hi float64) {
	lo, hi = m.Values[0][0], m.Values[0][0]
	for _, col := range m.Values {
		for _, v := range col {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}
