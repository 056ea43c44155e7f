package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfr/internal/diagram"
	"github.com/alexiusacademia/gosfr/internal/geometry"
	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/openmc"
	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	buildDir         string
	buildShowDiagram bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the OpenMC input deck for a case",
	Long: `Build the model of a case and write the OpenMC XML input deck
(materials.xml, geometry.xml, settings.xml, tallies.xml, plots.xml)
without running the engine.

Examples:
  gosfr build --preset core
  gosfr build -c my-core.yaml -d decks/core --diagram`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildDir, "dir", "d", "", "Output directory [default from case]")
	buildCmd.Flags().BoolVar(&buildShowDiagram, "diagram", false, "Show ring tables of every lattice")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadCase()
	if err != nil {
		return err
	}
	dir := buildDir
	if dir == "" {
		dir = cfg.Engine.OutputDir
	}

	m, err := reactor.Build(cfg)
	if err != nil {
		return err
	}
	files, err := openmc.Export(m, dir)
	if err != nil {
		return err
	}
	contents, err := m.Geometry.Collect()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     OPENMC INPUT DECK")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Case: %s\n", cfg.Name)
	if cfg.Description != "" {
		fmt.Printf("  Description: %s\n", cfg.Description)
	}
	fmt.Println()

	printModel(m, contents)

	fmt.Println("FILES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, f := range files {
		size := "?"
		if info, err := os.Stat(f); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(w, "  %s\t%s\n", filepath.Base(f), size)
	}
	w.Flush()
	fmt.Printf("\n  Written to %s\n", dir)

	if buildShowDiagram {
		for _, l := range contents.Lattices {
			fmt.Printf("\n  %s (%d rings, pitch %g cm, %s orientation)", l.Name, l.NumRings(), l.Pitch, l.Orientation)
			fmt.Print(diagram.DrawLatticeRings(l.Rings, universeName))
		}
	}
	fmt.Println()
	return nil
}

func universeName(u *geometry.Universe) string {
	return u.Name
}

func printModel(m *reactor.Model, c *geometry.Contents) {
	fmt.Println("MATERIALS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tName\tDensity\tComponents\tFissionable\n")
	for _, mat := range m.Materials {
		fmt.Fprintf(w, "  %d\t%s\t%g %s\t%d\t%v\n", mat.ID, mat.Name, mat.Density, mat.Units, len(mat.Components), mat.Fissionable())
	}
	w.Flush()
	fmt.Println()

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Surfaces:\t%d\n", len(c.Surfaces))
	fmt.Fprintf(w, "  Cells:\t%d\n", len(c.Cells))
	fmt.Fprintf(w, "  Universes:\t%d\n", len(c.Universes))
	fmt.Fprintf(w, "  Lattices:\t%d\n", len(c.Lattices))
	positions := 0
	for _, l := range c.Lattices {
		positions += hexlat.Positions(l.NumRings())
	}
	fmt.Fprintf(w, "  Lattice positions:\t%s\n", humanize.Comma(int64(positions)))
	w.Flush()
	fmt.Println()

	s := m.Settings
	fmt.Println("SETTINGS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Run mode:\t%s\n", s.RunMode)
	fmt.Fprintf(w, "  Particles / batch:\t%s\n", humanize.Comma(int64(s.Particles)))
	fmt.Fprintf(w, "  Batches (inactive):\t%d (%d)\n", s.Batches, s.Inactive)
	fmt.Fprintf(w, "  Histories:\t%s\n", humanize.Comma(int64(s.Particles)*int64(s.Batches)))
	fmt.Fprintf(w, "  Source:\t%s\n", sourceText(s.Source))
	if s.Trigger != nil && s.Trigger.Active {
		fmt.Fprintf(w, "  Trigger:\tup to %d batches, every %d\n", s.Trigger.MaxBatches, s.Trigger.BatchInterval)
	}
	w.Flush()
	fmt.Println()

	if len(m.Tallies) > 0 {
		fmt.Println("TALLIES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range m.Tallies {
			filters := "none"
			if len(t.Filters) > 0 {
				filters = ""
				for i, f := range t.Filters {
					if i > 0 {
						filters += ", "
					}
					filters += string(f.Kind)
				}
			}
			fmt.Fprintf(w, "  %d\t%s\t%v\tfilters: %s\n", t.ID, t.Name, t.Scores, filters)
		}
		w.Flush()
		fmt.Println()
	}
}

func sourceText(src reactor.Source) string {
	switch src.Kind {
	case reactor.BoxSource:
		text := fmt.Sprintf("box %v to %v", src.LowerLeft, src.UpperRight)
		if src.OnlyFissionable {
			text += " (fissionable only)"
		}
		return text
	default:
		return fmt.Sprintf("point %v", src.Point)
	}
}
