package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfr/internal/diagram"
	"github.com/alexiusacademia/gosfr/internal/hexlat"
	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/spf13/cobra"
)

var (
	latticeRings       int
	latticePitch       float64
	latticeOrientation string
	latticeFills       []string
)

var latticeCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Hexagonal lattice layout and coordinates",
	Long: `Inspect hexagonal ring lattices.

Subcommands:
  layout   - Show the ring table and row map of a lattice
  coords   - List the position centres of a lattice

Ring 0 is the centre position; ring r > 0 holds 6r positions.`,
}

var latticeLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the ring table and row map of a lattice",
	Long: `Show the ring table and the row-by-row map of a hexagonal lattice.

With --fill the lattice is built from one fill name per ring, centre
first. With --config or --preset the top-level lattice of the case is
shown instead.

Examples:
  gosfr lattice layout --fill inner,inner,inner,outer,outer
  gosfr lattice layout --rings 4 --orientation x
  gosfr lattice layout --preset core`,
	RunE: runLatticeLayout,
}

var latticeCoordsCmd = &cobra.Command{
	Use:   "coords",
	Short: "List the position centres of a lattice",
	Long: `List the (x, y) centre of every position of a lattice, centre ring
first, for the given pitch and orientation.

Examples:
  gosfr lattice coords --rings 6 --pitch 0.85
  gosfr lattice coords -r 11 --pitch 14.085 --orientation x`,
	RunE: runLatticeCoords,
}

func init() {
	rootCmd.AddCommand(latticeCmd)
	latticeCmd.AddCommand(latticeLayoutCmd)
	latticeCmd.AddCommand(latticeCoordsCmd)

	latticeCmd.PersistentFlags().IntVarP(&latticeRings, "rings", "r", 0, "Number of rings, centre included")
	latticeCmd.PersistentFlags().StringVar(&latticeOrientation, "orientation", "y", "Lattice orientation (x or y)")

	latticeLayoutCmd.Flags().StringSliceVar(&latticeFills, "fill", nil, "Fill name per ring, centre first")
	latticeCoordsCmd.Flags().Float64Var(&latticePitch, "pitch", 1.0, "Centre-to-centre pitch (cm)")
}

func runLatticeLayout(cmd *cobra.Command, args []string) error {
	if configFile != "" || presetName != "" {
		return caseLayout()
	}

	o := hexlat.Orientation(latticeOrientation)
	if !o.Valid() {
		return fmt.Errorf("invalid --orientation %q (use x or y)", latticeOrientation)
	}

	var layout [][]string
	var err error
	switch {
	case len(latticeFills) > 0:
		layout, err = hexlat.LayoutFromRings(latticeFills)
	case latticeRings > 0:
		layout, err = hexlat.BuildLayout(latticeRings, func(r int) string { return fmt.Sprintf("ring %d", r) })
	default:
		return errors.New("give --fill, --rings, --config or --preset")
	}
	if err != nil {
		return err
	}

	return printLayout(fmt.Sprintf("%d-ring lattice", len(layout)), layout, o, func(s string) string { return s })
}

func caseLayout() error {
	cfg, err := loadCase()
	if err != nil {
		return err
	}
	m, err := reactor.Build(cfg)
	if err != nil {
		return err
	}
	contents, err := m.Geometry.Collect()
	if err != nil {
		return err
	}
	if len(contents.Lattices) == 0 {
		return fmt.Errorf("case %q has no lattice", cfg.Name)
	}
	// The first lattice reached from the root is the top-level one.
	l := contents.Lattices[0]
	return printLayout(l.Name, l.Rings, l.Orientation, universeName)
}

func printLayout[T any](title string, layout [][]T, o hexlat.Orientation, name func(T) string) error {
	picture, err := diagram.DrawLatticeMap(layout, o, name)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     HEXAGONAL LATTICE: %s\n", strings.ToUpper(title))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("\n  Rings: %d    Positions: %d    Orientation: %s\n", len(layout), hexlat.Positions(len(layout)), o)
	fmt.Print(diagram.DrawLatticeRings(layout, name))
	fmt.Println()
	fmt.Println("  ROW MAP")
	fmt.Println("  ─────────────────────────────")
	fmt.Print(picture)
	fmt.Println()
	return nil
}

func runLatticeCoords(cmd *cobra.Command, args []string) error {
	o := hexlat.Orientation(latticeOrientation)
	if !o.Valid() {
		return fmt.Errorf("invalid --orientation %q (use x or y)", latticeOrientation)
	}
	pts, err := hexlat.LatticeCoordinates(latticeRings, latticePitch)
	if err != nil {
		return err
	}
	pts = hexlat.Oriented(pts, o)

	fmt.Println()
	fmt.Printf("  %d rings, pitch %g cm, %s orientation: %d positions\n\n", latticeRings, latticePitch, o, len(pts))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Ring\tIndex\tx (cm)\ty (cm)\tr (cm)\t\n")
	i := 0
	for r := 0; r < latticeRings; r++ {
		for j := 0; j < hexlat.RingSize(r); j++ {
			p := pts[i]
			fmt.Fprintf(w, "  %d\t%d\t%.4f\t%.4f\t%.4f\t\n", r, j, p.X, p.Y, p.Norm())
			i++
		}
	}
	w.Flush()
	fmt.Println()
	return nil
}
