package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alexiusacademia/gosfr/internal/catalog"
	"github.com/alexiusacademia/gosfr/internal/diagram"
	"github.com/alexiusacademia/gosfr/internal/openmc"
	"github.com/alexiusacademia/gosfr/internal/pipeline"
	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	runDir           string
	runThreads       int
	runExecutable    string
	runCrossSections string
	runPlotGeometry  bool
	runDryRun        bool
	runNoRecord      bool
	runQuiet         bool
	runFluxTally     string
	runFluxScore     string
	runFluxImage     string
	runProfile       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a case, run OpenMC and record the result",
	Long: `Build the model of a case, write the input deck, run OpenMC in the
output directory and report k-effective.

Every run is recorded in the run history database (--db) unless
--no-record is given. When the case has a mesh tally the flux map can be
exported as an image after the run.

Examples:
  gosfr run --preset pincell --plot-geometry
  gosfr run -p core --threads 16 --flux-image core_flux.png
  gosfr run -c my-core.yaml --dry-run`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runDir, "dir", "d", "", "Output directory [default from case]")
	runCmd.Flags().IntVarP(&runThreads, "threads", "t", 0, "OpenMP threads (0 = engine default)")
	runCmd.Flags().StringVar(&runExecutable, "openmc", "", "OpenMC executable [default from case]")
	runCmd.Flags().StringVar(&runCrossSections, "cross-sections", "", "cross_sections.xml for the engine")
	runCmd.Flags().BoolVar(&runPlotGeometry, "plot-geometry", false, "Render the geometry plots before the run")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Write the input deck only")
	runCmd.Flags().BoolVar(&runNoRecord, "no-record", false, "Do not record the run in the history database")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not echo the engine output")

	// Flux map options
	runCmd.Flags().StringVar(&runFluxTally, "flux-tally", "flux", "Mesh tally used for the flux map")
	runCmd.Flags().StringVar(&runFluxScore, "flux-score", "flux", "Score used for the flux map")
	runCmd.Flags().StringVarP(&runFluxImage, "flux-image", "o", "", "Export the flux map to file (png, svg, pdf)")
	runCmd.Flags().BoolVar(&runProfile, "profile", false, "Show the ASCII centreline flux profile")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadCase()
	if err != nil {
		return err
	}
	applyEngineFlags(cfg)
	dir := runDir
	if dir == "" {
		dir = cfg.Engine.OutputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := openmc.New(cfg.Engine, slog.Default())
	if !runQuiet {
		engine.Stdout = os.Stdout
	}
	sim := &pipeline.Simulation{Engine: engine, Logger: slog.Default()}

	if !runNoRecord && !runDryRun {
		db, err := catalog.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		sim.Recorder = db
	}

	out, err := sim.Execute(ctx, cfg, dir, pipeline.Options{PlotGeometry: runPlotGeometry, DryRun: runDryRun})
	if err != nil {
		if out != nil && out.RunID != "" {
			return fmt.Errorf("run %s: %w", short(out.RunID), err)
		}
		return err
	}

	if runDryRun {
		fmt.Printf("\n  Input deck for %q written to %s\n\n", cfg.Name, out.Dir)
		return nil
	}

	s := out.Summary
	lines := []string{
		fmt.Sprintf("Case:        %s", s.Case),
		fmt.Sprintf("k-effective: %.5f ± %.5f", s.KEff, s.KEffStd),
		fmt.Sprintf("Histories:   %s", humanize.Comma(int64(out.Model.Settings.Particles)*int64(s.Batches))),
		fmt.Sprintf("Batches:     %d", s.Batches),
		fmt.Sprintf("Elapsed:     %s", s.Elapsed.Round(time.Millisecond)),
		fmt.Sprintf("State point: %s", s.StatePoint),
	}
	if out.RunID != "" {
		lines = append(lines, fmt.Sprintf("Run:         %s", short(out.RunID)))
	}
	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("RUN COMPLETE", lines))

	if runFluxImage != "" || runProfile {
		if err := fluxOutputs(engine, out.Model, out.Dir, runFluxTally, runFluxScore, runFluxImage, runProfile, ""); err != nil {
			return err
		}
	}
	fmt.Println()
	return nil
}

func applyEngineFlags(cfg *reactor.Config) {
	if runThreads > 0 {
		cfg.Engine.Threads = runThreads
	}
	if runExecutable != "" {
		cfg.Engine.Executable = runExecutable
	}
	if runCrossSections != "" {
		cfg.Engine.CrossSections = runCrossSections
	}
}

// fluxOutputs reads the mesh tally of a finished run and writes the
// requested flux map image, ASCII profile and profile image.
func fluxOutputs(e pipeline.Engine, m *reactor.Model, dir, tally, score, image string, profile bool, profileImage string) error {
	fm, err := pipeline.FluxMap(e, m, dir, tally, score)
	if err != nil {
		return fmt.Errorf("flux map: %w", err)
	}

	if image != "" {
		data := diagram.FluxMapData{
			Title:        fmt.Sprintf("%s: neutron flux", m.Name),
			Map:          fm,
			Label:        "Normalized " + score,
			Centers:      m.Overlay.Centers,
			CentersLabel: m.Overlay.Label,
			Boundary:     m.Overlay.Boundary,
		}
		if err := diagram.ExportFluxMap(data, image); err != nil {
			return fmt.Errorf("exporting flux map: %w", err)
		}
		fmt.Printf("\n  Flux map exported to: %s\n", image)
	}

	if profileImage != "" {
		if err := diagram.ExportFluxProfile(fm, profileImage); err != nil {
			return fmt.Errorf("exporting flux profile: %w", err)
		}
		fmt.Printf("\n  Flux profile exported to: %s\n", profileImage)
	}

	if profile {
		fmt.Println()
		fmt.Println("CENTRELINE FLUX PROFILE:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawFluxProfile(fm.Centerline(), fmt.Sprintf("%s along x at y = 0 (peak normalized)", score)))
	}
	return nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
