package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexiusacademia/gosfr/internal/openmc"
	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/spf13/cobra"
)

var (
	plotRun          string
	plotDir          string
	plotTally        string
	plotScore        string
	plotOutput       string
	plotProfile      bool
	plotProfileImage string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw the flux map of a finished run",
	Long: `Read a mesh tally from the tallies.out of a finished run and draw it
as a normalized flux map, with the pin or assembly centres and the outer
boundary of the case overlaid.

The run is named either by its history id (--run) or by the case flags
and its output directory.

Examples:
  gosfr plot --run 3f2a9c1e -o flux.png
  gosfr plot -p pincell-tallies -d output --profile
  gosfr plot -c core.yaml -o core_flux.svg --profile-image profile.png`,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVar(&plotRun, "run", "", "Run id or unique prefix from the history database")
	plotCmd.Flags().StringVarP(&plotDir, "dir", "d", "", "Run directory [default from case or run]")
	plotCmd.Flags().StringVar(&plotTally, "tally", "flux", "Mesh tally name")
	plotCmd.Flags().StringVar(&plotScore, "score", "flux", "Tally score")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "Export the flux map to file (png, svg, pdf)")
	plotCmd.Flags().BoolVar(&plotProfile, "profile", false, "Show the ASCII centreline flux profile")
	plotCmd.Flags().StringVar(&plotProfileImage, "profile-image", "", "Export the centreline profile to file")
}

func runPlot(cmd *cobra.Command, args []string) error {
	if plotOutput == "" && !plotProfile && plotProfileImage == "" {
		return errors.New("nothing to draw: give --output, --profile or --profile-image")
	}

	cfg, dir, err := caseOrRun(plotRun)
	if err != nil {
		return err
	}
	if plotDir != "" {
		dir = plotDir
	}

	m, err := reactor.Build(cfg)
	if err != nil {
		return err
	}
	engine := openmc.New(cfg.Engine, slog.Default())

	fmt.Printf("\n  Case: %s\n  Directory: %s\n", cfg.Name, dir)
	if err := fluxOutputs(engine, m, dir, plotTally, plotScore, plotOutput, plotProfile, plotProfileImage); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
