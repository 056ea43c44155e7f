package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexiusacademia/gosfr/internal/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	presetName string
	logLevel   string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "gosfr",
	Short: "Sodium Fast Reactor input builder and OpenMC driver",
	Long: `gosfr - Go Sodium Fast Reactor Builder

A CLI tool that prepares, runs and post-processes OpenMC Monte Carlo
calculations of sodium-cooled fast reactor lattices and cores.

This tool helps reactor physicists:
  - Declare materials, pin cells, hexagonal assemblies and full cores
  - Write the OpenMC XML input deck (materials, geometry, settings,
    tallies, plots)
  - Run OpenMC and record k-effective and state points per run
  - Turn mesh tallies into flux maps and centreline profiles

Cases come from a YAML/JSON file (--config) or a built-in preset
(--preset pincell | pincell-tallies | core).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gosfr v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Sodium Fast Reactor Builder                          ║")
		fmt.Printf("  ║   Input decks for %-40s║\n", version.Engine)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for building and running Monte Carlo models of")
		fmt.Println("  sodium-cooled fast reactor lattices and cores.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Hex-ring lattice assembly from per-ring fills")
		fmt.Println("    • Metallic U-Pu-Zr fuel, steel clad and sodium presets")
		fmt.Println("    • OpenMC XML export, run and k-effective capture")
		fmt.Println("    • Mesh flux maps with pin and assembly overlays")
		fmt.Println("    • SQLite history of every run")
		fmt.Println()
		fmt.Printf("  Presets: %s\n", strings.Join(presetNames(), ", "))
		fmt.Println("  Use 'gosfr --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Case file (.yaml, .yml or .json)")
	rootCmd.PersistentFlags().StringVarP(&presetName, "preset", "p", "", "Built-in case: "+strings.Join(presetNames(), ", "))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "gosfr.db", "Run history database")
}
