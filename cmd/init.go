package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var initOutput string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a built-in case to a file for editing",
	Long: `Write one of the built-in cases as an editable YAML or JSON file.

Every dimension, composition and run parameter of the case is in the
file, so new variants need no code changes.

Examples:
  gosfr init --preset pincell
  gosfr init -p core -o cases/core.json`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Output file (.yaml or .json) [default <preset>.yaml]")
}

func runInit(cmd *cobra.Command, args []string) error {
	if presetName == "" {
		return fmt.Errorf("--preset is required (one of %v)", presetNames())
	}
	cfg, err := reactor.Preset(presetName)
	if err != nil {
		return err
	}

	out := initOutput
	if out == "" {
		out = presetName + ".yaml"
	}
	if err := cfg.Save(out); err != nil {
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return err
	}
	fmt.Printf("  Wrote case %q to %s (%s)\n", cfg.Name, out, humanize.Bytes(uint64(info.Size())))
	fmt.Printf("  Build it with: gosfr build --config %s\n", out)
	return nil
}
