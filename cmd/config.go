package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexiusacademia/gosfr/internal/catalog"
	"github.com/alexiusacademia/gosfr/internal/reactor"
)

func presetNames() []string {
	return reactor.PresetNames()
}

// loadCase returns the case named by --config or --preset.
func loadCase() (*reactor.Config, error) {
	switch {
	case configFile != "" && presetName != "":
		return nil, errors.New("use either --config or --preset, not both")
	case configFile != "":
		cfg, err := reactor.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading case: %w", err)
		}
		slog.Debug("case loaded", "file", configFile, "case", cfg.Name)
		return cfg, nil
	case presetName != "":
		return reactor.Preset(presetName)
	}
	return nil, errors.New("no case given: use --config FILE or --preset NAME")
}

// caseOrRun returns the case named by the flags or, when runID is set,
// the case and output directory recorded for that run.
func caseOrRun(runID string) (*reactor.Config, string, error) {
	if runID == "" {
		cfg, err := loadCase()
		if err != nil {
			return nil, "", err
		}
		return cfg, cfg.Engine.OutputDir, nil
	}

	db, err := catalog.Open(dbPath)
	if err != nil {
		return nil, "", err
	}
	defer db.Close()

	run, err := db.Get(runID)
	if err != nil {
		return nil, "", err
	}
	cfg, err := run.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	cfg.ApplyDefaults()
	return cfg, run.Dir, nil
}
