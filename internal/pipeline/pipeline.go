// Package pipeline runs a case end to end: build the model, write the
// input deck, optionally plot the geometry, run the engine and record the
// outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/alexiusacademia/gosfr/internal/results"
)

// Engine is the narrow adapter to a transport code.
type Engine interface {
	Export(m *reactor.Model, dir string) error
	PlotGeometry(ctx context.Context, dir string) error
	Run(ctx context.Context, dir string) (*results.Summary, error)
	ReadTally(dir, name string) (*results.Tally, error)
}

// Recorder keeps a history of runs.
type Recorder interface {
	Begin(cfg *reactor.Config, dir string) (string, error)
	Finish(id string, s *results.Summary) error
	Fail(id string, cause error) error
}

// Options control optional steps of a run.
type Options struct {
	PlotGeometry bool
	// DryRun stops after the input deck is written.
	DryRun bool
}

// Outcome is what a run produced.
type Outcome struct {
	RunID   string
	Dir     string
	Model   *reactor.Model
	Summary *results.Summary
}

// Simulation executes runs one at a time. Recorder may be nil.
type Simulation struct {
	Engine   Engine
	Recorder Recorder
	Logger   *slog.Logger
}

// Execute runs cfg in dir. The first failing step ends the run; a recorded
// run is then marked failed with that error.
func (s *Simulation) Execute(ctx context.Context, cfg *reactor.Config, dir string, opts Options) (*Outcome, error) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Dir: abs}

	m, err := reactor.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}
	out.Model = m
	log.Info("model built", "case", cfg.Name, "materials", len(m.Materials), "tallies", len(m.Tallies))

	if err := s.Engine.Export(m, abs); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if opts.DryRun {
		return out, nil
	}

	if s.Recorder != nil {
		id, err := s.Recorder.Begin(cfg, abs)
		if err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		out.RunID = id
		log.Info("run started", "run", id)
	}

	summary, err := s.run(ctx, abs, m, opts)
	if err != nil {
		if s.Recorder != nil && out.RunID != "" {
			if rerr := s.Recorder.Fail(out.RunID, err); rerr != nil {
				log.Error("recording failure", "run", out.RunID, "err", rerr)
			}
		}
		return out, err
	}
	summary.Case = cfg.Name
	out.Summary = summary

	if s.Recorder != nil && out.RunID != "" {
		if err := s.Recorder.Finish(out.RunID, summary); err != nil {
			return out, fmt.Errorf("record run: %w", err)
		}
	}
	return out, nil
}

func (s *Simulation) run(ctx context.Context, dir string, m *reactor.Model, opts Options) (*results.Summary, error) {
	if opts.PlotGeometry && len(m.Plots) > 0 {
		if err := s.Engine.PlotGeometry(ctx, dir); err != nil {
			return nil, fmt.Errorf("plot geometry: %w", err)
		}
	}

	summary, err := s.Engine.Run(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	for _, t := range m.Tallies {
		summary.Tallies = append(summary.Tallies, t.Name)
	}
	return summary, nil
}

// FluxMap reads the named mesh tally of a finished run and reshapes the
// score into a normalized map over its mesh.
func FluxMap(e Engine, m *reactor.Model, dir, tally, score string) (*results.FluxMap, error) {
	var spec *reactor.Tally
	for _, t := range m.Tallies {
		if t.Name == tally {
			spec = t
		}
	}
	if spec == nil {
		return nil, fmt.Errorf("model has no tally %q", tally)
	}
	mf := spec.MeshFilter()
	if mf == nil {
		return nil, fmt.Errorf("tally %q has no mesh filter", tally)
	}

	t, err := e.ReadTally(dir, tally)
	if err != nil {
		return nil, err
	}
	fm, err := results.NewFluxMap(t, mf.Mesh.Dimension, mf.Mesh.LowerLeft, mf.Mesh.UpperRight, score)
	if err != nil {
		return nil, err
	}
	return fm.Normalize(), nil
}
