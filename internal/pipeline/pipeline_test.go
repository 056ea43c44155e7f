package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/alexiusacademia/gosfr/internal/results"
)

type fakeEngine struct {
	calls   []string
	runErr  error
	plotErr error
	tally   *results.Tally
}

func (f *fakeEngine) Export(m *reactor.Model, dir string) error {
	f.calls = append(f.calls, "export")
	return nil
}

func (f *fakeEngine) PlotGeometry(ctx context.Context, dir string) error {
	f.calls = append(f.calls, "plot")
	return f.plotErr
}

func (f *fakeEngine) Run(ctx context.Context, dir string) (*results.Summary, error) {
	f.calls = append(f.calls, "run")
	if f.runErr != nil {
		return nil, f.runErr
	}
	return &results.Summary{KEff: 1.01, KEffStd: 0.002, Batches: 100, StatePoint: dir + "/statepoint.100.h5"}, nil
}

func (f *fakeEngine) ReadTally(dir, name string) (*results.Tally, error) {
	if f.tally == nil {
		return nil, errors.New("no tally")
	}
	return f.tally, nil
}

type fakeRecorder struct {
	begun    int
	finished *results.Summary
	failed   error
}

func (r *fakeRecorder) Begin(cfg *reactor.Config, dir string) (string, error) {
	r.begun++
	return "run-1", nil
}

func (r *fakeRecorder) Finish(id string, s *results.Summary) error {
	r.finished = s
	return nil
}

func (r *fakeRecorder) Fail(id string, cause error) error {
	r.failed = cause
	return nil
}

type SimulationSuite struct {
	suite.Suite
	engine   *fakeEngine
	recorder *fakeRecorder
	sim      *Simulation
	cfg      *reactor.Config
}

func (s *SimulationSuite) SetupTest() {
	s.engine = &fakeEngine{}
	s.recorder = &fakeRecorder{}
	s.sim = &Simulation{
		Engine:   s.engine,
		Recorder: s.recorder,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	cfg, err := reactor.Preset("pincell-tallies")
	s.Require().NoError(err)
	s.cfg = cfg
}

func (s *SimulationSuite) TestCompletes() {
	out, err := s.sim.Execute(context.Background(), s.cfg, s.T().TempDir(), Options{PlotGeometry: true})
	s.Require().NoError(err)
	s.Equal([]string{"export", "plot", "run"}, s.engine.calls)
	s.Equal("run-1", out.RunID)
	s.Equal("pincell-tallies", out.Summary.Case)
	s.Equal([]string{"fuel reactions", "flux", "reaction rates"}, out.Summary.Tallies)
	s.Same(out.Summary, s.recorder.finished)
	s.Nil(s.recorder.failed)
}

func (s *SimulationSuite) TestDryRun() {
	out, err := s.sim.Execute(context.Background(), s.cfg, s.T().TempDir(), Options{DryRun: true})
	s.Require().NoError(err)
	s.Equal([]string{"export"}, s.engine.calls)
	s.Zero(s.recorder.begun)
	s.NotNil(out.Model)
	s.Nil(out.Summary)
}

func (s *SimulationSuite) TestRunFailureIsRecorded() {
	s.engine.runErr = errors.New("engine crashed")
	_, err := s.sim.Execute(context.Background(), s.cfg, s.T().TempDir(), Options{})
	s.Require().Error(err)
	s.ErrorIs(err, s.engine.runErr)
	s.ErrorIs(s.recorder.failed, s.engine.runErr)
	s.Nil(s.recorder.finished)
	s.Equal([]string{"export", "run"}, s.engine.calls)
}

func (s *SimulationSuite) TestPlotFailureStopsRun() {
	s.engine.plotErr = errors.New("no plots")
	_, err := s.sim.Execute(context.Background(), s.cfg, s.T().TempDir(), Options{PlotGeometry: true})
	s.Require().Error(err)
	s.Equal([]string{"export", "plot"}, s.engine.calls)
	s.NotNil(s.recorder.failed)
}

func (s *SimulationSuite) TestInvalidConfig() {
	s.cfg.Settings.Batches = 0
	_, err := s.sim.Execute(context.Background(), s.cfg, s.T().TempDir(), Options{})
	var verr *reactor.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Empty(s.engine.calls)
	s.Zero(s.recorder.begun)
}

func TestSimulationSuite(t *testing.T) {
	suite.Run(t, new(SimulationSuite))
}

func TestFluxMap(t *testing.T) {
	cfg, err := reactor.Preset("pincell-tallies")
	require.NoError(t, err)
	cfg.Meshes[0].Dimension = []int{2, 1, 1}
	m, err := reactor.Build(cfg)
	require.NoError(t, err)

	e := &fakeEngine{tally: &results.Tally{Name: "flux", Entries: []results.Entry{
		{MeshIndex: []int{1, 1, 1}, Nuclide: results.TotalNuclide, Score: "flux", Mean: 2},
		{MeshIndex: []int{2, 1, 1}, Nuclide: results.TotalNuclide, Score: "flux", Mean: 4},
	}}}

	fm, err := FluxMap(e, m, "out", "flux", "flux")
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1}, fm.Centerline())

	_, err = FluxMap(e, m, "out", "reaction rates", "fission")
	require.Error(t, err)
	_, err = FluxMap(e, m, "out", "heating", "heating")
	require.Error(t, err)
}
