package catalog

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/alexiusacademia/gosfr/internal/results"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return db
}

func TestBeginFinish(t *testing.T) {
	db := openTest(t)
	cfg, err := reactor.Preset("pincell")
	require.NoError(t, err)

	id, err := db.Begin(cfg, "/runs/pincell")
	require.NoError(t, err)

	run, err := db.Get(id)
	require.NoError(t, err)
	require.Equal(t, StatusRunning, run.Status)
	require.Equal(t, "pincell", run.Case)
	require.Equal(t, 1000, run.Particles)
	require.True(t, run.Finished().IsZero())
	require.Zero(t, run.Duration())

	require.NoError(t, db.Finish(id, &results.Summary{KEff: 1.0123, KEffStd: 0.0011, Batches: 100, StatePoint: "/runs/pincell/statepoint.100.h5"}))
	run, err = db.Get(id[:8])
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, run.Status)
	require.Equal(t, 1.0123, run.KEff)
	require.Equal(t, "/runs/pincell/statepoint.100.h5", run.StatePoint)
	require.Equal(t, time.Minute, run.Duration())

	stored, err := run.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, cfg.Pins, stored.Pins)
}

func TestFail(t *testing.T) {
	db := openTest(t)
	cfg, err := reactor.Preset("core")
	require.NoError(t, err)

	id, err := db.Begin(cfg, "/runs/core")
	require.NoError(t, err)
	require.NoError(t, db.Fail(id, errors.New("openmc: exit status 1")))

	run, err := db.Get(id)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, run.Status)
	require.Equal(t, "openmc: exit status 1", run.Error)
}

func TestNotFound(t *testing.T) {
	db := openTest(t)
	_, err := db.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, db.Finish("missing", &results.Summary{}), ErrNotFound)
	require.ErrorIs(t, db.Fail("missing", nil), ErrNotFound)
}

func TestList(t *testing.T) {
	db := openTest(t)
	pincell, err := reactor.Preset("pincell")
	require.NoError(t, err)
	core, err := reactor.Preset("core")
	require.NoError(t, err)

	first, err := db.Begin(pincell, "a")
	require.NoError(t, err)
	_, err = db.Begin(core, "b")
	require.NoError(t, err)
	last, err := db.Begin(pincell, "c")
	require.NoError(t, err)

	runs, err := db.List("", 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, last, runs[0].ID)

	runs, err = db.List("pincell", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, first, runs[1].ID)

	runs, err = db.List("pincell", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestGet_PrefixIsLiteral(t *testing.T) {
	db := openTest(t)
	cfg, err := reactor.Preset("pincell")
	require.NoError(t, err)
	id, err := db.Begin(cfg, "/runs/pincell")
	require.NoError(t, err)

	for _, pattern := range []string{"%", "_", "%" + id[1:4], id[:1] + "_", ""} {
		_, err := db.Get(pattern)
		require.ErrorIs(t, err, ErrNotFound, "id %q", pattern)
	}

	run, err := db.Get(id[:1])
	require.NoError(t, err)
	require.Equal(t, id, run.ID)
}

func TestBegin_LogsToInjectedLogger(t *testing.T) {
	db := openTest(t)
	var buf bytes.Buffer
	db.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := reactor.Preset("pincell")
	require.NoError(t, err)
	id, err := db.Begin(cfg, "/runs/pincell")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "run recorded")
	require.Contains(t, buf.String(), id)
}
