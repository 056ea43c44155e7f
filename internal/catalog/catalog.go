// Package catalog keeps a SQLite history of engine runs.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/alexiusacademia/gosfr/internal/results"
)

// ErrNotFound is returned when no run matches an ID.
var ErrNotFound = errors.New("catalog: run not found")

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one recorded engine run.
type Run struct {
	ID         string  `db:"id"`
	Case       string  `db:"case_name"`
	Dir        string  `db:"dir"`
	Particles  int     `db:"particles"`
	Batches    int     `db:"batches"`
	Inactive   int     `db:"inactive"`
	Status     string  `db:"status"`
	KEff       float64 `db:"keff"`
	KEffStd    float64 `db:"keff_std"`
	StatePoint string  `db:"statepoint"`
	Error      string  `db:"error"`
	StartedAt  int64   `db:"started_at"`  // unix nanoseconds
	FinishedAt int64   `db:"finished_at"` // zero while running
	Config     string  `db:"config_json"`
}

// Started returns the start time.
func (r *Run) Started() time.Time { return time.Unix(0, r.StartedAt) }

// Finished returns the finish time, zero while running.
func (r *Run) Finished() time.Time {
	if r.FinishedAt == 0 {
		return time.Time{}
	}
	return time.Unix(0, r.FinishedAt)
}

// Duration returns how long the run took, zero while running.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == 0 {
		return 0
	}
	return time.Duration(r.FinishedAt - r.StartedAt)
}

// DB wraps the SQLite connection.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time

	Logger *slog.Logger
}

// Open opens or creates a catalog at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now, Logger: slog.Default()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		case_name TEXT NOT NULL,
		dir TEXT NOT NULL,
		particles INTEGER NOT NULL,
		batches INTEGER NOT NULL,
		inactive INTEGER NOT NULL,
		status TEXT NOT NULL,
		keff REAL NOT NULL DEFAULT 0,
		keff_std REAL NOT NULL DEFAULT 0,
		statepoint TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL DEFAULT 0,
		config_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_case ON runs(case_name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Begin records a new running run and returns its ID.
func (db *DB) Begin(cfg *reactor.Config, dir string) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(`INSERT INTO runs
		(id, case_name, dir, particles, batches, inactive, status, started_at, config_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, cfg.Name, dir, cfg.Settings.Particles, cfg.Settings.Batches, cfg.Settings.Inactive,
		StatusRunning, db.now().UnixNano(), string(cfgJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	db.Logger.Debug("run recorded", "run", id, "case", cfg.Name)
	return id, nil
}

// Finish marks a run completed with its results.
func (db *DB) Finish(id string, s *results.Summary) error {
	return db.update(`UPDATE runs
		SET status = ?, keff = ?, keff_std = ?, statepoint = ?, batches = ?, finished_at = ?
		WHERE id = ?`,
		StatusCompleted, s.KEff, s.KEffStd, s.StatePoint, s.Batches, db.now().UnixNano(), id,
	)
}

// Fail marks a run failed with the error that ended it.
func (db *DB) Fail(id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return db.update(`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		StatusFailed, msg, db.now().UnixNano(), id,
	)
}

func (db *DB) update(query string, args ...any) error {
	res, err := db.conn.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, args[len(args)-1])
	}
	return nil
}

// Get returns the run with the given ID or unique ID prefix.
func (db *DB) Get(id string) (*Run, error) {
	var runs []Run
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	err := db.conn.Select(&runs, "SELECT * FROM runs WHERE substr(id, 1, length(?)) = ? LIMIT 2", id, id)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return &runs[0], nil
	}
	return nil, fmt.Errorf("catalog: run id prefix %q is ambiguous", id)
}

// List returns the most recent runs, newest first. A non-empty caseName
// restricts the list to that case.
func (db *DB) List(caseName string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	var err error
	if caseName == "" {
		err = db.conn.Select(&runs, "SELECT * FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	} else {
		err = db.conn.Select(&runs, "SELECT * FROM runs WHERE case_name = ? ORDER BY started_at DESC LIMIT ?", caseName, limit)
	}
	return runs, err
}

// LoadConfig decodes the configuration stored with a run.
func (r *Run) LoadConfig() (*reactor.Config, error) {
	var cfg reactor.Config
	if err := json.Unmarshal([]byte(r.Config), &cfg); err != nil {
		return nil, fmt.Errorf("run %s config: %w", r.ID, err)
	}
	return &cfg, nil
}
