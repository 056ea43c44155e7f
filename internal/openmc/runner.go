package openmc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexiusacademia/gosfr/internal/reactor"
	"github.com/alexiusacademia/gosfr/internal/results"
)

// CrossSectionsEnv is the environment variable the engine reads its
// cross-section library path from.
const CrossSectionsEnv = "OPENMC_CROSS_SECTIONS"

// ErrNoStatePoint is returned when a run leaves no state point behind.
var ErrNoStatePoint = errors.New("openmc: no state point written")

var (
	keffLine       = regexp.MustCompile(`Combined k-effective\s*=\s*(\S+)\s*\+/-\s*(\S+)`)
	statePointName = regexp.MustCompile(`^statepoint\.(\d+)\.h5$`)
)

// Engine drives the openmc executable. The zero value is not usable; use
// New.
type Engine struct {
	Executable    string
	Threads       int
	CrossSections string

	// Stdout, when set, receives a copy of the engine's standard output.
	Stdout io.Writer
	Logger *slog.Logger
}

// New returns an engine configured from spec.
func New(spec reactor.EngineSpec, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	exe := spec.Executable
	if exe == "" {
		exe = "openmc"
	}
	return &Engine{
		Executable:    exe,
		Threads:       spec.Threads,
		CrossSections: spec.CrossSections,
		Logger:        logger,
	}
}

// Export writes the input deck for m into dir.
func (e *Engine) Export(m *reactor.Model, dir string) error {
	files, err := Export(m, dir)
	if err != nil {
		return err
	}
	e.Logger.Info("input deck written", "dir", dir, "files", len(files))
	return nil
}

// ReadTally reads a named tally from the run in dir.
func (e *Engine) ReadTally(dir, name string) (*results.Tally, error) {
	t, err := ReadTally(dir, name)
	if err != nil {
		return nil, err
	}
	e.Logger.Debug("tally read", "tally", name, "entries", len(t.Entries))
	return t, nil
}

// Command returns the command that runs the engine in dir with extra
// arguments.
func (e *Engine) Command(ctx context.Context, dir string, args ...string) *exec.Cmd {
	var all []string
	if e.Threads > 0 {
		all = append(all, "-s", strconv.Itoa(e.Threads))
	}
	all = append(all, args...)

	cmd := exec.CommandContext(ctx, e.Executable, all...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if e.CrossSections != "" {
		cmd.Env = append(cmd.Env, CrossSectionsEnv+"="+e.CrossSections)
	}
	return cmd
}

// PlotGeometry renders the plots declared in plots.xml.
func (e *Engine) PlotGeometry(ctx context.Context, dir string) error {
	e.Logger.Info("plotting geometry", "dir", dir)
	_, err := e.execute(ctx, dir, "--plot")
	return err
}

// Run runs the transport calculation in dir and blocks until it exits.
func (e *Engine) Run(ctx context.Context, dir string) (*results.Summary, error) {
	e.Logger.Info("running engine", "exe", e.Executable, "dir", dir, "threads", e.Threads)
	if err := ClearStatePoints(dir); err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := e.execute(ctx, dir)
	if err != nil {
		return nil, err
	}

	s := &results.Summary{Elapsed: time.Since(start)}
	if k, std, ok := ParseKEff(out); ok {
		s.KEff, s.KEffStd = k, std
		e.Logger.Info("run complete", "keff", k, "std", std, "elapsed", s.Elapsed)
	} else {
		e.Logger.Info("run complete", "elapsed", s.Elapsed)
	}

	sp, batches, err := LatestStatePoint(dir)
	if err != nil {
		return nil, err
	}
	s.StatePoint, s.Batches = sp, batches
	return s, nil
}

func (e *Engine) execute(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := e.Command(ctx, dir, args...)

	var stdout, stderr bytes.Buffer
	lw := &logWriter{logger: e.Logger}
	writers := []io.Writer{&stdout, lw}
	if e.Stdout != nil {
		writers = append(writers, e.Stdout)
	}
	cmd.Stdout = io.MultiWriter(writers...)
	cmd.Stderr = &stderr

	err := cmd.Run()
	lw.Flush()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = lastLines(stdout.String(), 5)
		}
		return stdout.Bytes(), fmt.Errorf("%s %s: %w: %s", e.Executable, strings.Join(cmd.Args[1:], " "), err, msg)
	}
	return stdout.Bytes(), nil
}

// ParseKEff finds the combined k-effective estimate in the engine output.
func ParseKEff(out []byte) (k, std float64, ok bool) {
	m := keffLine.FindSubmatch(out)
	if m == nil {
		return 0, 0, false
	}
	k, err1 := strconv.ParseFloat(string(m[1]), 64)
	std, err2 := strconv.ParseFloat(string(m[2]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return k, std, true
}

// ClearStatePoints removes the state points a previous run left in dir.
func ClearStatePoints(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if ent.IsDir() || !statePointName.MatchString(ent.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, ent.Name())); err != nil {
			return fmt.Errorf("removing old state point: %w", err)
		}
	}
	return nil
}

// LatestStatePoint returns the state point with the highest batch number
// in dir.
func LatestStatePoint(dir string) (string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, err
	}
	best, batch := "", -1
	for _, ent := range entries {
		m := statePointName.FindStringSubmatch(ent.Name())
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		if n > batch {
			best, batch = ent.Name(), n
		}
	}
	if batch < 0 {
		return "", 0, fmt.Errorf("%w in %s", ErrNoStatePoint, dir)
	}
	return filepath.Join(dir, best), batch, nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// logWriter forwards complete output lines to a logger at debug level.
type logWriter struct {
	logger *slog.Logger
	buf    bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			return len(p), nil
		}
		w.log(line)
	}
}

// Flush logs any trailing partial line.
func (w *logWriter) Flush() {
	if w.buf.Len() > 0 {
		w.log(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) log(line string) {
	if text := strings.TrimSpace(line); text != "" {
		w.logger.Debug(text, "source", "openmc")
	}
}
