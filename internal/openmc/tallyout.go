package openmc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gosfr/internal/results"
)

// TallyReport is the engine's text tally report, written when tally output
// is enabled in the settings.
const TallyReport = "tallies.out"

// ErrTallyNotFound is returned when a named tally is not in the report.
var ErrTallyNotFound = errors.New("openmc: tally not found")

var (
	tallyHeader = regexp.MustCompile(`TALLY\s+(\d+)(?::\s*(.*?))?\s*<`)
	scoreLine   = regexp.MustCompile(`^(.*?)\s+(\S+)\s+\+/-\s+(\S+)\s*$`)
	meshLabel   = regexp.MustCompile(`^Mesh Index \(([\d,\s]+)\)$`)
	cellLabel   = regexp.MustCompile(`^Cell (\d+)$`)
)

// scoreNames maps the report's display names back to score names.
var scoreNames = map[string]string{
	"flux":                           "flux",
	"total reaction rate":            "total",
	"scattering rate":                "scatter",
	"elastic scattering rate":        "elastic",
	"absorption rate":                "absorption",
	"fission rate":                   "fission",
	"nu-fission rate":                "nu-fission",
	"kappa-fission rate":             "kappa-fission",
	"heating rate":                   "heating",
	"events":                         "events",
	"current":                        "current",
	"flux-weighted inverse velocity": "inverse-velocity",
	"prompt-nu-fission rate":         "prompt-nu-fission",
	"delayed-nu-fission rate":        "delayed-nu-fission",
	"decay rate":                     "decay-rate",
}

func scoreName(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	if s, ok := scoreNames[key]; ok {
		return s
	}
	return key
}

type label struct {
	indent int
	text   string
}

// ParseTallyReport reads every tally in a tallies.out report.
//
// Each tally starts with a "TALLY n: NAME" banner. Bin labels follow,
// indented one level per filter, then the nuclide label, then one
// "score  mean +/- std" line per score.
func ParseTallyReport(r io.Reader) ([]*results.Tally, error) {
	var (
		tallies []*results.Tally
		cur     *results.Tally
		stack   []label
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Trim(trimmed, "=") == "" {
			continue
		}

		if m := tallyHeader.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[1])
			cur = &results.Tally{ID: id, Name: strings.TrimSpace(m[2])}
			tallies = append(tallies, cur)
			stack = stack[:0]
			continue
		}
		if cur == nil {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if m := scoreLine.FindStringSubmatch(trimmed); m != nil {
			mean, err1 := strconv.ParseFloat(m[2], 64)
			std, err2 := strconv.ParseFloat(m[3], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%s line %d: bad value %q", TallyReport, lineNo, trimmed)
			}
			entry, err := newEntry(stack, m[1], mean, std)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", TallyReport, lineNo, err)
			}
			cur.Entries = append(cur.Entries, entry)
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, label{indent: indent, text: trimmed})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tallies, nil
}

// newEntry builds an entry from the labels enclosing a score line. The
// innermost label is the nuclide, the others are filter bins.
func newEntry(stack []label, score string, mean, std float64) (results.Entry, error) {
	e := results.Entry{
		Nuclide: results.TotalNuclide,
		Score:   scoreName(score),
		Mean:    mean,
		StdDev:  std,
	}
	if len(stack) == 0 {
		return e, nil
	}

	nuclide := stack[len(stack)-1].text
	if !strings.EqualFold(nuclide, "Total Material") {
		e.Nuclide = nuclide
	}
	for _, l := range stack[:len(stack)-1] {
		e.Filters = append(e.Filters, l.text)
		if m := meshLabel.FindStringSubmatch(l.text); m != nil {
			for _, part := range strings.Split(m[1], ",") {
				i, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return e, fmt.Errorf("bad mesh index %q", l.text)
				}
				e.MeshIndex = append(e.MeshIndex, i)
			}
		}
		if m := cellLabel.FindStringSubmatch(l.text); m != nil {
			e.Cell, _ = strconv.Atoi(m[1])
		}
	}
	return e, nil
}

// ReadTally returns the tally with the given name from the report in dir.
// Names are matched case-insensitively since the report prints them in
// upper case.
func ReadTally(dir, name string) (*results.Tally, error) {
	f, err := os.Open(filepath.Join(dir, TallyReport))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tallies, err := ParseTallyReport(f)
	if err != nil {
		return nil, err
	}
	for _, t := range tallies {
		if strings.EqualFold(t.Name, name) {
			t.Name = name
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrTallyNotFound, name, dir)
}
