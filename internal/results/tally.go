// Package results shapes engine tally output for reporting and plotting.
package results

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrNoEntries is returned when a selection matches nothing.
	ErrNoEntries = errors.New("results: no matching tally entries")
	// ErrShapeMismatch is returned when tally data does not fit the
	// declared mesh.
	ErrShapeMismatch = errors.New("results: mesh shape mismatch")
)

// TotalNuclide is the nuclide of entries summed over all nuclides.
const TotalNuclide = "total"

// Entry is one scored value of a tally.
type Entry struct {
	Filters   []string // bin labels, outermost filter first
	Cell      int      // cell bin, zero when no cell filter
	MeshIndex []int    // 1-based mesh indices, nil when no mesh filter
	Nuclide   string
	Score     string
	Mean      float64
	StdDev    float64
}

// RelErr returns the relative standard deviation.
func (e Entry) RelErr() float64 {
	if e.Mean == 0 {
		return 0
	}
	return e.StdDev / e.Mean
}

// Tally holds every entry of one engine tally.
type Tally struct {
	ID      int
	Name    string
	Entries []Entry
}

// Select returns the entries with the given score and nuclide, in report
// order. An empty nuclide matches the all-nuclide total.
func (t *Tally) Select(score, nuclide string) []Entry {
	if nuclide == "" {
		nuclide = TotalNuclide
	}
	var out []Entry
	for _, e := range t.Entries {
		if e.Score == score && e.Nuclide == nuclide {
			out = append(out, e)
		}
	}
	return out
}

// Value returns the single entry of an unfiltered tally.
func (t *Tally) Value(score, nuclide string) (Entry, error) {
	sel := t.Select(score, nuclide)
	if len(sel) == 0 {
		return Entry{}, fmt.Errorf("%w: tally %q score %q", ErrNoEntries, t.Name, score)
	}
	if len(sel) > 1 {
		return Entry{}, fmt.Errorf("tally %q score %q has %d bins", t.Name, score, len(sel))
	}
	return sel[0], nil
}

// Scores lists the distinct scores in the tally, sorted.
func (t *Tally) Scores() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range t.Entries {
		if !seen[e.Score] {
			seen[e.Score] = true
			out = append(out, e.Score)
		}
	}
	sort.Strings(out)
	return out
}

// Summary is the outcome of a completed run.
type Summary struct {
	Case       string
	KEff       float64
	KEffStd    float64
	StatePoint string
	Batches    int
	Elapsed    time.Duration
	Tallies    []string
}
