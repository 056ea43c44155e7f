package hexlat

import "fmt"

// RingSize returns the number of positions in ring r.
func RingSize(r int) int {
	if r == 0 {
		return 1
	}
	return 6 * r
}

// Positions returns the total number of positions in a lattice of n rings.
func Positions(rings int) int {
	if rings < 1 {
		return 0
	}
	return 3*rings*(rings-1) + 1
}

// BuildLayout returns the ring sequences of a lattice with the given number
// of rings, outermost ring first. Every position of ring r holds fill(r).
func BuildLayout[T any](rings int, fill func(ring int) T) ([][]T, error) {
	if rings < 1 || fill == nil {
		return nil, fmt.Errorf("%w: rings=%d", ErrRingCount, rings)
	}

	layout := make([][]T, rings)
	for i := range layout {
		r := rings - 1 - i
		v := fill(r)
		ring := make([]T, RingSize(r))
		for j := range ring {
			ring[j] = v
		}
		layout[i] = ring
	}
	return layout, nil
}

// LayoutFromMap builds a layout from a ring index → fill table. Every ring in
// [0, rings) must be present.
func LayoutFromMap[T any](rings int, fills map[int]T) ([][]T, error) {
	if rings < 1 {
		return nil, fmt.Errorf("%w: rings=%d", ErrRingCount, rings)
	}
	for r := 0; r < rings; r++ {
		if _, ok := fills[r]; !ok {
			return nil, fmt.Errorf("%w %d", ErrMissingRing, r)
		}
	}
	return BuildLayout(rings, func(r int) T { return fills[r] })
}

// LayoutFromRings builds a layout from one fill per ring, centre first.
func LayoutFromRings[T any](fills []T) ([][]T, error) {
	return BuildLayout(len(fills), func(r int) T { return fills[r] })
}

// ValidateLayout checks that an outermost-first layout has 6r entries in
// every ring r > 0 and a single centre entry.
func ValidateLayout[T any](layout [][]T) error {
	if len(layout) == 0 {
		return ErrRingCount
	}
	n := len(layout)
	for i, ring := range layout {
		r := n - 1 - i
		if len(ring) != RingSize(r) {
			return fmt.Errorf("%w: ring %d has %d, want %d", ErrRingSize, r, len(ring), RingSize(r))
		}
	}
	return nil
}

// Ring returns ring r of an outermost-first layout, or nil when r is out of
// range.
func Ring[T any](layout [][]T, r int) []T {
	i := len(layout) - 1 - r
	if r < 0 || i < 0 {
		return nil
	}
	return layout[i]
}
