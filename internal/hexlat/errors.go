package hexlat

import "errors"

var (
	// ErrRingCount indicates a lattice with fewer than one ring or a nil fill.
	ErrRingCount = errors.New("hexlat: lattice needs at least one ring and a fill")
	// ErrMissingRing indicates a fill table without an entry for some ring.
	ErrMissingRing = errors.New("hexlat: no fill for ring")
	// ErrRingSize indicates a ring whose length is not 6r (or 1 at the centre).
	ErrRingSize = errors.New("hexlat: ring has wrong number of positions")
	// ErrRingIndex indicates a negative ring index.
	ErrRingIndex = errors.New("hexlat: ring index must be non-negative")
	// ErrPitch indicates a non-positive pitch or edge length.
	ErrPitch = errors.New("hexlat: pitch must be positive")
	// ErrOrientation indicates an orientation other than x or y.
	ErrOrientation = errors.New("hexlat: orientation must be \"x\" or \"y\"")
)
