// Package hexlat builds ring-ordered hexagonal lattice layouts and the
// Cartesian coordinates of their positions.
//
// Ring 0 is the single centre position; ring r > 0 holds 6r positions. A
// layout is the nested slice the transport engine consumes: one slice per
// ring, outermost ring first, centre last.
//
// Errors:
//
//   - ErrRingCount: ring count below one, or no fill supplied.
//   - ErrMissingRing: a fill table has no entry for a ring.
//   - ErrRingSize: a ring in a layout has the wrong number of positions.
//   - ErrRingIndex: a negative ring index.
//   - ErrPitch: a non-positive pitch or edge length.
package hexlat
