package hexlat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRingCoordinates_Center(t *testing.T) {
	for _, pitch := range []float64{0.1, 0.85, 14.085} {
		pts, err := RingCoordinates(0, pitch)
		require.NoError(t, err)
		require.Equal(t, []Point{{X: 0, Y: 0}}, pts)
	}
}

func TestRingCoordinates_FirstRingIsRegularHexagon(t *testing.T) {
	pts, err := RingCoordinates(1, 0.85)
	require.NoError(t, err)
	require.Len(t, pts, 6)

	require.InDelta(t, 0.85, pts[0].X, eps)
	require.InDelta(t, 0.0, pts[0].Y, eps)

	for k, p := range pts {
		require.InDelta(t, 0.85, p.Norm(), eps)
		next := pts[(k+1)%6]
		require.InDelta(t, 0.85, math.Hypot(next.X-p.X, next.Y-p.Y), eps, "side %d", k)
	}
}

func TestRingCoordinates_CountAndNorm(t *testing.T) {
	const pitch = 1.3
	for r := 1; r <= 10; r++ {
		pts, err := RingCoordinates(r, pitch)
		require.NoError(t, err)
		require.Len(t, pts, 6*r)

		limit := float64(r) * pitch
		for k, p := range pts {
			require.LessOrEqual(t, p.Norm(), limit+eps)
			if k%r == 0 {
				require.InDelta(t, limit, p.Norm(), eps, "corner %d of ring %d", k, r)
			}
		}
	}
}

func TestRingCoordinates_NeighboursArePitchApart(t *testing.T) {
	const pitch = 0.85
	for r := 1; r <= 5; r++ {
		pts, err := RingCoordinates(r, pitch)
		require.NoError(t, err)

		// Consecutive positions along one side are adjacent.
		for k := range pts {
			if k%r == r-1 {
				continue
			}
			a, b := pts[k], pts[k+1]
			require.InDelta(t, pitch, math.Hypot(b.X-a.X, b.Y-a.Y), eps, "ring %d, positions %d and %d", r, k, k+1)
		}

		// Every position has a neighbour one pitch away.
		for k, a := range pts {
			if r == 1 {
				break
			}
			found := false
			for j, b := range pts {
				if j != k && math.Abs(math.Hypot(b.X-a.X, b.Y-a.Y)-pitch) < eps {
					found = true
					break
				}
			}
			require.True(t, found, "ring %d, position %d has no neighbour", r, k)
		}
	}
}

func TestRingCoordinates_RejectsBadInput(t *testing.T) {
	_, err := RingCoordinates(-1, 0.85)
	require.ErrorIs(t, err, ErrRingIndex)

	_, err = RingCoordinates(2, 0)
	require.ErrorIs(t, err, ErrPitch)

	_, err = RingCoordinates(2, math.NaN())
	require.ErrorIs(t, err, ErrPitch)
}

func TestRingCoordinates_Idempotent(t *testing.T) {
	a, err := RingCoordinates(4, 0.85)
	require.NoError(t, err)
	b, err := RingCoordinates(4, 0.85)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestLatticeCoordinates_MatchesLayout(t *testing.T) {
	pts, err := LatticeCoordinates(6, 0.85)
	require.NoError(t, err)
	require.Len(t, pts, Positions(6))
	require.Equal(t, Point{}, pts[0])

	layout, err := BuildLayout(6, func(r int) int { return r })
	require.NoError(t, err)
	total := 0
	for _, ring := range layout {
		total += len(ring)
	}
	require.Equal(t, total, len(pts))
}

func TestOriented_YLatticeHasNeighbourOnYAxis(t *testing.T) {
	pts, err := RingCoordinates(1, 2)
	require.NoError(t, err)

	rotated := Oriented(pts, OrientationY)
	found := false
	for _, p := range rotated {
		if math.Abs(p.X) < eps && math.Abs(p.Y-2) < eps {
			found = true
		}
	}
	require.True(t, found, "expected a position at (0, 2)")
	require.Equal(t, pts, Oriented(pts, OrientationX))
}

func TestHexagon(t *testing.T) {
	out, err := Hexagon(5.1, OrientationX)
	require.NoError(t, err)
	require.Len(t, out, 7)
	require.Equal(t, out[0], out[6])
	require.InDelta(t, 5.1, out[0].X, eps)
	require.InDelta(t, 0, out[0].Y, eps)

	out, err = Hexagon(2, OrientationY)
	require.NoError(t, err)
	require.InDelta(t, 0, out[0].X, eps)
	require.InDelta(t, 2, out[0].Y, eps)

	_, err = Hexagon(1, Orientation("z"))
	require.ErrorIs(t, err, ErrOrientation)
	_, err = Hexagon(-1, OrientationX)
	require.ErrorIs(t, err, ErrPitch)
}
