package hexlat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildLayout_RingCounts(t *testing.T) {
	for rings := 1; rings <= 12; rings++ {
		layout, err := BuildLayout(rings, func(r int) int { return r })
		require.NoError(t, err)
		require.Len(t, layout, rings)

		for r := 1; r < rings; r++ {
			ring := layout[rings-1-r]
			require.Len(t, ring, 6*r, "ring %d of %d", r, rings)
			for _, v := range ring {
				require.Equal(t, r, v)
			}
		}
		center := layout[rings-1]
		require.Equal(t, []int{0}, center)
		require.NoError(t, ValidateLayout(layout))
	}
}

func TestLayoutFromMap_ThreeRings(t *testing.T) {
	layout, err := LayoutFromMap(3, map[int]string{0: "A", 1: "B", 2: "C"})
	require.NoError(t, err)

	want := [][]string{
		{"C", "C", "C", "C", "C", "C", "C", "C", "C", "C", "C", "C"},
		{"B", "B", "B", "B", "B", "B"},
		{"A"},
	}
	require.Equal(t, want, layout)
}

func TestLayoutFromMap_MissingRing(t *testing.T) {
	_, err := LayoutFromMap(3, map[int]string{0: "A", 2: "C"})
	require.ErrorIs(t, err, ErrMissingRing)
}

func TestLayoutFromRings_CenterFirst(t *testing.T) {
	layout, err := LayoutFromRings([]string{"inner", "inner", "outer"})
	require.NoError(t, err)
	require.Equal(t, []string{"inner"}, Ring(layout, 0))
	require.Len(t, Ring(layout, 2), 12)
	require.Equal(t, "outer", Ring(layout, 2)[0])
	require.Nil(t, Ring(layout, 3))
	require.Nil(t, Ring(layout, -1))
}

func TestBuildLayout_RejectsBadInput(t *testing.T) {
	_, err := BuildLayout(0, func(int) int { return 0 })
	require.ErrorIs(t, err, ErrRingCount)

	_, err = BuildLayout[int](2, nil)
	require.ErrorIs(t, err, ErrRingCount)

	_, err = LayoutFromRings([]int{})
	require.ErrorIs(t, err, ErrRingCount)
}

func TestValidateLayout_WrongRingSize(t *testing.T) {
	bad := [][]int{{1, 1, 1, 1, 1}, {0}}
	require.ErrorIs(t, ValidateLayout(bad), ErrRingSize)
	require.ErrorIs(t, ValidateLayout([][]int{}), ErrRingCount)
}

func TestBuildLayout_Idempotent(t *testing.T) {
	fill := func(r int) string { return string(rune('a' + r)) }
	a, err := BuildLayout(6, fill)
	require.NoError(t, err)
	b, err := BuildLayout(6, fill)
	require.NoError(t, err)
	require.Equal(t, a, b)

	// rings are independent slices
	a[0][0] = "z"
	require.Equal(t, "f", b[0][0])
	require.Equal(t, "f", a[0][1])
}

func TestPositions(t *testing.T) {
	require.Equal(t, 0, Positions(0))
	require.Equal(t, 1, Positions(1))
	require.Equal(t, 7, Positions(2))
	require.Equal(t, 91, Positions(6))
	require.Equal(t, 331, Positions(11))
}
