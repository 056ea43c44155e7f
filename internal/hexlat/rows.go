package hexlat

import "fmt"

// Rows rearranges an outermost-first layout into the pictorial row order
// used by the engine's lattice input: rows from top to bottom, each row
// from left to right. Within a ring, position 0 is the top position of a
// y-oriented lattice (walking clockwise) or the +x position of an
// x-oriented one.
//
// A y-oriented lattice of n rings has 4(n-1)+1 rows; an x-oriented one has
// 2n-1 rows.
func Rows[T any](layout [][]T, o Orientation) ([][]T, error) {
	if err := ValidateLayout(layout); err != nil {
		return nil, err
	}
	switch o {
	case OrientationY:
		return rowsY(layout), nil
	case OrientationX:
		return rowsX(layout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrOrientation, o)
	}
}

func rowsY[T any](layout [][]T) [][]T {
	n := len(layout)
	rows := make([][]T, 4*(n-1)+1)
	middle := 2 * (n - 1)
	rows[middle] = append(rows[middle], layout[n-1][0])

	for r := 1; r < n; r++ {
		ring := layout[n-1-r]
		theta := 0
		y := middle - 2*r

		// top-right, right and bottom-right sides append on the right
		for i := 0; i < r; i++ {
			rows[y] = append(rows[y], ring[theta])
			y++
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = append(rows[y], ring[theta])
			y += 2
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = append(rows[y], ring[theta])
			y++
			theta++
		}

		// bottom-left, left and top-left sides prepend on the left
		for i := 0; i < r; i++ {
			rows[y] = prepend(rows[y], ring[theta])
			y--
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = prepend(rows[y], ring[theta])
			y -= 2
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = prepend(rows[y], ring[theta])
			y--
			theta++
		}
	}
	return rows
}

func rowsX[T any](layout [][]T) [][]T {
	n := len(layout)
	rows := make([][]T, 2*n-1)
	middle := n - 1
	rows[middle] = append(rows[middle], layout[n-1][0])

	for r := 1; r < n; r++ {
		ring := layout[n-1-r]
		theta := 0
		y := middle

		for i := 0; i < r; i++ {
			rows[y] = append(rows[y], ring[theta])
			y++
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = prepend(rows[y], ring[theta])
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = prepend(rows[y], ring[theta])
			y--
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = prepend(rows[y], ring[theta])
			y--
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = append(rows[y], ring[theta])
			theta++
		}
		for i := 0; i < r; i++ {
			rows[y] = append(rows[y], ring[theta])
			y++
			theta++
		}
	}

	// built bottom-up; the engine reads the top row first
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

func prepend[T any](s []T, v T) []T {
	s = append(s, v)
	copy(s[1:], s[:len(s)-1])
	s[0] = v
	return s
}
