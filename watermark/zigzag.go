package watermark

import "fmt"

// markGridSize is the side of the mark grid the zig-zag scan operates on.
const markGridSize = 128

// zigzagOrder returns the (row, col) visiting order of the standard JPEG
// zig-zag scan generalized to an n x n grid: diagonal sweeps that
// alternate direction, starting at the top-left corner.
func zigzagOrder(n int) [][2]int {
	order := make([][2]int, 0, n*n)
	row, col := 0, 0
	goingUp := true
	for i := 0; i < n*n; i++ {
		order = append(order, [2]int{row, col})
		switch {
		case goingUp:
			switch {
			case col == n-1:
				row++
				goingUp = false
			case row == 0:
				col++
				goingUp = false
			default:
				row--
				col++
			}
		default:
			switch {
			case row == n-1:
				col++
				goingUp = true
			case col == 0:
				row++
				goingUp = true
			default:
				row++
				col--
			}
		}
	}
	return order
}

var markZigzagOrder = zigzagOrder(markGridSize)

// two2one fills v (length n*n) from grid M (n x n) in zig-zag scan order.
func two2one(grid [][]int, v []int) error {
	n := len(grid)
	if n != markGridSize || len(v) != markGridSize*markGridSize {
		return fmt.Errorf("two2one: expected %dx%d grid and length-%d vector: %w",
			markGridSize, markGridSize, markGridSize*markGridSize, ErrInvalidBlockSize)
	}
	for i, rc := range markZigzagOrder {
		v[i] = grid[rc[0]][rc[1]]
	}
	return nil
}

// one2two is the inverse of two2one: it scatters v back into an n x n grid
// in zig-zag order.
func one2two(v []int, grid [][]int) error {
	n := len(grid)
	if n != markGridSize || len(v) != markGridSize*markGridSize {
		return fmt.Errorf("one2two: expected %dx%d grid and length-%d vector: %w",
			markGridSize, markGridSize, markGridSize*markGridSize, ErrInvalidBlockSize)
	}
	for i, rc := range markZigzagOrder {
		grid[rc[0]][rc[1]] = v[i]
	}
	return nil
}

// newGrid allocates an n x n int grid.
func newGrid(n int) [][]int {
	g := make([][]int, n)
	for i := range g {
		g[i] = make([]int, n)
	}
	return g
}
