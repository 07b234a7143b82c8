package engine

// Collapse lets every piece fall into the empty cells below it.
// Each empty cell is bubbled to the top of its column by adjacent swaps,
// so pieces keep their relative order and none is lost or duplicated.
// Returns the number of empty cells per column, all of which now sit at
// the top of their column.
func Collapse(b *Board) []int {
	missing := make([]int, b.Width())

	for col := 0; col < b.Width(); col++ {
		// Top-down, so each bubble only passes pieces and earlier bubbles.
		for row := b.Height() - 1; row >= 0; row-- {
			if b.Get(C(col, row)) != nil {
				continue
			}
			missing[col]++
			for j := row; j < b.Height()-1; j++ {
				b.Swap(C(col, j), C(col, j+1))
			}
		}
	}

	return missing
}

// EmptyCells returns the coordinates of all empty cells.
func EmptyCells(b *Board) []Coord {
	var cells []Coord
	for col := 0; col < b.Width(); col++ {
		for row := 0; row < b.Height(); row++ {
			c := C(col, row)
			if b.Get(c) == nil {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
