package engine

// HasFiveInARow reports whether any row, column or diagonal holds five or more
// consecutive stones of the same color.
func HasFiveInARow(board *Board) bool {
	var buf [BoardSize + 2]run
	for _, line := range boardLines {
		runs := collectRuns(board, line, buf[:0])
		for _, r := range runs[1 : len(runs)-1] {
			if r.cell != CellEmpty && r.length >= minLineLength {
				return true
			}
		}
	}
	return false
}

// WinningLine returns the stones of the five-or-longer run through last, if any.
func WinningLine(board *Board, last Move) ([]Move, bool) {
	if !last.IsValid() {
		return nil, false
	}
	target := board.At(last.X, last.Y)
	if target == CellEmpty {
		return nil, false
	}
	directions := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, dir := range directions {
		line := collectLine(board, last, dir[0], dir[1], target)
		if len(line) >= minLineLength {
			return line, true
		}
	}
	return nil, false
}

func collectLine(board *Board, start Move, dx, dy int, target Cell) []Move {
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	line := []Move{}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}
