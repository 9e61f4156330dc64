package engine

const minLineLength = 5

// boardLines holds every row, column and diagonal long enough to hold five stones.
var boardLines = buildLines()

func buildLines() [][]Move {
	lines := [][]Move{}
	// Rows and columns.
	for i := 0; i < BoardSize; i++ {
		row := make([]Move, 0, BoardSize)
		col := make([]Move, 0, BoardSize)
		for j := 0; j < BoardSize; j++ {
			row = append(row, Move{X: j, Y: i})
			col = append(col, Move{X: i, Y: j})
		}
		lines = append(lines, row, col)
	}
	// Diagonals (\)
	for x := 0; x < BoardSize; x++ {
		lines = appendDiag(lines, x, 0, 1, 1)
	}
	for y := 1; y < BoardSize; y++ {
		lines = appendDiag(lines, 0, y, 1, 1)
	}
	// Anti-diagonals (/)
	for x := 0; x < BoardSize; x++ {
		lines = appendDiag(lines, x, 0, -1, 1)
	}
	for y := 1; y < BoardSize; y++ {
		lines = appendDiag(lines, BoardSize-1, y, -1, 1)
	}
	return lines
}

func appendDiag(lines [][]Move, startX, startY, dx, dy int) [][]Move {
	line := []Move{}
	x := startX
	y := startY
	for x >= 0 && y >= 0 && x < BoardSize && y < BoardSize {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	if len(line) < minLineLength {
		return lines
	}
	return append(lines, line)
}

type run struct {
	cell   Cell
	length int
}

// terminator marks the virtual cell appended after the last real cell of a line.
const terminator Cell = -1

// collectRuns splits a line into maximal runs, framed by a terminator run on each side.
func collectRuns(board *Board, line []Move, runs []run) []run {
	runs = append(runs[:0], run{cell: terminator})
	prev := terminator
	length := 0
	for i := 0; i <= len(line); i++ {
		cell := terminator
		if i < len(line) {
			cell = board.cells[line[i].X][line[i].Y]
		}
		if cell == prev {
			length++
			continue
		}
		if prev != terminator {
			runs = append(runs, run{cell: prev, length: length})
		}
		prev = cell
		length = 1
	}
	return append(runs, run{cell: terminator})
}
