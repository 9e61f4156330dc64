package engine

import "math/rand"

const defaultRadius = 2

var neighborDirections = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0},
	{1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

type frontierCell struct {
	dist int
	x    int
	y    int
}

// GenerateMoves returns the empty cells within radius steps of any stone, or every
// cell when the board is empty. The order is shuffled with rng when rng is non-nil.
func GenerateMoves(board *Board, radius int, rng *rand.Rand) []Move {
	if radius <= 0 {
		radius = defaultRadius
	}
	var visited [BoardSize][BoardSize]bool
	frontier := make([]frontierCell, 0, BoardSize*BoardSize)
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if board.cells[x][y] != CellEmpty {
				frontier = append(frontier, frontierCell{x: x, y: y})
				visited[x][y] = true
			}
		}
	}

	moves := make([]Move, 0, 64)
	for head := 0; head < len(frontier); head++ {
		cur := frontier[head]
		for _, dir := range neighborDirections {
			nx := cur.x + dir[0]
			ny := cur.y + dir[1]
			if !board.InBounds(nx, ny) || visited[nx][ny] {
				continue
			}
			visited[nx][ny] = true
			if board.cells[nx][ny] == CellEmpty {
				moves = append(moves, Move{X: nx, Y: ny})
			}
			if cur.dist+1 < radius {
				frontier = append(frontier, frontierCell{dist: cur.dist + 1, x: nx, y: ny})
			}
		}
	}

	if len(frontier) == 0 {
		for x := 0; x < BoardSize; x++ {
			for y := 0; y < BoardSize; y++ {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	if rng != nil {
		rng.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}
	return moves
}
