package engine

type zobristTable struct {
	stones [BoardSize][BoardSize][2]uint64
	side   uint64
}

var zobrist = newZobristTable(0x9e3779b97f4a7c15 ^ BoardSize)

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	table := &zobristTable{}
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			table.stones[x][y][0] = rng.next()
			table.stones[x][y][1] = rng.next()
		}
	}
	table.side = rng.next()
	return table
}

// Hash identifies a position (stones plus side to move).
func Hash(state *GameState) uint64 {
	var hash uint64
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			switch state.Board.cells[x][y] {
			case CellX:
				hash ^= zobrist.stones[x][y][0]
			case CellO:
				hash ^= zobrist.stones[x][y][1]
			}
		}
	}
	if state.ToMove == PlayerO {
		hash ^= zobrist.side
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
