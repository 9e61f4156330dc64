package engine

import (
	"fmt"
	"strings"
)

const BoardSize = 15

type Cell int

const (
	CellEmpty Cell = iota
	CellX
	CellO
)

type Player int

const (
	PlayerX Player = iota
	PlayerO
)

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) IsValid() bool {
	return m.X >= 0 && m.Y >= 0 && m.X < BoardSize && m.Y < BoardSize
}

// Board is indexed [x][y]. Searches mutate it in place and restore every change.
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

func (b *Board) At(x, y int) Cell {
	return b.cells[x][y]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[x][y] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[x][y] = CellEmpty
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.cells[x][y] == CellEmpty
}

func (b *Board) CountEmpty() int {
	count := 0
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if b.cells[x][y] == CellEmpty {
				count++
			}
		}
	}
	return count
}

func (b *Board) IsFull() bool {
	return b.CountEmpty() == 0
}

func (b *Board) String() string {
	var sb strings.Builder
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			fmt.Fprintf(&sb, "| %s ", b.cells[x][y].Symbol())
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// Symbol panics on values outside the three board states.
func (c Cell) Symbol() string {
	switch c {
	case CellEmpty:
		return " "
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		panic(fmt.Sprintf("engine: invalid cell value %d", int(c)))
	}
}

func (c Cell) String() string {
	switch c {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return "Empty"
	}
}

func (p Player) String() string {
	if p == PlayerX {
		return "X"
	}
	return "O"
}

func (p Player) Other() Player {
	if p == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (p Player) Stone() Cell {
	if p == PlayerX {
		return CellX
	}
	return CellO
}

func PlayerFromCell(cell Cell) (Player, error) {
	switch cell {
	case CellX:
		return PlayerX, nil
	case CellO:
		return PlayerO, nil
	default:
		return PlayerX, fmt.Errorf("empty cell has no player")
	}
}

type GameState struct {
	Board  Board
	ToMove Player
}

func NewGameState(starting Player) *GameState {
	return &GameState{ToMove: starting}
}

func (s *GameState) Clone() *GameState {
	clone := *s
	return &clone
}

// Play places the side-to-move's stone and passes the turn.
func (s *GameState) Play(move Move) error {
	if !move.IsValid() {
		return fmt.Errorf("move (%d,%d) out of bounds", move.X, move.Y)
	}
	if !s.Board.IsEmpty(move.X, move.Y) {
		return fmt.Errorf("cell (%d,%d) occupied", move.X, move.Y)
	}
	s.Board.Set(move.X, move.Y, s.ToMove.Stone())
	s.ToMove = s.ToMove.Other()
	return nil
}

func (s *GameState) place(move Move) {
	s.Board.cells[move.X][move.Y] = s.ToMove.Stone()
	s.ToMove = s.ToMove.Other()
}

func (s *GameState) unplace(move Move) {
	s.ToMove = s.ToMove.Other()
	s.Board.cells[move.X][move.Y] = CellEmpty
}
