package engine

import (
	"strings"
	"testing"
)

func TestPlayAlternatesAndRejectsOccupied(t *testing.T) {
	state := NewGameState(PlayerO)
	if err := state.Play(Move{X: 7, Y: 7}); err != nil {
		t.Fatalf("expected first move to apply: %v", err)
	}
	if state.Board.At(7, 7) != CellO || state.ToMove != PlayerX {
		t.Fatalf("expected O stone and X to move, got %v and %v", state.Board.At(7, 7), state.ToMove)
	}
	if err := state.Play(Move{X: 7, Y: 7}); err == nil {
		t.Fatalf("expected occupied cell to be rejected")
	}
	if err := state.Play(Move{X: 15, Y: 0}); err == nil {
		t.Fatalf("expected out of bounds move to be rejected")
	}
	if state.ToMove != PlayerX {
		t.Fatalf("expected rejected moves to keep the turn")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	state := NewGameState(PlayerX)
	state.Board.Set(1, 1, CellX)
	clone := state.Clone()
	clone.Board.Set(2, 2, CellO)
	if state.Board.At(2, 2) != CellEmpty {
		t.Fatalf("expected clone mutation not to leak into original")
	}
}

func TestBoardString(t *testing.T) {
	var board Board
	board.Set(0, 0, CellX)
	board.Set(0, 1, CellO)
	lines := strings.Split(strings.TrimSuffix(board.String(), "\n"), "\n")
	if len(lines) != BoardSize {
		t.Fatalf("expected %d lines, got %d", BoardSize, len(lines))
	}
	if !strings.HasPrefix(lines[0], "| X | O |   |") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestInvalidCellSymbolPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected invalid cell to panic")
		}
	}()
	_ = terminator.Symbol()
}

func TestHashTracksStonesAndSide(t *testing.T) {
	state := NewGameState(PlayerX)
	empty := Hash(state)
	state.Board.Set(3, 4, CellX)
	withX := Hash(state)
	if withX == empty {
		t.Fatalf("expected stone to change the hash")
	}
	state.Board.Set(3, 4, CellO)
	if Hash(state) == withX {
		t.Fatalf("expected stone color to change the hash")
	}
	state.Board.Remove(3, 4)
	if Hash(state) != empty {
		t.Fatalf("expected removing the stone to restore the hash")
	}
	state.ToMove = PlayerO
	if Hash(state) == empty {
		t.Fatalf("expected side to move to change the hash")
	}
}
