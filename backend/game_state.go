package main

import "github.com/bntti/gomoku/engine"

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusXWon
	StatusOWon
	StatusDraw
)

type GameState struct {
	Position    engine.GameState
	Status      GameStatus
	HasLastMove bool
	LastMove    engine.Move
	LastMessage string
	WinningLine []engine.Move
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Position = *engine.NewGameState(settings.Starting)
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = engine.Move{X: -1, Y: -1}
	s.LastMessage = ""
	s.WinningLine = nil
}

func (s GameState) Clone() GameState {
	clone := s
	clone.WinningLine = append([]engine.Move(nil), s.WinningLine...)
	return clone
}

func (s GameState) ToMove() engine.Player {
	return s.Position.ToMove
}

func (s GameState) Hash() uint64 {
	return engine.Hash(&s.Position)
}

func wonStatus(player engine.Player) GameStatus {
	if player == engine.PlayerX {
		return StatusXWon
	}
	return StatusOWon
}
