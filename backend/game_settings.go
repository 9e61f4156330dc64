package main

import "github.com/bntti/gomoku/engine"

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	XType    PlayerType    `json:"-"`
	OType    PlayerType    `json:"-"`
	Starting engine.Player `json:"-"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		XType:    PlayerHuman,
		OType:    PlayerAI,
		Starting: engine.PlayerX,
	}
}

func (s GameSettings) typeFor(player engine.Player) PlayerType {
	if player == engine.PlayerX {
		return s.XType
	}
	return s.OType
}
