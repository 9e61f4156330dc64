package main

import (
	"log"
	"sync"

	"github.com/bntti/gomoku/engine"
)

type GameController struct {
	mu             sync.Mutex
	game           Game
	ghostEnabled   func() bool
	ghostPublisher func(ghostPayload)
}

func NewGameController(settings GameSettings, logger *log.Logger) *GameController {
	return &GameController{game: NewGame(settings, logger)}
}

func (gc *GameController) SetGhostPublisher(enabled func() bool, publisher func(ghostPayload)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.ghostEnabled = enabled
	gc.ghostPublisher = publisher
}

func (gc *GameController) ApplyHumanMove(move engine.Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	var sink func(ghostPayload)
	if gc.ghostPublisher != nil && (gc.ghostEnabled == nil || gc.ghostEnabled()) {
		sink = gc.ghostPublisher
	}
	return gc.game.Tick(sink)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History().Last()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(update GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.UpdateSettings(update)
}

// Shutdown discards pending AI results and waits for running searches to finish.
func (gc *GameController) Shutdown() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.stopAI()
	gc.game.waitAI()
}
