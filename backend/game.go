package main

import (
	"log"
	"time"

	"github.com/bntti/gomoku/engine"
)

type Game struct {
	settings  GameSettings
	state     GameState
	history   MoveHistory
	aiPlayers map[engine.Player]*AIPlayer
	turnStart time.Time
	logger    *log.Logger
}

func NewGame(settings GameSettings, logger *log.Logger) Game {
	if logger == nil {
		logger = log.Default()
	}
	g := Game{logger: logger}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopAI()
	g.settings = settings
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) TryApplyMove(move engine.Move) (bool, string) {
	return g.applyMove(move, false, 0)
}

func (g *Game) applyMove(move engine.Move, isAi bool, score float64) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.state.ToMove()
	if err := g.state.Position.Play(move); err != nil {
		g.state.LastMessage = "Illegal move: " + err.Error()
		return false, g.state.LastMessage
	}
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.state.LastMessage = ""
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.state.WinningLine = nil
	g.history.Push(HistoryEntry{Move: move, Player: player, ElapsedMs: elapsedMs, IsAi: isAi, Score: score})
	g.logMovePlayed(player, move, elapsedMs, isAi, score)

	board := &g.state.Position.Board
	if engine.HasFiveInARow(board) {
		if line, ok := engine.WinningLine(board, move); ok {
			g.state.WinningLine = line
		}
		g.state.Status = wonStatus(player)
		g.logger.Printf("[game] %s wins after %d moves", player, g.history.Size())
		g.stopAI()
		return true, ""
	}
	if board.IsFull() {
		g.state.Status = StatusDraw
		g.logger.Printf("[game] draw after %d moves", g.history.Size())
		return true, ""
	}
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances AI turns. It reports whether a move was applied.
func (g *Game) Tick(ghostSink func(ghostPayload)) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	ai := g.aiPlayers[g.state.ToMove()]
	if ai == nil {
		return false
	}
	if ai.HasMoveReady() {
		result := ai.TakeMove()
		applied, reason := g.applyMove(result.move, true, result.score)
		if !applied {
			g.logger.Printf("[game] AI move (%d,%d) rejected: %s", result.move.X, result.move.Y, reason)
		}
		return applied
	}
	if !ai.IsThinking() {
		ai.StartThinking(g.state.Clone(), ghostSink)
	}
	return false
}

func (g *Game) CurrentPlayerIsHuman() bool {
	return g.aiPlayers[g.state.ToMove()] == nil
}

func (g *Game) AiThinking() bool {
	ai := g.aiPlayers[g.state.ToMove()]
	return ai != nil && ai.IsThinking()
}

func (g *Game) UpdateSettings(settings GameSettings) {
	g.stopAI()
	g.settings.XType = settings.XType
	g.settings.OType = settings.OType
	g.createPlayers()
}

func (g *Game) createPlayers() {
	g.aiPlayers = make(map[engine.Player]*AIPlayer, 2)
	for _, player := range []engine.Player{engine.PlayerX, engine.PlayerO} {
		if g.settings.typeFor(player) == PlayerAI {
			g.aiPlayers[player] = NewAIPlayer(g.logger)
		}
	}
}

func (g *Game) stopAI() {
	for _, ai := range g.aiPlayers {
		ai.StopThinking()
	}
}

func (g *Game) waitAI() {
	for _, ai := range g.aiPlayers {
		ai.Wait()
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	g.logger.Printf("[game] X (%s) vs O (%s), %s starts",
		label(g.settings.XType), label(g.settings.OType), g.settings.Starting)
}

func (g *Game) logMovePlayed(player engine.Player, move engine.Move, elapsedMs float64, isAi bool, score float64) {
	if isAi {
		g.logger.Printf("[game] %s (AI) plays (%2d,%2d) in %6.0fms eval=%.2f", player, move.X, move.Y, elapsedMs, score)
		return
	}
	g.logger.Printf("[game] %s plays (%2d,%2d) in %6.0fms", player, move.X, move.Y, elapsedMs)
}
