package main

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bntti/gomoku/engine"
)

type aiResult struct {
	move  engine.Move
	score float64
	took  time.Duration
}

// AIPlayer runs one search at a time in a background goroutine on a private copy of
// the position. A stopped search still runs to completion; its result is discarded.
type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	generation atomic.Uint64
	readyMove  aiResult
	logger     *log.Logger
}

func NewAIPlayer(logger *log.Logger) *AIPlayer {
	if logger == nil {
		logger = log.Default()
	}
	return &AIPlayer{logger: logger}
}

// ChooseMove searches synchronously. The caller must not pass a finished game.
func (a *AIPlayer) ChooseMove(state GameState, config Config) (engine.Move, float64) {
	position := state.Position
	searcher := engine.NewSearcher(config.searchConfig(), a.logger)
	return searcher.BestMove(&position)
}

func (a *AIPlayer) StartThinking(state GameState, ghostSink func(ghostPayload)) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	position := state.Position
	config := GetConfig()
	generation := a.generation.Load()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		defer a.thinking.Store(false)

		start := time.Now()
		searcher := engine.NewSearcher(config.searchConfig(), a.logger)
		toMove := playerToInt(position.ToMove)
		if config.GhostMode && ghostSink != nil {
			throttle := time.Duration(config.AiGhostThrottleMs) * time.Millisecond
			var lastPublish time.Time
			best := engine.Move{X: -1, Y: -1}
			bestScore := 0.0
			maximize := position.ToMove == engine.PlayerO
			searcher.OnRootMove = func(move engine.Move, score float64) {
				if !best.IsValid() || (maximize && score > bestScore) || (!maximize && score < bestScore) {
					best = move
					bestScore = score
				}
				if throttle > 0 && !lastPublish.IsZero() && time.Since(lastPublish) < throttle {
					return
				}
				lastPublish = time.Now()
				ghostSink(ghostPayload{
					Mode:       "candidate",
					Candidate:  &ghostCell{X: move.X, Y: move.Y, Player: toMove},
					Best:       &ghostCell{X: best.X, Y: best.Y, Player: toMove},
					Score:      bestScore,
					NextPlayer: toMove,
					Active:     true,
				})
			}
		}
		move, score := searcher.BestMove(&position)
		if a.generation.Load() != generation {
			return
		}
		a.moveMutex.Lock()
		a.readyMove = aiResult{move: move, score: score, took: time.Since(start)}
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		if ghostSink != nil {
			ghostSink(ghostPayload{
				Mode:       "best_move",
				Best:       &ghostCell{X: move.X, Y: move.Y, Player: toMove},
				Score:      score,
				NextPlayer: toMove,
				Active:     false,
				Final:      true,
			})
		}
	}()
}

func (a *AIPlayer) StopThinking() {
	a.generation.Add(1)
	a.moveReady.Store(false)
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() aiResult {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove
}

// Wait blocks until the current search, if any, has finished.
func (a *AIPlayer) Wait() {
	if a.workerDone != nil {
		<-a.workerDone
	}
}
