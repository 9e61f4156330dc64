package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"

	"github.com/bntti/gomoku/engine"
	"github.com/bntti/gomoku/records"
)

const (
	maxOpeningPlies = 8
	openingSpread   = 2
)

type trainer struct {
	logger   *log.Logger
	games    int
	outPath  string
	seed     int64
	openings int
	engine   engine.Config

	played  int
	xWins   int
	oWins   int
	draws   int
	started time.Time
}

type gameResult struct {
	ID     string
	Rows   []records.MoveRow
	Winner engine.Cell
	Plies  int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup (profile, log file) always runs.
func run(args []string) int {
	fs := flag.NewFlagSet("ai-trainer", flag.ContinueOnError)
	games := fs.Int("games", 10, "number of self-play games")
	outPath := fs.String("out", "data/selfplay.parquet", "parquet output path")
	seed := fs.Int64("seed", 0, "base seed; game i uses seed+i (0 picks a time-based seed)")
	depth := fs.Int("depth", engine.DefaultConfig().Depth, "search depth below the root; 0 scores root candidates statically")
	openings := fs.Int("openings", 4, "random opening plies placed around the center")
	logPath := fs.String("log", "", "optional log file, mirrored to stdout")
	withProfile := fs.Bool("profile", false, "write a CPU profile for the run")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *depth < 0 {
		fmt.Fprintf(os.Stderr, "[trainer] invalid -depth %d: must be 0 or more\n", *depth)
		return 2
	}

	if *withProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	logger, closeLog, err := buildLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[trainer] failed to initialize logger: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg := engine.DefaultConfig()
	cfg.Depth = *depth
	t := newTrainer(logger, *games, *outPath, *seed, *openings, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := t.run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			t.logf("Interrupted after %d games", t.played)
			return 0
		}
		t.logf("%v", err)
		return 1
	}
	return 0
}

func newTrainer(logger *log.Logger, games int, outPath string, seed int64, openings int, cfg engine.Config) *trainer {
	if games < 1 {
		games = 1
	}
	if openings < 0 {
		openings = 0
	}
	if openings > maxOpeningPlies {
		openings = maxOpeningPlies
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &trainer{
		logger:   logger,
		games:    games,
		outPath:  outPath,
		seed:     seed,
		openings: openings,
		engine:   cfg,
	}
}

func (t *trainer) logf(format string, args ...any) {
	t.logger.Printf("[trainer] "+format, args...)
}

// run plays every game and writes the collected rows once at the end. Games finished
// before a cancellation are still written.
func (t *trainer) run(ctx context.Context) error {
	t.started = time.Now()
	t.logf("Self-play started. games=%d depth=%d openings=%d seed=%d out=%s",
		t.games, t.engine.Depth, t.openings, t.seed, t.outPath)

	var rows []records.MoveRow
	var runErr error
	for i := 0; i < t.games; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		result := t.playGame(t.seed + int64(i))
		rows = append(rows, result.Rows...)
		t.recordResult(result)
		t.logf("Game %d/%d %s finished in %d plies, winner=%s",
			i+1, t.games, result.ID, result.Plies, winnerLabel(result.Winner))
	}

	if len(rows) == 0 {
		return runErr
	}
	if err := records.WriteMoves(t.outPath, rows); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	t.logf("Wrote %d rows to %s (x=%d o=%d draw=%d) in %s",
		len(rows), t.outPath, t.xWins, t.oWins, t.draws, time.Since(t.started).Round(time.Millisecond))
	return runErr
}

func (t *trainer) recordResult(result gameResult) {
	t.played++
	switch result.Winner {
	case engine.CellX:
		t.xWins++
	case engine.CellO:
		t.oWins++
	default:
		t.draws++
	}
}

// playGame runs one engine-vs-engine game. The same seed yields the same game.
func (t *trainer) playGame(seed int64) gameResult {
	rng := rand.New(rand.NewSource(seed))
	cfg := t.engine
	cfg.Seed = seed
	searcher := engine.NewSearcher(cfg, log.New(io.Discard, "", 0))

	state := engine.NewGameState(engine.PlayerX)
	result := gameResult{ID: uuid.NewString(), Winner: engine.CellEmpty}

	push := func(move engine.Move, score float64, source string) {
		player := state.ToMove
		if err := state.Play(move); err != nil {
			// Moves come from the generator or from empty cells, so this is unreachable.
			panic(fmt.Sprintf("trainer: illegal move %v: %v", move, err))
		}
		result.Rows = append(result.Rows, records.MoveRow{
			GameID: result.ID,
			Ply:    int32(result.Plies),
			X:      int32(move.X),
			Y:      int32(move.Y),
			Player: playerCode(player),
			Score:  score,
			Hash:   engine.Hash(state),
			Seed:   seed,
			Source: source,
		})
		result.Plies++
	}

	for _, move := range randomOpening(rng, t.openings) {
		push(move, 0, "opening")
	}

	for !engine.HasFiveInARow(&state.Board) && !state.Board.IsFull() {
		mover := state.ToMove
		move, score := searcher.BestMove(state)
		push(move, score, "search")
		if engine.HasFiveInARow(&state.Board) {
			result.Winner = mover.Stone()
		}
	}

	records.AssignResults(result.Rows, cellCode(result.Winner))
	return result
}

// randomOpening picks distinct cells in a small square around the center.
func randomOpening(rng *rand.Rand, plies int) []engine.Move {
	center := engine.BoardSize / 2
	side := 2*openingSpread + 1
	taken := make(map[engine.Move]bool, plies)
	moves := make([]engine.Move, 0, plies)
	for len(moves) < plies && len(moves) < side*side {
		mv := engine.Move{
			X: center - openingSpread + rng.Intn(side),
			Y: center - openingSpread + rng.Intn(side),
		}
		if taken[mv] {
			continue
		}
		taken[mv] = true
		moves = append(moves, mv)
	}
	return moves
}

func playerCode(p engine.Player) int32 {
	if p == engine.PlayerX {
		return 1
	}
	return 2
}

func cellCode(c engine.Cell) int32 {
	switch c {
	case engine.CellX:
		return 1
	case engine.CellO:
		return 2
	default:
		return 0
	}
}

func winnerLabel(c engine.Cell) string {
	if c == engine.CellEmpty {
		return "draw"
	}
	return c.String()
}

func buildLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(os.Stdout, "", log.LstdFlags), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags)
	return logger, func() { _ = f.Close() }, nil
}
