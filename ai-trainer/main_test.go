package main

import (
	"context"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bntti/gomoku/engine"
	"github.com/bntti/gomoku/records"
)

func quickTrainer(t *testing.T, games int, seed int64) *trainer {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Depth = 1
	out := filepath.Join(t.TempDir(), "selfplay.parquet")
	return newTrainer(log.New(io.Discard, "", 0), games, out, seed, 4, cfg)
}

func TestRandomOpeningStaysNearCenter(t *testing.T) {
	if moves := randomOpening(nil, 0); len(moves) != 0 {
		t.Fatalf("expected no opening moves, got %v", moves)
	}

	seen := map[engine.Move]bool{}
	for _, mv := range randomOpening(rand.New(rand.NewSource(9)), maxOpeningPlies) {
		if seen[mv] {
			t.Fatalf("duplicate opening move %v", mv)
		}
		seen[mv] = true
		center := engine.BoardSize / 2
		if mv.X < center-openingSpread || mv.X > center+openingSpread ||
			mv.Y < center-openingSpread || mv.Y > center+openingSpread {
			t.Fatalf("opening move %v outside the center square", mv)
		}
	}
	if len(seen) != maxOpeningPlies {
		t.Fatalf("expected %d opening moves, got %d", maxOpeningPlies, len(seen))
	}
}

func TestPlayGameProducesConsistentRows(t *testing.T) {
	tr := quickTrainer(t, 1, 11)
	result := tr.playGame(11)

	if result.Plies != len(result.Rows) || result.Plies < 5 {
		t.Fatalf("unexpected ply count %d with %d rows", result.Plies, len(result.Rows))
	}
	state := engine.NewGameState(engine.PlayerX)
	for i, row := range result.Rows {
		if row.Ply != int32(i) || row.GameID != result.ID {
			t.Fatalf("row %d has ply %d game %q", i, row.Ply, row.GameID)
		}
		if row.Player != playerCode(state.ToMove) {
			t.Fatalf("row %d: expected player %d, got %d", i, playerCode(state.ToMove), row.Player)
		}
		if i < 4 && row.Source != "opening" {
			t.Fatalf("row %d: expected opening source, got %q", i, row.Source)
		}
		if err := state.Play(engine.Move{X: int(row.X), Y: int(row.Y)}); err != nil {
			t.Fatalf("row %d replays illegally: %v", i, err)
		}
		if row.Hash != engine.Hash(state) {
			t.Fatalf("row %d hash does not match the replayed position", i)
		}
	}

	if result.Winner == engine.CellEmpty {
		if !state.Board.IsFull() {
			t.Fatalf("draw reported on a board with empty cells")
		}
	} else {
		if !engine.HasFiveInARow(&state.Board) {
			t.Fatalf("winner reported without five in a row")
		}
		last := result.Rows[len(result.Rows)-1]
		if last.Player != cellCode(result.Winner) || last.Result != 1 {
			t.Fatalf("expected the final mover to be the winner, got %+v", last)
		}
	}
}

func TestPlayGameIsReproducible(t *testing.T) {
	tr := quickTrainer(t, 1, 3)
	a := tr.playGame(3)
	b := tr.playGame(3)
	if len(a.Rows) != len(b.Rows) {
		t.Fatalf("expected equal game lengths, got %d and %d", len(a.Rows), len(b.Rows))
	}
	for i := range a.Rows {
		if a.Rows[i].X != b.Rows[i].X || a.Rows[i].Y != b.Rows[i].Y {
			t.Fatalf("games diverge at ply %d", i)
		}
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct game ids")
	}
}

func TestRunWritesRecords(t *testing.T) {
	tr := quickTrainer(t, 2, 21)
	if err := tr.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	rows, err := records.ReadMoves(tr.outPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	games := map[string]bool{}
	for _, row := range rows {
		games[row.GameID] = true
	}
	if len(games) != 2 || tr.played != 2 {
		t.Fatalf("expected 2 recorded games, got %d (played %d)", len(games), tr.played)
	}
	if tr.xWins+tr.oWins+tr.draws != 2 {
		t.Fatalf("result tally does not add up: %+v", tr)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	tr := quickTrainer(t, 3, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.run(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if tr.played != 0 {
		t.Fatalf("expected no games after cancellation, got %d", tr.played)
	}
}

func TestRunExitCodes(t *testing.T) {
	if code := run([]string{"-depth", "-1"}); code != 2 {
		t.Fatalf("expected exit code 2 for a negative depth, got %d", code)
	}
	if code := run([]string{"-unknown"}); code != 2 {
		t.Fatalf("expected exit code 2 for an unknown flag, got %d", code)
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "selfplay.parquet")
	if code := run([]string{"-games", "1", "-depth", "0", "-seed", "7", "-out", out}); code != 0 {
		t.Fatalf("expected a depth 0 run to succeed, got %d", code)
	}
	rows, err := records.ReadMoves(out)
	if err != nil || len(rows) == 0 {
		t.Fatalf("expected rows from the depth 0 run, got %d rows, err=%v", len(rows), err)
	}
}

func TestRunFlushesLogOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	logPath := filepath.Join(dir, "trainer.log")
	args := []string{
		"-games", "1", "-depth", "0", "-seed", "9",
		"-out", filepath.Join(blocker, "selfplay.parquet"),
		"-log", logPath,
	}
	if code := run(args); code != 1 {
		t.Fatalf("expected exit code 1 when records cannot be saved, got %d", code)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "save records") {
		t.Fatalf("expected the failure to reach the log file, got %q", data)
	}
}
