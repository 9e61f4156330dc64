// Package records stores self-play games as parquet rows, one row per ply.
package records

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const schemaVersion = "gomoku_move_v1"

// MoveRow is one ply of a recorded game.
//
// Player is 1 for X and 2 for O. Result is the final outcome from the mover's
// perspective: 1 win, -1 loss, 0 draw.
type MoveRow struct {
	GameID string  `parquet:"game_id,dict"`
	Ply    int32   `parquet:"ply"`
	X      int32   `parquet:"x"`
	Y      int32   `parquet:"y"`
	Player int32   `parquet:"player"`
	Score  float64 `parquet:"score"`
	Hash   uint64  `parquet:"hash"`
	Seed   int64   `parquet:"seed"`
	Result int32   `parquet:"result"`
	Source string  `parquet:"source,dict"`
}

// WriteMoves writes rows to outPath through a temp file and an atomic rename.
func WriteMoves(outPath string, rows []MoveRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadMoves(path string) ([]MoveRow, error) {
	rows, err := parquet.ReadFile[MoveRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

// AssignResults fills Result on every row of a finished game. winner is 0 for a draw.
func AssignResults(rows []MoveRow, winner int32) {
	for i := range rows {
		switch {
		case winner == 0:
			rows[i].Result = 0
		case rows[i].Player == winner:
			rows[i].Result = 1
		default:
			rows[i].Result = -1
		}
	}
}
