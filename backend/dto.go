package main

import (
	"errors"
	"fmt"

	"github.com/bntti/gomoku/engine"
)

var errBoardFull = errors.New("board is full")

type StatusResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	Board           [][]int           `json:"board"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []engine.Move     `json:"winning_line"`
	LastMove        *engine.Move      `json:"last_move,omitempty"`
	Message         string            `json:"message,omitempty"`
	Hash            string            `json:"hash"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	Starting    int    `json:"starting,omitempty"`
}

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Score     float64 `json:"score,omitempty"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

// analyzeRequest carries a position as rows of cells: board[y][x], 0 empty, 1 X, 2 O.
type analyzeRequest struct {
	Board  [][]int `json:"board"`
	ToMove int     `json:"to_move"`
}

type analyzeResponse struct {
	Move       *engine.Move `json:"move,omitempty"`
	Score      float64      `json:"score"`
	Eval       float64      `json:"eval"`
	FiveInARow bool         `json:"five_in_a_row"`
	Candidates int          `json:"candidates"`
	Hash       string       `json:"hash"`
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	resp := StatusResponse{
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		NextPlayer:      playerToInt(state.ToMove()),
		Winner:          winnerFromStatus(state.Status),
		Status:          statusToString(state.Status),
		Board:           boardToSlice(&state.Position.Board),
		History:         historyToDTO(controller.History()),
		WinningLine:     append([]engine.Move{}, state.WinningLine...),
		Message:         state.LastMessage,
		Hash:            formatHash(state.Hash()),
		AiThinking:      controller.AiThinking(),
		TurnStartedAtMs: controller.CurrentTurnStartedAtMs(),
	}
	if state.HasLastMove {
		last := state.LastMove
		resp.LastMove = &last
	}
	return resp
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	switch dto.Mode {
	case "ai_vs_ai":
		settings.XType = PlayerAI
		settings.OType = PlayerAI
	case "human_vs_human":
		settings.XType = PlayerHuman
		settings.OType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == 2 {
			settings.XType = PlayerAI
			settings.OType = PlayerHuman
		} else {
			settings.XType = PlayerHuman
			settings.OType = PlayerAI
		}
	}
	if dto.Starting != 0 {
		settings.Starting = intToPlayer(dto.Starting)
	}
	return settings
}

func controllerSettingsDTO(settings GameSettings) GameSettingsDTO {
	dto := GameSettingsDTO{Mode: "ai_vs_human", Starting: playerToInt(settings.Starting)}
	switch {
	case settings.XType == PlayerAI && settings.OType == PlayerAI:
		dto.Mode = "ai_vs_ai"
	case settings.XType == PlayerHuman && settings.OType == PlayerHuman:
		dto.Mode = "human_vs_human"
		dto.HumanPlayer = 1
	case settings.XType == PlayerHuman:
		dto.HumanPlayer = 1
	default:
		dto.HumanPlayer = 2
	}
	return dto
}

func stateFromRequest(req analyzeRequest) (*engine.GameState, error) {
	if len(req.Board) != engine.BoardSize {
		return nil, fmt.Errorf("board must have %d rows, got %d", engine.BoardSize, len(req.Board))
	}
	if req.ToMove != 1 && req.ToMove != 2 {
		return nil, fmt.Errorf("to_move must be 1 or 2, got %d", req.ToMove)
	}
	state := engine.NewGameState(intToPlayer(req.ToMove))
	for y, row := range req.Board {
		if len(row) != engine.BoardSize {
			return nil, fmt.Errorf("row %d must have %d cells, got %d", y, engine.BoardSize, len(row))
		}
		for x, value := range row {
			cell, err := intToCell(value)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			state.Board.Set(x, y, cell)
		}
	}
	return state, nil
}

func boardToSlice(board *engine.Board) [][]int {
	rows := make([][]int, engine.BoardSize)
	for y := 0; y < engine.BoardSize; y++ {
		rows[y] = make([]int, engine.BoardSize)
		for x := 0; x < engine.BoardSize; x++ {
			rows[y][x] = cellToInt(board.At(x, y))
		}
	}
	return rows
}

func cellToInt(cell engine.Cell) int {
	switch cell {
	case engine.CellX:
		return 1
	case engine.CellO:
		return 2
	default:
		return 0
	}
}

func intToCell(value int) (engine.Cell, error) {
	switch value {
	case 0:
		return engine.CellEmpty, nil
	case 1:
		return engine.CellX, nil
	case 2:
		return engine.CellO, nil
	default:
		return engine.CellEmpty, fmt.Errorf("invalid cell value %d", value)
	}
}

func playerToInt(player engine.Player) int {
	if player == engine.PlayerX {
		return 1
	}
	return 2
}

func intToPlayer(value int) engine.Player {
	if value == 2 {
		return engine.PlayerO
	}
	return engine.PlayerX
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusXWon:
		return 1
	case StatusOWon:
		return 2
	default:
		return 0
	}
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusXWon:
		return "x_won"
	case StatusOWon:
		return "o_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		X:         entry.Move.X,
		Y:         entry.Move.Y,
		Player:    playerToInt(entry.Player),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Score:     entry.Score,
	}
}

func formatHash(hash uint64) string {
	return fmt.Sprintf("0x%016x", hash)
}
