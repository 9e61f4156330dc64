package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bntti/gomoku/engine"
)

func newTestServer(t *testing.T, settings GameSettings) (*httptest.Server, *GameController) {
	t.Helper()
	controller := NewGameController(settings, quietLogger())
	server := httptest.NewServer(newRouter(controller, NewHub(), NewHub()))
	t.Cleanup(func() {
		server.Close()
		controller.Shutdown()
	})
	return server, controller
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func emptyRows() [][]int {
	rows := make([][]int, engine.BoardSize)
	for y := range rows {
		rows[y] = make([]int, engine.BoardSize)
	}
	return rows
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t, humanVsHuman())
	resp, err := http.Get(server.URL + "/api/ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestStartAndMoveEndpoints(t *testing.T) {
	server, _ := newTestServer(t, humanVsHuman())

	var status StatusResponse
	code := postJSON(t, server.URL+"/api/start", map[string]any{
		"settings": GameSettingsDTO{Mode: "human_vs_human", Starting: 2},
	}, &status)
	if code != http.StatusOK || status.Status != "running" {
		t.Fatalf("expected running game, got %d %q", code, status.Status)
	}
	if status.NextPlayer != 2 {
		t.Fatalf("expected O to start, got %d", status.NextPlayer)
	}

	code = postJSON(t, server.URL+"/api/move", apiMove{X: 4, Y: 6}, &status)
	if code != http.StatusOK {
		t.Fatalf("expected move to apply, got %d", code)
	}
	if status.Board[6][4] != 2 || status.NextPlayer != 1 || len(status.History) != 1 {
		t.Fatalf("unexpected status after move: %+v", status)
	}

	var errResp map[string]string
	code = postJSON(t, server.URL+"/api/move", apiMove{X: 4, Y: 6}, &errResp)
	if code != http.StatusBadRequest || errResp["error"] == "" {
		t.Fatalf("expected occupied move to fail with an error, got %d %v", code, errResp)
	}
}

func TestAnalyzeFindsWinningMove(t *testing.T) {
	server, _ := newTestServer(t, humanVsHuman())
	rows := emptyRows()
	for x := 5; x < 9; x++ {
		rows[3][x] = 2
	}
	rows[10][10] = 1
	rows[11][10] = 1

	var resp analyzeResponse
	code := postJSON(t, server.URL+"/api/analyze", analyzeRequest{Board: rows, ToMove: 2}, &resp)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Move == nil {
		t.Fatalf("expected a move in the response")
	}
	if resp.Move.Y != 3 || (resp.Move.X != 4 && resp.Move.X != 9) {
		t.Fatalf("expected O to complete the row at (4,3) or (9,3), got %+v", *resp.Move)
	}
	if resp.Eval <= 1000.0 || resp.FiveInARow {
		t.Fatalf("expected decisive eval and no five yet, got %+v", resp)
	}
}

func TestAnalyzeRejectsBadBoards(t *testing.T) {
	server, _ := newTestServer(t, humanVsHuman())
	rows := emptyRows()
	rows[0][0] = 7
	var errResp map[string]string
	if code := postJSON(t, server.URL+"/api/analyze", analyzeRequest{Board: rows, ToMove: 1}, &errResp); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid cell, got %d", code)
	}
	if code := postJSON(t, server.URL+"/api/analyze", analyzeRequest{Board: rows[:3], ToMove: 1}, &errResp); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short board, got %d", code)
	}
}

func TestAnalyzeReportsFinishedAndFullBoards(t *testing.T) {
	five := emptyRows()
	for y := 0; y < 5; y++ {
		five[y][2] = 1
	}
	resp, code, err := analyzePosition(analyzeRequest{Board: five, ToMove: 2}, DefaultConfig())
	if err != nil || code != http.StatusOK || !resp.FiveInARow || resp.Move != nil {
		t.Fatalf("expected finished position without a move, got %+v %d %v", resp, code, err)
	}

	full := emptyRows()
	for y := range full {
		for x := range full[y] {
			full[y][x] = 1 + (x/2+y)%2
		}
	}
	_, code, err = analyzePosition(analyzeRequest{Board: full, ToMove: 1}, DefaultConfig())
	if err == nil || code != http.StatusConflict {
		t.Fatalf("expected conflict for a full board, got %d %v", code, err)
	}
}

func TestSettingsOverlayPartialConfig(t *testing.T) {
	prev := GetConfig()
	defer configStore.Update(prev)

	server, _ := newTestServer(t, humanVsHuman())
	body := map[string]any{
		"config": map[string]any{
			"engine": map[string]any{"weights": map[string]any{"three_wide": 5}},
		},
	}
	if code := postJSON(t, server.URL+"/api/settings", body, nil); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	cfg := GetConfig()
	if cfg.Engine.Weights.ThreeWide != 5 {
		t.Fatalf("expected three_wide override, got %v", cfg.Engine.Weights.ThreeWide)
	}
	if cfg.Engine.Weights.Five != engine.WinScore || cfg.Engine.Weights.FourOnTurn != engine.ForcedWinScore {
		t.Fatalf("expected untouched weights to keep their values, got %+v", cfg.Engine.Weights)
	}
	if cfg.Engine.Depth != prev.Engine.Depth || cfg.GhostMode != prev.GhostMode {
		t.Fatalf("expected absent fields to survive, got %+v", cfg)
	}

	var errResp map[string]string
	if code := postJSON(t, server.URL+"/api/settings", map[string]any{"config": []int{1}}, &errResp); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed config, got %d", code)
	}
}
