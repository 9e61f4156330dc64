package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bntti/gomoku/engine"
)

func newRouter(controller *GameController, hub *Hub, ghostHub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := settingsFromDTO(payload.Settings, DefaultGameSettings())
		controller.StartGame(settings)
		status := controllerStatus(controller)
		hub.Publish("reset", status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		status := controllerStatus(controller)
		hub.Publish("reset", status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   json.RawMessage  `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if len(payload.Config) > 0 {
			// Fields absent from the request keep their current values.
			cfg := GetConfig()
			if err := json.Unmarshal(payload.Config, &cfg); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid config"})
				return
			}
			configStore.Update(cfg)
		}
		if payload.Settings != nil {
			controller.UpdateSettings(settingsFromDTO(*payload.Settings, controller.Settings()))
		}
		hub.Publish("settings", settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		})
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(engine.Move{X: payload.X, Y: payload.Y})
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.Publish("history", historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
		}
		status := controllerStatus(controller)
		hub.Publish("status", status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		var payload analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		resp, status, err := analyzePosition(payload, GetConfig())
		if err != nil {
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, status, resp)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r,
			func(c *Client) {
				c.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
			},
			func(c *Client, msg wsMessage) {
				if msg.Type == "request_status" {
					c.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
				}
			},
		)
	})
	r.Get("/ws/ghost", func(w http.ResponseWriter, r *http.Request) {
		serveWS(ghostHub, w, r, nil, nil)
	})
	return r
}

// analyzePosition runs a one-off search on a caller supplied position.
func analyzePosition(req analyzeRequest, config Config) (analyzeResponse, int, error) {
	state, err := stateFromRequest(req)
	if err != nil {
		return analyzeResponse{}, http.StatusBadRequest, err
	}
	searcher := engine.NewSearcher(config.searchConfig(), log.Default())
	resp := analyzeResponse{
		FiveInARow: engine.HasFiveInARow(&state.Board),
		Eval:       searcher.Evaluate(state),
		Hash:       formatHash(engine.Hash(state)),
	}
	if resp.FiveInARow {
		return resp, http.StatusOK, nil
	}
	if state.Board.IsFull() {
		return resp, http.StatusConflict, errBoardFull
	}
	move, score := searcher.BestMove(state)
	resp.Move = &move
	resp.Score = score
	resp.Candidates = searcher.Stats().RootCandidates
	return resp, http.StatusOK, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
