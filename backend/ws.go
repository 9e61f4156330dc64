package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsWriteTimeout     = 10 * time.Second
)

type ghostCell struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Player int `json:"player"`
}

// ghostPayload previews an AI search in progress: the root candidate just scored and
// the best one so far.
type ghostPayload struct {
	Mode       string     `json:"mode,omitempty"`
	Candidate  *ghostCell `json:"candidate,omitempty"`
	Best       *ghostCell `json:"best,omitempty"`
	Score      float64    `json:"score,omitempty"`
	NextPlayer int        `json:"next_player,omitempty"`
	Active     bool       `json:"active"`
	Final      bool       `json:"final,omitempty"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// serveWS upgrades the request, registers a client on hub and pumps messages until
// the peer goes away. onConnect may queue an initial message for the new client.
func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request, onConnect func(*Client), onMessage func(*Client, wsMessage)) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := newClient()
	hub.Register(client)
	if onConnect != nil {
		onConnect(client)
	}

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		if onMessage == nil {
			continue
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		onMessage(client, msg)
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteTimeout))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
