package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
)

type wsHub struct {
	log       logr.Logger
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	register  chan *websocket.Conn
	remove    chan *websocket.Conn
	broadcast chan []byte
}

func newHub(log logr.Logger) *wsHub {
	hub := &wsHub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:   make(map[*websocket.Conn]bool),
		register:  make(chan *websocket.Conn),
		remove:    make(chan *websocket.Conn),
		broadcast: make(chan []byte, 16),
	}
	go hub.run()
	return hub
}

func (h *wsHub) run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.remove:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		case msg := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.log.V(1).Info("dropping websocket client", "reason", err.Error())
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

func (h *wsHub) handle(ws *WebServer, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(err, "websocket upgrade failed")
		return
	}

	h.register <- conn

	// New clients get the latest frame immediately instead of waiting a
	// full publish interval.
	ws.mu.RLock()
	if ws.latestFrame != nil {
		if data, err := json.Marshal(ws.latestFrame); err == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
	}
	ws.mu.RUnlock()

	go func() {
		defer func() { h.remove <- conn }()
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.log.V(1).Info("websocket read failed", "reason", err.Error())
				}
				break
			}

			var req controlRequest
			if err := json.Unmarshal(message, &req); err != nil {
				continue
			}
			if cmd, err := ws.processControlRequest(&req); err == nil {
				ws.queueCommand(*cmd)
			}
		}
	}()
}

// broadcastFrame fans the frame out to connected clients. A slow hub drops
// the frame rather than stalling the session loop.
func (h *wsHub) broadcastFrame(frame *VizFrame) {
	if frame == nil {
		return
	}
	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Error(err, "marshal frame for websocket")
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.V(2).Info("websocket broadcast buffer full, frame dropped")
	}
}
