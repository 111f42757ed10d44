// Package network streams game snapshots to websocket spectators.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"slither/game"
	"slither/logger"

	"github.com/gorilla/websocket"
)

const broadcastBuffer = 64

// Hub maintains the set of active spectators and broadcasts snapshots to
// them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	upgrader   websocket.Upgrader
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Spectators are read-only; any origin may watch.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run handles registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("spectator hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("spectator connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Too slow to keep up; drop it.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a snapshot for every spectator. It never blocks the
// caller: when the queue is full the snapshot is dropped.
func (h *Hub) Publish(snap game.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("failed to encode snapshot: " + err.Error())
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("spectator queue full, snapshot dropped")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and attaches a new spectator.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed: " + err.Error())
		return
	}
	client := NewClient(h, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}

// Handler serves spectators at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	return mux
}
