package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// FrameType tags an event-stream message.
type FrameType string

const (
	FrameStateUpdate FrameType = "state_update"
	FrameAIAction    FrameType = "ai_action"
	FrameGameOver    FrameType = "game_over"
	FrameError       FrameType = "error"
)

// Frame is one event-stream message. Frames for a game are delivered in the
// order they were broadcast.
type Frame struct {
	Type   FrameType `json:"type"`
	GameID string    `json:"game_id"`
	Data   any       `json:"data,omitempty"`
}

// Hub fans event frames out to the WebSocket subscribers of each game.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*hubClient]struct{}
	logger  *log.Logger
}

type hubClient struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*hubClient]struct{}),
		logger:  logger.WithPrefix("hub"),
	}
}

// Attach registers a connection as a subscriber of one game and blocks until
// the peer disconnects. The server never reads application data from
// subscribers; the read loop only drains control frames.
func (h *Hub) Attach(gameID string, conn *websocket.Conn) {
	client := &hubClient{conn: conn}

	h.mu.Lock()
	if h.clients[gameID] == nil {
		h.clients[gameID] = make(map[*hubClient]struct{})
	}
	h.clients[gameID][client] = struct{}{}
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.detach(gameID, client)
	conn.Close()
}

func (h *Hub) detach(gameID string, client *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[gameID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, gameID)
		}
	}
}

// Broadcast sends one frame to every subscriber of a game. Connections that
// fail to accept the write are dropped.
func (h *Hub) Broadcast(gameID string, frameType FrameType, data any) {
	h.mu.Lock()
	targets := make([]*hubClient, 0, len(h.clients[gameID]))
	for client := range h.clients[gameID] {
		targets = append(targets, client)
	}
	h.mu.Unlock()

	frame := Frame{Type: frameType, GameID: gameID, Data: data}
	for _, client := range targets {
		client.mu.Lock()
		err := client.conn.WriteJSON(frame)
		client.mu.Unlock()
		if err != nil {
			h.logger.Debug("dropping subscriber", "game", gameID, "error", err)
			h.detach(gameID, client)
			client.conn.Close()
		}
	}
}

// SubscriberCount returns the number of subscribers for a game.
func (h *Hub) SubscriberCount(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[gameID])
}
