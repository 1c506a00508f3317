package ws_session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/krishkpatil/getflix/internal/metrics"
	"github.com/krishkpatil/getflix/internal/model"
)

const (
	sendBuffer      = 256
	broadcastBuffer = 256
)

type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan []byte
	sessionID     model.SessionID
	participantID model.ParticipantID
}

type sessionEvent struct {
	sessionID model.SessionID
	payload   []byte
}

// Hub fans session events out to the websocket clients of that session.
// All membership changes go through Run.
type Hub struct {
	logger     *slog.Logger
	sessions   map[model.SessionID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan sessionEvent
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:     logger,
		sessions:   make(map[model.SessionID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan sessionEvent, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case ev := <-h.broadcast:
			h.broadcastToSession(ev.sessionID, ev.payload)
		}
	}
}

// Notify never blocks the caller: events are dropped when the hub lags behind.
func (h *Hub) Notify(sessionID model.SessionID, event model.SessionEvent) {
	metrics.SessionEvents.WithLabelValues(string(event.Type)).Inc()

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode session event", "error", err, "session", sessionID)
		return
	}

	select {
	case h.broadcast <- sessionEvent{sessionID: sessionID, payload: payload}:
	default:
		h.logger.Warn("dropping session event", "type", event.Type, "session", sessionID)
	}
}

// Clients reports how many connections listen on the session.
func (h *Hub) Clients(sessionID model.SessionID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.sessions[client.sessionID]; !exists {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true
	metrics.WebSocketConnections.Inc()

	h.logger.Info("client registered",
		"participant_id", client.participantID,
		"session", client.sessionID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.remove(client)

	h.logger.Info("client unregistered",
		"participant_id", client.participantID,
		"session", client.sessionID)
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	metrics.WebSocketConnections.Dec()
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}
}

func (h *Hub) broadcastToSession(sessionID model.SessionID, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.sessions[sessionID] {
		select {
		case client.send <- payload:
		default:
			h.remove(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.sessions {
		for client := range clients {
			h.remove(client)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
