package brackets

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed to browsers watching a tournament.
const (
	EventMatchUpdated      = "MATCH_UPDATED"
	EventScheduleGenerated = "SCHEDULE_GENERATED"
	EventBracketAdvanced   = "BRACKET_ADVANCED"
)

// Event is the wire shape broadcast to a tournament room.
type Event struct {
	Type         string      `json:"type"`
	TournamentID int         `json:"tournament_id"`
	Payload      interface{} `json:"payload,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Hub fans events out to websocket clients grouped by tournament.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu     sync.RWMutex
	rooms  map[int]map[*Client]bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.TournamentID]; !ok {
				h.rooms[client.TournamentID] = make(map[*Client]bool)
			}
			h.rooms[client.TournamentID][client] = true
			h.mu.Unlock()
			h.logger.Debug("ws client registered", slog.Int("tournament_id", client.TournamentID))

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.TournamentID]; ok {
				if _, ok := room[client]; ok {
					client.closeSend()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.TournamentID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("ws client unregistered", slog.Int("tournament_id", client.TournamentID))
		}
	}
}

// Broadcast sends an event to every client watching the tournament.
// Slow clients are skipped rather than blocking the hub.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws event marshal failed", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[event.TournamentID] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.Send <- data:
			default:
			}
		}
		client.mu.Unlock()
	}
}

// Client is one websocket connection subscribed to a tournament room.
type Client struct {
	Hub          *Hub
	Conn         *websocket.Conn
	Send         chan []byte
	TournamentID int

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, tournamentID int) *Client {
	return &Client{
		Hub:          hub,
		Conn:         conn,
		Send:         make(chan []byte, 16),
		TournamentID: tournamentID,
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
	c.mu.Unlock()
}

// ReadPump drains inbound frames (clients only listen) and keeps the
// connection alive via pong handling.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// WritePump pushes hub events to the connection and pings on idle.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
