package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4 * 1024
	sendBuffer     = 256
)

var errHubStopped = errors.New("hub stopped")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is a server to client WebSocket message.
type Message struct {
	Type   string      `json:"type"`
	GameID string      `json:"gameId,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// ClientMessage is a client to server WebSocket message. dragMove carries the pointer
// position; dragCancel has no payload.
type ClientMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Client represents a connected WebSocket client watching one game.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	gameID string
	hub    *Hub
}

// Hub maintains the set of active clients and fans game updates out to them.
type Hub struct {
	clients    map[*Client]bool
	games      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	handle     func(c *Client, msg ClientMessage)
	log        logrus.FieldLogger
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub. A nil logger discards output.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		games:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.WithField("component", "hub"),
	}
}

// OnMessage sets the function that handles messages read from clients. It must be
// called before clients connect.
func (h *Hub) OnMessage(fn func(c *Client, msg ClientMessage)) {
	h.handle = fn
}

// Run starts the hub and returns when ctx is done, closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if _, exists := h.games[client.gameID]; !exists {
				h.games[client.gameID] = make(map[*Client]bool)
			}
			h.games[client.gameID][client] = true
			h.mu.Unlock()
			h.log.WithField("game_id", client.gameID).Debug("client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			h.log.WithField("game_id", client.gameID).Debug("client disconnected")

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if watchers := h.games[client.gameID]; watchers != nil {
		delete(watchers, client)
		if len(watchers) == 0 {
			delete(h.games, client.gameID)
		}
	}
}

// ClientCount reports how many clients watch a game.
func (h *Hub) ClientCount(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// BroadcastToGame sends a message to every client watching gameID. It never blocks:
// a client whose buffer is full misses the message.
func (h *Hub) BroadcastToGame(gameID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.WithError(err).Error("marshal broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.games[gameID] {
		select {
		case client.send <- data:
		default:
			h.log.WithField("game_id", gameID).Warn("client buffer full, dropping message")
		}
	}
}

// BroadcastGameUpdate pushes a fresh view of a game to its watchers.
func (h *Hub) BroadcastGameUpdate(v GameView) {
	h.BroadcastToGame(v.ID, Message{Type: "gameUpdate", GameID: v.ID, Data: v})
}

// Attach upgrades the request and registers a client for gameID. The hub must be
// running. Messages in initial are queued before anything broadcast later.
func (h *Hub) Attach(w http.ResponseWriter, r *http.Request, gameID string, initial ...Message) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		gameID: gameID,
		hub:    h,
	}
	for _, msg := range initial {
		data, err := json.Marshal(msg)
		if err != nil {
			conn.Close()
			return err
		}
		client.send <- data
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return errHubStopped
	}

	go client.readPump()
	go client.writePump()
	return nil
}

// GameID is the game the client watches.
func (c *Client) GameID() string {
	return c.gameID
}

// readPump pumps messages from the WebSocket connection to the hub's handler
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Warn("websocket read")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.log.WithError(err).Debug("bad client message")
			continue
		}
		if c.hub.handle != nil {
			c.hub.handle(c, msg)
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection. Queued messages
// are sent in one frame, separated by newlines.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
