package api

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/contrib/websocket"
)

// conn is the part of a websocket connection the hub writes to.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is a connected display surface. Writes are serialized because the
// hub and the connection handler both send to it.
type Client struct {
	ID   string
	conn conn
	mu   sync.Mutex
}

// NewClient wraps c.
func NewClient(id string, c conn) *Client {
	return &Client{ID: id, conn: c}
}

// Send writes one text frame.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// SendJSON encodes v and writes it.
func (c *Client) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Send(data)
}

// Hub fans state updates out to every connected client.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan any
	done       chan struct{}
	mu         sync.RWMutex
	logger     types.Logger
}

// NewHub creates a new Hub.
func NewHub(logger types.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan any, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Hub shutting down", "clients", h.ClientCount())
			h.closeAllClients()
			close(h.done)
			return
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case msg := <-h.broadcast:
			h.handleBroadcast(msg)
		}
	}
}

// Wait blocks until the hub has stopped.
func (h *Hub) Wait() {
	<-h.done
}

// Register adds a client. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues payload for every client. It is dropped when the hub has
// stopped or the queue is full.
func (h *Hub) Broadcast(payload any) {
	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		h.logger.Warn("Broadcast queue full, dropping update")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		_ = client.conn.Close()
	}
	h.clients = make(map[string]*Client)
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("Client registered", "client", client.ID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		h.logger.Debug("Client unregistered", "client", client.ID)
	}
}

func (h *Hub) handleBroadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if err := client.Send(data); err != nil {
			h.logger.Warn("Failed to send to client", "client", client.ID, "error", err)
		}
	}
}
