// Package websocket carries live route narration to connected clients.
// Campus displays and browser clients subscribe once and receive every
// narrated route as it is computed.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"campusnav-backend/pkg/observability"
)

// Hub maintains the active narration connections and broadcasts every
// narrated route to all of them
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	// Channels for client management
	register   chan *Client
	unregister chan *Client

	// Message broadcasting
	broadcast chan *NarrationMessage

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	metrics *observability.Collector
}

// NarrationMessage is the wire format for one narrated route
type NarrationMessage struct {
	Type         string   `json:"type"`
	Instructions []string `json:"instructions,omitempty"`
	Timestamp    int64    `json:"timestamp"`
}

// Message types sent to narration clients
const (
	MessageTypeConnected = "CONNECTION_ESTABLISHED"
	MessageTypeNarration = "ROUTE_NARRATED"
)

// NewHub creates a narration hub
func NewHub(metrics *observability.Collector, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 100),
		unregister: make(chan *Client, 100),
		broadcast:  make(chan *NarrationMessage, 1000),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run starts the hub's main event loop
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("Narration hub shutting down")
			h.closeAllClients()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToAll(message)

		case <-ticker.C:
			h.performHealthCheck()
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.logger.Info("Stopping narration hub")
	h.cancel()
}

// BroadcastInstructions queues one narrated route for all connected clients
func (h *Hub) BroadcastInstructions(instructions []string) error {
	message := &NarrationMessage{
		Type:         MessageTypeNarration,
		Instructions: instructions,
		Timestamp:    time.Now().Unix(),
	}

	select {
	case h.broadcast <- message:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("narration channel full, message dropped")
	}
}

// registerClient adds a new client connection
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.metrics.NarrationClients.Inc()

	h.logger.Info("Narration client connected",
		zap.String("connectionID", client.id),
		zap.Int("clients", count),
	)
}

// unregisterClient removes a client connection
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	h.metrics.NarrationClients.Dec()

	h.logger.Info("Narration client disconnected",
		zap.String("connectionID", client.id),
		zap.Int("clients", len(h.clients)),
	)
}

// broadcastToAll fans one message out to every connected client
func (h *Hub) broadcastToAll(message *NarrationMessage) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		h.logger.Debug("No narration clients connected",
			zap.String("messageType", message.Type))
		return
	}

	// Marshal once for all clients
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Failed to marshal narration message",
			zap.Error(err),
			zap.String("messageType", message.Type))
		return
	}

	successCount := 0
	failCount := 0

	for _, client := range clients {
		select {
		case client.send <- data:
			successCount++
		default:
			// Client's send channel is full, drop the connection
			failCount++
			h.logger.Warn("Closing slow narration client",
				zap.String("connectionID", client.id))

			go func(c *Client) {
				c.hub.unregister <- c
				c.conn.Close()
			}(client)
		}
	}

	h.logger.Debug("Narration broadcast complete",
		zap.String("messageType", message.Type),
		zap.Int("success", successCount),
		zap.Int("failed", failCount),
	)
}

// performHealthCheck pings all connections to check if they're alive
func (h *Hub) performHealthCheck() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- []byte(`{"type":"ping"}`):
		default:
			h.logger.Warn("Failed to ping narration client",
				zap.String("connectionID", client.id))
		}
	}

	h.logger.Debug("Health check performed", zap.Int("clients", len(h.clients)))
}

// closeAllClients closes all active connections during shutdown
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		client.conn.Close()
		delete(h.clients, client)
		h.metrics.NarrationClients.Dec()
	}

	h.logger.Info("All narration clients closed")
}

// ClientCount returns the number of connected narration clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
