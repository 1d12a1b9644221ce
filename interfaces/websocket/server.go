package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// HandlerConfig holds upgrade settings for the narration endpoint
type HandlerConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
	MaxClients      int
}

// DefaultHandlerConfig returns the default upgrade settings
func DefaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Narration is a read-only feed of public campus data, any
			// origin may subscribe
			return true
		},
		MaxClients: 256,
	}
}

// Handler upgrades HTTP requests into narration connections. It mounts on
// the main router; the hub's Run loop must already be started.
type Handler struct {
	hub        *Hub
	upgrader   websocket.Upgrader
	maxClients int
	logger     *zap.Logger
}

// NewHandler creates the narration endpoint handler
func NewHandler(hub *Hub, config *HandlerConfig, logger *zap.Logger) *Handler {
	if config == nil {
		config = DefaultHandlerConfig()
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		maxClients: config.MaxClients,
		logger:     logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.hub.ClientCount() >= h.maxClients {
		h.logger.Warn("Narration client limit reached",
			zap.Int("clients", h.hub.ClientCount()),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		http.Error(w, "Too many narration clients", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Error("Failed to upgrade connection",
			zap.Error(err),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		return
	}

	client := NewClient(h.hub, conn, h.logger)
	client.Start()

	h.logger.Info("Narration connection established",
		zap.String("connectionID", client.ID()),
		zap.String("remoteAddr", r.RemoteAddr),
	)
}
