package live

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

const broadcastBuffer = 256

// Hub fans committed bin and collector changes out to every connected dashboard.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     common.GetLoggerWith(common.LoggerNameLiveHub),
	}
}

// Run owns the client set until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Dashboard connected", zap.String("viewer", client.Viewer), zap.Int("clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Dashboard disconnected", zap.String("viewer", client.Viewer), zap.Int("clients", total))

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer, drop it rather than stall everyone else
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("Dashboard buffer full, disconnecting", zap.String("viewer", client.Viewer))
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish implements waste.Notifier. It never blocks: when the hub is backed up the
// event is dropped.
func (h *Hub) Publish(event models.LiveEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal live event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Live event dropped, hub is backed up", zap.String("kind", string(event.Kind)))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
