package notification

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/sportmeet/backend/internal/api/metrics"
	"github.com/sportmeet/backend/internal/core/domain"
)

const connectionBuffer = 64

// Hub is the in-process socket delivery channel. Each connected user owns one
// buffered channel; pushes are fire-and-forget and drop when the buffer is
// full or the user is not connected.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]chan domain.Notification
	log         zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[string]chan domain.Notification),
		log:         log,
	}
}

// Connect registers the account and returns its delivery channel. A second
// connection for the same account replaces the first; the old channel is
// closed so its reader unblocks.
func (h *Hub) Connect(accountID string) <-chan domain.Notification {
	ch := make(chan domain.Notification, connectionBuffer)

	h.mu.Lock()
	if old, ok := h.connections[accountID]; ok {
		close(old)
	}
	h.connections[accountID] = ch
	h.mu.Unlock()

	metrics.ConnectedUsers.Set(float64(h.size()))
	h.log.Debug().Str("account_id", accountID).Msg("socket connected")
	return ch
}

// Disconnect removes the account's channel. Safe to call after a replacement
// connection took over; only the current channel is closed.
func (h *Hub) Disconnect(accountID string, ch <-chan domain.Notification) {
	h.mu.Lock()
	if cur, ok := h.connections[accountID]; ok && cur == ch {
		delete(h.connections, accountID)
		close(cur)
	}
	h.mu.Unlock()

	metrics.ConnectedUsers.Set(float64(h.size()))
	h.log.Debug().Str("account_id", accountID).Msg("socket disconnected")
}

func (h *Hub) IsConnected(accountID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[accountID]
	return ok
}

// Push hands the notification to the recipient's connection. Returns false
// when the recipient is offline or its buffer is full; the payload is dropped.
func (h *Hub) Push(accountID string, n domain.Notification) bool {
	h.mu.RLock()
	ch, ok := h.connections[accountID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case ch <- n:
		return true
	default:
		h.log.Debug().Str("account_id", accountID).Msg("socket buffer full, notification dropped")
		return false
	}
}

func (h *Hub) size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
