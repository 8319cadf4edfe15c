package socket

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type client struct {
	conn         *websocket.Conn
	organization string
}

// Hub tracks connected dashboard clients, keyed by user email. Each client
// is tagged with its organization so approval events reach everyone in it.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

func (h *Hub) Register(email, organization string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[email] = &client{conn: conn, organization: organization}
	zap.L().Info("websocket client registered", zap.String("email", email))
}

func (h *Hub) Unregister(email string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[email]; ok {
		delete(h.clients, email)
		zap.L().Info("websocket client unregistered", zap.String("email", email))
	}
}

// Send delivers a message to one client. A missing client is not an error;
// the user is simply offline.
func (h *Hub) Send(email string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[email]
	if !ok {
		return nil
	}
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// SendToOrganization delivers a message to every connected client of an
// organization. Per-connection write failures are logged and skipped.
func (h *Hub) SendToOrganization(organization string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for email, c := range h.clients {
		if c.organization != organization {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Warn("websocket send failed", zap.String("email", email), zap.Error(err))
		}
	}
}
