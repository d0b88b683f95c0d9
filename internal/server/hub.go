package server

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub manages the set of active feed clients and broadcasts state updates.
type Hub struct {
	clients    map[*client]struct{}
	mu         sync.RWMutex
	register   chan *client
	unregister chan *client
	broadcast  chan State
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan State),
	}
}

// Run starts the hub's event loop. It must be run in a separate goroutine.
func (h *Hub) Run(ctx context.Context) {
	logrus.Info("hub started")
	defer logrus.Info("hub stopped")

	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			logrus.WithField("remoteAddr", c.conn.RemoteAddr()).Debug("feed client registered")
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			logrus.WithField("remoteAddr", c.conn.RemoteAddr()).Debug("feed client unregistered")
		case state := <-h.broadcast:
			h.broadcastState(state)
		}
	}
}

// Broadcast sends a state update to all connected clients.
func (h *Hub) Broadcast(state State) {
	h.broadcast <- state
}

// broadcastState fans the update out to every client's send queue. A client
// that cannot keep up is skipped rather than allowed to stall the hub.
func (h *Hub) broadcastState(state State) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- state:
		default:
			logrus.WithField("remoteAddr", c.conn.RemoteAddr()).Warn("feed client send queue full, dropping update")
		}
	}
}

// closeAllClients closes all active client connections during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		if err := c.conn.Close(); err != nil {
			logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Debug("error closing feed client during shutdown")
		}
	}
}
