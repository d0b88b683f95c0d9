package server

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"notcoderguy/spotify-svg/internal/spotify"
)

const pollInterval = 3 * time.Second

// Poller periodically fetches the upstream now-playing payload and pushes
// changes to the hub.
type Poller struct {
	client    *spotify.Client
	hub       *Hub
	lastState *spotify.NowPlaying
	mu        sync.RWMutex
}

// NewPoller creates a new Poller.
func NewPoller(client *spotify.Client, hub *Hub) *Poller {
	return &Poller{
		client: client,
		hub:    hub,
	}
}

// Run starts the polling loop. It must be run in a separate goroutine.
func (p *Poller) Run(ctx context.Context) {
	logrus.Info("poller started")
	defer logrus.Info("poller stopped")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.UpdateState(ctx)
		}
	}
}

// UpdateState fetches the latest payload, compares it to the previous one,
// and broadcasts when something changed.
func (p *Poller) UpdateState(ctx context.Context) {
	current, err := p.client.NowPlaying(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch now-playing payload for feed")
		return
	}

	p.mu.Lock()
	changed := p.hasStateChanged(current)
	if changed {
		p.lastState = current
	}
	p.mu.Unlock()

	if changed {
		trackName := "nothing"
		if current.Item != nil {
			trackName = current.Item.Name
		}
		logrus.WithFields(logrus.Fields{
			"isPlaying": current.IsPlaying,
			"track":     trackName,
		}).Info("playback state changed, broadcasting update")
		p.hub.Broadcast(newState(current))
	}
}

// SendLastState sends the cached state to a single newly connected client.
func (p *Poller) SendLastState(c *client) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.lastState == nil {
		return
	}
	select {
	case c.send <- newState(p.lastState):
	default:
	}
}

// hasStateChanged compares the new payload against the cached one. It must
// be called with the mutex held.
func (p *Poller) hasStateChanged(current *spotify.NowPlaying) bool {
	if p.lastState == nil {
		return true
	}
	if p.lastState.IsPlaying != current.IsPlaying {
		return true
	}
	if (p.lastState.Item == nil) != (current.Item == nil) {
		return true
	}
	if p.lastState.Item != nil && current.Item != nil {
		if p.lastState.Item.ID != current.Item.ID || p.lastState.Item.Name != current.Item.Name {
			return true
		}
	}
	return false
}
