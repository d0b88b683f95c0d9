package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second

	// sendQueueSize bounds how many undelivered updates a slow client may
	// accumulate before the hub starts dropping them.
	sendQueueSize = 8
)

// client is a middleman between a websocket connection and the hub.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan State
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn) *client {
	return &client{
		hub:  hub,
		conn: conn,
		send: make(chan State, sendQueueSize),
	}
}

// close is a thread-safe method to clean up the client's resources. It
// ensures the unregister and connection close operations happen exactly once.
func (c *client) close() {
	c.closeOnce.Do(func() {
		logrus.WithField("remoteAddr", c.conn.RemoteAddr()).Debug("closing feed client connection")
		c.hub.unregister <- c
		if err := c.conn.Close(); err != nil {
			// Expected when the other end has already hung up.
			logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Debug("error while closing feed client connection")
		}
	})
}

// readPump detects a dead connection via read deadlines. Inbound messages
// carry no meaning beyond acting as a heartbeat.
func (c *client) readPump() {
	defer c.close()

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Warn("failed to set initial read deadline")
		return
	}

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Debug("feed client read error, disconnecting")
			break
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Warn("failed to reset read deadline")
			break
		}
	}
}

// writePump pumps state updates from the hub to the websocket connection.
func (c *client) writePump() {
	defer c.close()

	for state := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Warn("failed to set write deadline")
			return
		}
		if err := c.conn.WriteJSON(state); err != nil {
			logrus.WithError(err).WithField("remoteAddr", c.conn.RemoteAddr()).Debug("feed client write error")
			return
		}
	}
}
