package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"notcoderguy/spotify-svg/internal/spotify"
)

// Server is the main application orchestrator.
type Server struct {
	addr       string
	httpServer *http.Server
	hub        *Hub
	poller     *Poller
	svgHandler *SVGHandler
	upgrader   websocket.Upgrader
}

// New creates a fully configured server.
func New(addr string, allowedOrigins []string, client *spotify.Client, svgHandler *SVGHandler) *Server {
	hub := NewHub()
	poller := NewPoller(client, hub)

	originChecker := func(origin string) bool {
		if len(allowedOrigins) == 0 {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == origin {
				return true
			}
		}
		return false
	}

	return &Server{
		addr:       addr,
		hub:        hub,
		poller:     poller,
		svgHandler: svgHandler,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if !originChecker(origin) {
					logrus.WithField("origin", origin).Warn("origin not allowed, rejecting feed connection")
					return false
				}
				return true
			},
		},
	}
}

// Run starts the server and its components and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ws", s.handleFeed)
	// Any other path renders the SVG card, matching the original catch-all
	// route behavior.
	mux.Handle("/", s.svgHandler)

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.hub.Run(ctx)
	}()

	go func() {
		defer wg.Done()
		s.poller.Run(ctx)
	}()

	go func() {
		<-ctx.Done()
		logrus.Info("shutdown signal received, stopping http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("http server shutdown error")
		}
	}()

	logrus.WithField("addr", s.addr).Info("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	wg.Wait()

	return nil
}

// handleFeed upgrades the connection and attaches it to the hub.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Debug("websocket upgrade failed")
		return
	}

	c := newClient(s.hub, conn)
	s.hub.register <- c

	// Send the last known state immediately upon connection.
	s.poller.SendLastState(c)

	go c.writePump()
	c.readPump()
}

// healthHandler responds to Docker health checks.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logrus.WithError(err).Warn("failed to write health check response")
	}
}
