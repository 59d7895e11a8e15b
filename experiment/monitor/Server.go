// Package monitor streams the events of a running experiment to
// watching clients over websockets, so that training progress can be
// followed live from a browser or dashboard.
package monitor

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment"
)

// writeTimeout bounds how long a single event write to a client may
// take. Clients slower than this are dropped rather than allowed to
// stall the experiment.
const writeTimeout = time.Second

// Server publishes experiment events to every connected websocket
// client. It implements experiment.Publisher, so it can be registered
// directly with a Trainer.
type Server struct {
	server   *http.Server
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewServer returns a new Server which will listen on addr and accept
// websocket connections at /events once started.
func NewServer(addr string) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.serveEvents)
	s.server = &http.Server{Addr: addr, Handler: mux}

	return s
}

// Start begins serving websocket connections in a background
// goroutine.
func (s *Server) Start() {
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Printf("monitor: server stopped: %v", err)
		}
	}()
}

// Stop disconnects all clients and shuts the server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Publish sends an event to every connected client as JSON. Clients
// whose connections have failed are dropped.
func (s *Server) Publish(event experiment.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(s.conns, conn)
		}
	}
}

// serveEvents upgrades an incoming request to a websocket connection
// and registers it to receive published events.
func (s *Server) serveEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	s.mu.Unlock()
}
