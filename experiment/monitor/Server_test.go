package monitor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment"
)

// dial connects a websocket client to a Server's event handler.
func dial(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(s.serveEvents))
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("could not dial server: %v", err)
	}

	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

// TestServerPublishesEvents ensures that published events arrive at a
// connected client as JSON.
func TestServerPublishesEvents(t *testing.T) {
	s := NewServer(":0")
	conn, cleanup := dial(t, s)
	defer cleanup()

	sent := experiment.Event{
		Type:         experiment.EpisodeEnd,
		Observations: 1500,
		Episode:      12,
		Return:       -3.5,
		Epsilon:      0.25,
		LearningRate: 0.4,
	}
	s.Publish(sent)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got experiment.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("could not read published event: %v", err)
	}

	if got != sent {
		t.Errorf("got event %+v, expected %+v", got, sent)
	}
}

// TestServerDropsFailedClients ensures that clients whose connections
// have failed are removed rather than stalling later publishes.
func TestServerDropsFailedClients(t *testing.T) {
	s := NewServer(":0")
	conn, cleanup := dial(t, s)
	defer cleanup()

	conn.Close()

	event := experiment.Event{Type: experiment.EvalRound}
	for i := 0; i < 100; i++ {
		s.Publish(event)

		s.mu.Lock()
		remaining := len(s.conns)
		s.mu.Unlock()
		if remaining == 0 {
			return
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Error("failed client was never dropped")
}
