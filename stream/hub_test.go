package stream

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/particle-sandbox/simulation"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 1 })

	snap := simulation.Snapshot{
		Step: 7,
		Time: 0.5,
		Particles: []simulation.ParticleState{
			{Position: vmath.V3F(1, 2, 3), Radius: 0.5, Color: vmath.V3F(0, 1, 0)},
		},
	}
	if err := hub.Broadcast(snap); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected frame, got %v", err)
	}
	var got Frame
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Expected JSON frame, got %v", err)
	}
	if got.Type != "frame" || got.Step != 7 || got.Time != 0.5 {
		t.Errorf("Unexpected frame header %+v", got)
	}
	if len(got.Particles) != 1 || got.Particles[0].Position != vmath.V3F(1, 2, 3) {
		t.Errorf("Expected one particle at (1,2,3), got %+v", got.Particles)
	}

	sent, dropped := hub.Stats()
	if sent != 1 || dropped != 0 {
		t.Errorf("Expected sent=1 dropped=0, got sent=%d dropped=%d", sent, dropped)
	}
}

func TestHubViewerDisconnect(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Clients() == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestHubClose(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 1 })

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("Expected no viewers after close, got %d", hub.Clients())
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected normal close, got %v", err)
	}

	if err := hub.Broadcast(simulation.Snapshot{}); !errors.Is(err, ErrHubClosed) {
		t.Errorf("Expected ErrHubClosed, got %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("Expected dial to a closed hub to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %v", resp)
	}
}

func TestHubDropsWhenQueueFull(t *testing.T) {
	hub := NewHub(quietLogger())
	c := &client{send: make(chan []byte, sendBuffer), id: "stalled"}
	hub.clients[c] = struct{}{}

	for i := 0; i < sendBuffer+3; i++ {
		if err := hub.Broadcast(simulation.Snapshot{Step: uint64(i)}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	sent, dropped := hub.Stats()
	if sent != sendBuffer || dropped != 3 {
		t.Errorf("Expected sent=%d dropped=3, got sent=%d dropped=%d", sendBuffer, sent, dropped)
	}
	if len(c.send) != sendBuffer {
		t.Errorf("Expected full queue, got %d", len(c.send))
	}

	hub.Close()
	if _, ok := <-c.send; !ok {
		t.Error("Expected queued frames to remain readable after close")
	}
}

func dialOrigin(srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	header.Set("Origin", origin)
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHubRejectsForeignOriginByDefault(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, resp, err := dialOrigin(srv, "http://viewer.example")
	if err == nil {
		conn.Close()
		t.Fatal("Expected foreign origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}

	conn, _, err = dialOrigin(srv, srv.URL)
	if err != nil {
		t.Fatalf("Expected same origin to connect, got %v", err)
	}
	conn.Close()
}

func TestHubAllowedOrigins(t *testing.T) {
	hub := NewHub(quietLogger(), WithAllowedOrigins(" http://Viewer.example/ ", ""))
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, _, err := dialOrigin(srv, "http://viewer.example")
	if err != nil {
		t.Fatalf("Expected listed origin to connect, got %v", err)
	}
	conn.Close()

	conn, resp, err := dialOrigin(srv, "http://other.example")
	if err == nil {
		conn.Close()
		t.Fatal("Expected unlisted origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}

	wild := NewHub(quietLogger(), WithAllowedOrigins("*"))
	wildSrv := httptest.NewServer(wild)
	defer wildSrv.Close()
	defer wild.Close()

	conn, _, err = dialOrigin(wildSrv, "http://other.example")
	if err != nil {
		t.Fatalf("Expected wildcard to accept any origin, got %v", err)
	}
	conn.Close()
}
