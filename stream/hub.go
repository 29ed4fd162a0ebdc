// Package stream pushes simulation snapshots to websocket viewers
package stream

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/particle-sandbox/simulation"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

var ErrHubClosed = errors.New("hub closed")


// Frame is the JSON message sent for every broadcast snapshot
type Frame struct {
	Type string `json:"type"`
	simulation.Snapshot
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans snapshots out to connected viewers
// Slow viewers lose frames rather than stalling the simulation
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	logger  *log.Logger

	upgrader websocket.Upgrader

	sent    uint64
	dropped uint64
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithAllowedOrigins accepts cross-origin viewers from the listed origins
// Origins are compared as scheme://host[:port]; "*" accepts any origin
func WithAllowedOrigins(origins ...string) HubOption {
	return func(h *Hub) {
		allowed := make(map[string]bool, len(origins))
		for _, o := range origins {
			if o = strings.TrimSpace(o); o != "" {
				allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = true
			}
		}
		if len(allowed) == 0 {
			return
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return allowed["*"] || originAllowed(r, allowed)
		}
	}
}

// originAllowed passes requests without an Origin header, same-host origins and listed origins
func originAllowed(r *http.Request, allowed map[string]bool) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
}

// NewHub creates an empty hub; nil logger uses log.Default
// Without WithAllowedOrigins only same-origin browsers may connect
func NewHub(logger *log.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	h := &Hub{
		clients:  make(map[*client]struct{}),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and registers the viewer
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("stream: upgrade %s: %v", r.RemoteAddr, err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), id: r.RemoteAddr}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Printf("stream: viewer %s connected", c.id)

	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards viewer input and detects disconnects
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("stream: viewer %s read: %v", c.id, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

// remove unregisters c and closes its send queue once
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Printf("stream: viewer %s disconnected", c.id)
}

// Broadcast encodes snap once and queues it for every viewer
func (h *Hub) Broadcast(snap simulation.Snapshot) error {
	msg, err := json.Marshal(Frame{Type: "frame", Snapshot: snap})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
			h.sent++
		default:
			h.dropped++
		}
	}
	return nil
}

// Clients returns the number of connected viewers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stats reports queued and dropped frame counts across all viewers
func (h *Hub) Stats() (sent, dropped uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sent, h.dropped
}

// Close disconnects every viewer and rejects further connections
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
