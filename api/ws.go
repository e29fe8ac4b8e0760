package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/jacentio/studiodesk/store"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsSendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// changeEvent is what websocket clients receive for every store write.
type changeEvent struct {
	Type   string       `json:"type"`
	Change store.Change `json:"change"`
}

// Conn is one websocket subscriber.
type Conn struct {
	send   chan []byte
	hub    *Hub
	mu     sync.Mutex
	closed bool
}

// Close unregisters the connection and ends its write loop.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.hub.unregister(c)
}

// Hub fans store changes out to websocket subscribers. Slow subscribers miss
// messages rather than block writers.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*Conn]struct{})}
}

// Register adds a subscriber with a buffered send queue.
func (h *Hub) Register() *Conn {
	c := &Conn{send: make(chan []byte, wsSendBuffer), hub: h}
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) snapshot() []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	return conns
}

// Broadcast sends payload as JSON to every subscriber.
func (h *Hub) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, c := range h.snapshot() {
		c.mu.Lock()
		if !c.closed {
			select {
			case c.send <- data:
			default:
			}
		}
		c.mu.Unlock()
	}
}

// CloseAll disconnects every subscriber.
func (h *Hub) CloseAll() {
	for _, c := range h.snapshot() {
		c.Close()
	}
}

// Count returns the number of subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Upgrade serves the change feed.
func (h *Hub) Upgrade(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Debug("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		sub := h.Register()
		defer sub.Close()

		go writePump(sub, conn)
		readPump(conn)
	}
}

func writePump(c *Conn, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and returns when the connection drops.
func readPump(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
