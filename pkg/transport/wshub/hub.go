// Package wshub broadcasts analysis results to websocket subscribers.
package wshub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/gorilla/websocket"

	"github.com/brainflux/eeg-stream/pkg/eeg"
)

const writeTimeout = 200 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans each result out to every connected client. A client that
// cannot keep up with the write deadline is dropped.
type Hub struct {
	logger logging.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func New(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Hub{
		logger: logger.WithFields(logging.Fields{"component": "wshub"}),
		conns:  make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	clients := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	return clients
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Name implements the session publisher interface.
func (h *Hub) Name() string { return "websocket" }

// Publish serializes the result to JSON and broadcasts it.
func (h *Hub) Publish(ctx context.Context, result *eeg.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eeg.NewError(eeg.ErrCodeBadPacket, "encoding analysis result", err)
	}
	h.broadcastText(payload)
	return nil
}

func (h *Hub) broadcastText(b []byte) {
	clients := h.snapshot()
	for _, c := range clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = c.Close()
			h.remove(c)
			h.logger.Debug("Dropped slow websocket client", logging.Fields{
				"remote": c.RemoteAddr().String(),
			})
		}
	}
}

// ServeHTTP upgrades the request and keeps the connection registered
// until the client goes away. Incoming messages are drained and
// ignored: the stream is one-way.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.add(conn)
	h.logger.Debug("Websocket client connected", logging.Fields{
		"remote": conn.RemoteAddr().String(),
	})
	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	for _, c := range h.snapshot() {
		_ = c.Close()
		h.remove(c)
	}
}
