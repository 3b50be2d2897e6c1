package sync

import (
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans add-on index events out to every attached listener: ops tools
// tailing the TCP feed and devhub pages on WebSockets. A listener that fails
// a write is dropped on the spot.
type Hub struct {
	mu  sync.Mutex
	tcp map[net.Conn]struct{}
	ws  map[*websocket.Conn]struct{}
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub() *Hub {
	return &Hub{
		tcp: make(map[net.Conn]struct{}),
		ws:  make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Attach(conn net.Conn) {
	h.mu.Lock()
	h.tcp[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Detach(conn net.Conn) {
	h.mu.Lock()
	delete(h.tcp, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) AttachWS(conn *websocket.Conn) {
	h.mu.Lock()
	h.ws[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) DetachWS(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.ws, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Publish broadcasts one add-on event to every listener. TCP listeners get
// newline-delimited JSON, WebSocket listeners one text frame per event.
func (h *Hub) Publish(ev AddonEvent) {
	line, err := json.Marshal(ev)
	if err != nil {
		return
	}
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.tcp {
		_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if _, err := conn.Write(line); err != nil {
			_ = conn.Close()
			delete(h.tcp, conn)
		}
	}
	for conn := range h.ws {
		if err := conn.WriteMessage(websocket.TextMessage, line); err != nil {
			_ = conn.Close()
			delete(h.ws, conn)
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.tcp),
		WSClients:  len(h.ws),
	}
}

// Welcome greets a TCP listener with the feed hello line.
func (h *Hub) Welcome(conn net.Conn) {
	b, err := json.Marshal(h.hello())
	if err != nil {
		return
	}
	_, _ = conn.Write(append(b, '\n'))
}

func (h *Hub) hello() HelloEvent {
	s := h.Stats()
	return HelloEvent{
		Type:      "sync.hello",
		Feed:      "addon.indexed",
		Listeners: s.TCPClients + s.WSClients,
	}
}
