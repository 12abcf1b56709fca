// Package live broadcasts catalog and watchlist events to connected clients
// over both a line-delimited TCP feed and WebSocket. The recommendation core
// never writes to the hub; shells publish after the fact.
package live

import (
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

// Hub fans events out to every connected client. Clients that fail a write
// are dropped on the spot; slow consumers never stall the publisher for more
// than the write timeout.
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

func (h *Hub) Add(conn net.Conn) {
	h.mu.Lock()
	h.tcp[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.tcp, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) AddWS(conn *websocket.Conn) {
	h.mu.Lock()
	h.ws[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) RemoveWS(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.ws, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// BroadcastJSON marshals v once and writes it, newline-terminated, to every
// client on both transports.
func (h *Hub) BroadcastJSON(v any) {
	line, err := json.Marshal(v)
	if err != nil {
		return
	}
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.tcp {
		if !writeTCP(conn, line) {
			_ = conn.Close()
			delete(h.tcp, conn)
		}
	}
	for conn := range h.ws {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, line); err != nil {
			_ = conn.Close()
			delete(h.ws, conn)
		}
	}
}

func writeTCP(conn net.Conn, line []byte) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := conn.Write(line)
	return err == nil
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tcp)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{TCPClients: len(h.tcp), WSClients: len(h.ws)}
}

// Welcome greets a freshly accepted TCP client before it joins broadcasts.
func (h *Hub) Welcome(conn net.Conn) {
	msg, err := json.Marshal(map[string]any{
		"type":    "welcome",
		"clients": h.Count(),
	})
	if err != nil {
		return
	}
	_ = writeTCP(conn, append(msg, '\n'))
}
