// internal/httpapi/hub.go
package httpapi

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 8
	writeWait  = 5 * time.Second
)

// hub fans telemetry records out to websocket clients.
// A client whose buffer is full is dropped rather than slowing the bridge.
type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]chan []byte)}
}

func (h *hub) add(conn *websocket.Conn) {
	ch := make(chan []byte, sendBuffer)

	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for msg := range ch {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Reader drains control frames and notices close.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		conn.Close()
	}
}

func (h *hub) broadcast(msg []byte) {
	h.mu.Lock()
	var slow []*websocket.Conn
	for conn, ch := range h.clients {
		select {
		case ch <- msg:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range slow {
		h.remove(conn)
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
