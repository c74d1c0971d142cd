package activity

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer is the per-client queue of pending entries. A client that
// falls this far behind is dropped rather than allowed to block the feed.
const sendBuffer = 32

// client pairs a connection with its outbound queue. All writes to the
// connection happen on the client's write pump; gorilla/websocket allows
// only one concurrent writer.
type client struct {
	conn *websocket.Conn
	send chan Entry
}

// Hub pushes activity entries to connected dashboard clients over WebSocket
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]bool
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboards are served same-origin; the check stays permissive
			// because demo deployments run on arbitrary local ports.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and registers the client. The read loop
// only watches for the client going away; the dashboard never sends data.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Entry, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.writePump(c)
	go func() {
		defer h.drop(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// writePump drains the client's queue onto the connection. It is the only
// goroutine that writes to the connection; it exits when drop closes the
// queue.
func (h *Hub) writePump(c *client) {
	for entry := range c.send {
		if err := c.conn.WriteJSON(entry); err != nil {
			h.drop(c)
		}
	}
}

// Broadcast queues the entry for every connected client. Sends never
// block: a client with a full queue is dropped.
func (h *Hub) Broadcast(entry Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- entry:
		default:
			h.dropLocked(c)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// drop removes and closes one client
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

// dropLocked must be called with the hub mutex held. The queue is closed
// under the lock, so Broadcast can never send on a closed channel.
func (h *Hub) dropLocked(c *client) {
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
