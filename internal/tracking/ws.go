package tracking

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"ride-request-service/internal/events"
)

// defaultWriteWait bounds a single write to a dispatch client.
const defaultWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// safeConn wraps a websocket.Conn with a write mutex.
// gorilla/websocket allows one concurrent writer; this enforces that.
type safeConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *safeConn) writeJSON(v any, wait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

func (c *safeConn) close() { c.ws.Close() }

// Hub streams newly stored ride requests to connected dispatch clients.
type Hub struct {
	mu        sync.RWMutex
	conns     map[*safeConn]struct{}
	writeWait time.Duration
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*safeConn]struct{}), writeWait: defaultWriteWait}
}

// Routes returns a chi.Router for the /ws mount point.
func (h *Hub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ride-requests", h.HandleWS)
	return r
}

// HandleWS upgrades the connection and subscribes it to the feed until the
// client disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}
	conn := &safeConn{ws: ws}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	log.Printf("[ws] dispatch client connected")

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(conn)
	log.Printf("[ws] dispatch client disconnected")
}

// drop unsubscribes conn and closes it. Safe to call more than once.
func (h *Hub) drop(conn *safeConn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.close()
}

// Subscribers reports how many clients are connected.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Notify pushes ev to every connected client. A client that cannot take
// the write within the write deadline is dropped.
func (h *Hub) Notify(_ context.Context, ev events.RideRequestedEvent) error {
	h.mu.RLock()
	conns := make([]*safeConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeJSON(ev, h.writeWait); err != nil {
			log.Printf("[ws] write error, dropping client: %v", err)
			h.drop(c)
		}
	}
	return nil
}
