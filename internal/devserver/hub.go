package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/laiweb/pkg/runtime"
)

// Hub manages websocket connections, one session per connection.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// resolve picks the component for a request.
	resolve func(r *http.Request) (*runtime.Definition, error)
	opts    SessionOptions
}

// NewHub creates a hub that mounts the component resolve returns for each
// connection.
func NewHub(resolve func(r *http.Request) (*runtime.Definition, error), opts SessionOptions) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
		logger:  logger,
		resolve: resolve,
		opts:    opts,
	}
}

// HandleWebSocket upgrades the connection, mounts a session and serves
// events until the client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	def, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	defer h.remove(conn)

	session, err := NewSession(ctx, def, h.opts)
	if err != nil {
		h.logger.Error("devserver: mount failed", "component", def.ComponentName(), "error", err)
		h.send(conn, ServerMessage{Type: MessageError, Error: err.Error()})
		return
	}
	defer session.Close()

	h.logger.Debug("devserver: session started", "component", def.ComponentName())
	h.render(ctx, conn, session)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MessageEvent {
			h.send(conn, ServerMessage{Type: MessageError, Error: "invalid message"})
			continue
		}
		if err := session.Dispatch(ctx, msg.ID, msg.Event, msg.Value); err != nil {
			h.send(conn, ServerMessage{Type: MessageError, Error: err.Error()})
			continue
		}
		h.render(ctx, conn, session)
	}
}

func (h *Hub) render(ctx context.Context, conn *websocket.Conn, s *Session) {
	msg, err := s.Snapshot(ctx)
	if err != nil {
		msg = ServerMessage{Type: MessageError, Error: err.Error()}
	}
	h.send(conn, msg)
}

// send writes msg to conn. Only the connection's own goroutine writes.
func (h *Hub) send(conn *websocket.Conn, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("devserver: write failed", "error", err)
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
