package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/launchdash/launchdash/server/internal/callback"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// maxMessageSize bounds one inbound callback request.
	maxMessageSize = 64 << 10
)

// Event names.
const (
	EventSession  = "session"
	EventCallback = "callback"
	EventError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Allow all origins; callers should apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Dispatcher runs one callback request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req callback.Request) (callback.Response, error)
}

// Request is one inbound message.
type Request struct {
	ID string `json:"id"`
	callback.Request
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string             `json:"event"`
	ID    string             `json:"id,omitempty"`
	Data  *callback.Response `json:"data,omitempty"`
	Code  int                `json:"code,omitempty"`
	Error string             `json:"error,omitempty"`
}

// Hub tracks connected clients and answers their callback requests.
type Hub struct {
	d Dispatcher

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// New creates a Hub that dispatches requests to d.
func New(d Dispatcher) *Hub {
	return &Hub{
		d:       d,
		clients: make(map[*client]struct{}),
	}
}

// Run blocks until ctx is cancelled, then closes all active connections.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client
// until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		id:   sessionID(),
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	h.register(c)
	defer h.unregister(c)
	slog.Debug("ws client connected", "session", c.id, "remote", r.RemoteAddr)

	c.reply(Message{Event: EventSession, ID: c.id})

	go c.writePump()
	h.readPump(r.Context(), c)
	slog.Debug("ws client disconnected", "session", c.id)
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func sessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

// handle dispatches one raw request and returns the reply.
func (h *Hub) handle(ctx context.Context, raw []byte) Message {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Message{Event: EventError, Code: http.StatusBadRequest, Error: "invalid message: " + err.Error()}
	}
	resp, err := h.d.Dispatch(ctx, req.Request)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, callback.ErrBadRequest) {
			code = http.StatusBadRequest
		} else {
			slog.Warn("ws callback failed", "output", req.Output, "err", err)
		}
		return Message{Event: EventError, ID: req.ID, Code: code, Error: err.Error()}
	}
	return Message{Event: EventCallback, ID: req.ID, Data: &resp}
}

// readPump reads requests until the connection closes. Requests from one
// client are handled in arrival order.
func (h *Hub) readPump(ctx context.Context, c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if !c.reply(h.handle(ctx, raw)) {
			return
		}
	}
}

// reply queues msg for the write pump. It reports false once the client is
// closed or its buffer is full, in which case the client is closed.
func (c *client) reply(msg Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("ws encode failed", "session", c.id, "err", err)
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		// Outgoing buffer is full; disconnect the client.
		c.closed = true
		close(c.send)
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
