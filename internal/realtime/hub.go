package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// BoardEvent is the payload broadcast to every connected client after
// a board mutation. Clients are expected to refetch what they need.
type BoardEvent struct {
	Action string `json:"action"`
	TaskID string `json:"taskId,omitempty"`
}

// MetricsSink receives broadcast counters from the hub
type MetricsSink interface {
	RecordBroadcast()
	RecordBroadcastDrop()
	SetWSClients(n int)
}

// Hub fans board events out to websocket clients. It must be started
// with Start before the first Broadcast; broadcasting on an unstarted
// hub panics so a wiring mistake surfaces immediately instead of
// silently swallowing events.
type Hub struct {
	logger  *zap.Logger
	metrics MetricsSink

	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	mu      sync.Mutex
	started bool

	// optional cross-instance bridge
	redis   *redis.Client
	channel string
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an unstarted hub. Pass a nil redis client to run
// single-instance.
func NewHub(logger *zap.Logger, metrics MetricsSink, redisClient *redis.Client, channel string) *Hub {
	return &Hub{
		logger:     logger,
		metrics:    metrics,
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		redis:      redisClient,
		channel:    channel,
	}
}

// Start launches the fan-out loop and, when Redis is configured, the
// cross-instance subscription. Calling Start twice panics.
func (h *Hub) Start(ctx context.Context) {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		panic("realtime: hub started twice")
	}
	h.started = true
	h.mu.Unlock()

	go h.run(ctx)
	if h.redis != nil {
		go h.bridge(ctx)
	}
}

// Broadcast queues a board event for delivery to every connected
// client. Panics if the hub was never started.
func (h *Hub) Broadcast(event BoardEvent) {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		panic("realtime: Broadcast called before Start")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal board event", zap.Error(err))
		return
	}

	if h.redis != nil {
		// The bridge echoes the event back to this instance too, so
		// publishing is the only delivery path when Redis is on.
		if err := h.redis.Publish(context.Background(), h.channel, payload).Err(); err != nil {
			h.logger.Warn("redis publish failed, delivering locally", zap.Error(err))
			h.broadcast <- payload
		}
		return
	}

	h.broadcast <- payload
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.metrics.SetWSClients(len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.metrics.SetWSClients(len(h.clients))
			}
		case payload := <-h.broadcast:
			h.metrics.RecordBroadcast()
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Slow client, drop it rather than block the loop.
					h.metrics.RecordBroadcastDrop()
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.metrics.SetWSClients(len(h.clients))
		}
	}
}

// bridge forwards events published on the Redis channel into the
// local fan-out loop.
func (h *Hub) bridge(ctx context.Context) {
	sub := h.redis.Subscribe(ctx, h.channel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast <- []byte(msg.Payload)
		}
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and
// registers it with the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames, the stream is server to client
// only, and tears the client down when the peer goes away.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
