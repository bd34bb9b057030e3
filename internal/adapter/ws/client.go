package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 64
)

// Client is one live websocket connection. Browser tabs and print clients
// share the same type; a print client is just a connection that sent the
// registerPrintClient handshake.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	log  *zap.Logger

	mu      sync.Mutex
	sendCh  chan []byte
	closed  bool
	printer atomic.Bool
}

func newClient(hub *Hub, conn *websocket.Conn, log *zap.Logger) *Client {
	return &Client{
		id:     uuid.NewString(),
		hub:    hub,
		conn:   conn,
		log:    log,
		sendCh: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) isPrintClient() bool {
	return c.printer.Load()
}

// enqueue hands a pre-encoded message to the write pump. A full buffer
// means the client stopped reading; it gets dropped instead of blocking
// the broadcaster. The mutex serializes against closeSend so a late
// sender sees the closed flag instead of a closed channel.
func (c *Client) enqueue(msg []byte) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	select {
	case c.sendCh <- msg:
		c.mu.Unlock()
	default:
		c.mu.Unlock()
		c.log.Warn("client send buffer full, dropping connection")
		go c.hub.unregister(c)
	}
}

func (c *Client) send(event string, data any) {
	msg, err := encodeEvent(event, data)
	if err != nil {
		c.log.Error("encode client event", zap.String("event", event), zap.Error(err))
		return
	}
	c.enqueue(msg)
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.sendCh)
	}
}

type registerPrintClientPayload struct {
	Name string `json:"name"`
}

type printOrderPayload struct {
	OrderID string `json:"orderId"`
}

type printCompletePayload struct {
	OrderID string `json:"orderId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// readPump consumes inbound messages until the connection dies. Unknown
// message types are ignored so older clients stay compatible.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var env eventEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Warn("malformed websocket message", zap.Error(err))
			continue
		}

		switch env.Type {
		case "registerPrintClient":
			var payload registerPrintClientPayload
			_ = json.Unmarshal(env.Data, &payload)
			c.printer.Store(true)
			c.log.Info("print client registered",
				zap.String("clientId", c.id), zap.String("name", payload.Name))
			c.send("printClientRegistered", map[string]string{"clientId": c.id, "name": payload.Name})

		case "printOrder":
			var payload printOrderPayload
			if err := json.Unmarshal(env.Data, &payload); err != nil || payload.OrderID == "" {
				c.send("printError", map[string]string{"message": "missing orderId"})
				continue
			}
			c.hub.dispatchPrint(c, payload.OrderID)

		case "printComplete":
			var payload printCompletePayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				continue
			}
			c.hub.Broadcast("printNotification", payload)

		default:
			c.log.Debug("ignoring websocket message", zap.String("type", env.Type))
		}
	}
}

// writePump pushes queued messages out and keeps the connection alive with
// pings. One writer goroutine per connection, the only place that writes.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.sendCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
