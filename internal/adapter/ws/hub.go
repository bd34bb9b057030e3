package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// IOrderLoader is the slice of the order workflow the print dispatch needs.
type IOrderLoader interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
}

const printLookupTimeout = 5 * time.Second

// Hub keeps the registry of live connections and fans domain events out to
// all of them. Enqueue order follows call order, so subscribers see events
// in the same order the mutations committed.
type Hub struct {
	log *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	orders  IOrderLoader
}

var _ interfaces.IEventBroadcaster = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:     log,
		clients: make(map[*Client]struct{}),
	}
}

// SetOrderLoader wires the order lookup used by print dispatch. The hub is
// constructed before the order workflow, so this runs after both exist.
func (h *Hub) SetOrderLoader(orders IOrderLoader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = orders
}

// Broadcast sends one event to every connected client. Delivery is
// fire-and-forget: a client that cannot keep up is dropped, never waited on.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := encodeEvent(event, data)
	if err != nil {
		h.log.Error("encode broadcast event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.enqueue(msg)
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closeSend()
	}
}

// dispatchPrint routes a print request to every registered print client.
// The requester gets printSuccess once at least one print client accepted
// the send, printError otherwise. Nothing tracks whether paper came out.
func (h *Hub) dispatchPrint(requester *Client, orderID string) {
	h.mu.RLock()
	orders := h.orders
	h.mu.RUnlock()
	if orders == nil {
		requester.send("printError", map[string]string{"orderId": orderID, "message": "printing unavailable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), printLookupTimeout)
	defer cancel()
	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		h.log.Warn("print order lookup failed", zap.String("orderId", orderID), zap.Error(err))
		requester.send("printError", map[string]string{"orderId": orderID, "message": "order not found"})
		return
	}

	msg, err := encodeEvent("print", map[string]any{"order": order})
	if err != nil {
		h.log.Error("encode print job", zap.String("orderId", orderID), zap.Error(err))
		requester.send("printError", map[string]string{"orderId": orderID, "message": "print encoding failed"})
		return
	}

	delivered := 0
	h.mu.RLock()
	for c := range h.clients {
		if c.isPrintClient() {
			c.enqueue(msg)
			delivered++
		}
	}
	h.mu.RUnlock()

	if delivered == 0 {
		requester.send("printError", map[string]string{"orderId": orderID, "message": "no printers connected"})
		return
	}
	h.log.Info("print job dispatched", zap.String("orderId", orderID), zap.Int("printClients", delivered))
	requester.send("printSuccess", map[string]string{"orderId": orderID})
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type eventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func encodeEvent(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(eventEnvelope{Type: event, Data: payload})
}
