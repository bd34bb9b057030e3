package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cistilnica/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOrderLoader struct {
	order entities.Order
	err   error
}

func (s *stubOrderLoader) GetByID(_ context.Context, _ string) (entities.Order, error) {
	return s.order, s.err
}

func newTestServer(t *testing.T, loader IOrderLoader) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zap.NewNop())
	if loader != nil {
		hub.SetOrderLoader(loader)
	}
	r := gin.New()
	r.GET("/ws", Serve(hub, zap.NewNop()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env eventEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env.Type, env.Data
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	msg, err := encodeEvent(event, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	first := dial(t, srv)
	second := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.Broadcast("orderCreated", map[string]string{"id": "ord-1"})
	hub.Broadcast("orderUpdated", map[string]string{"id": "ord-1"})

	for _, conn := range []*websocket.Conn{first, second} {
		event, data := readEvent(t, conn)
		assert.Equal(t, "orderCreated", event)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, "ord-1", payload["id"])

		event, _ = readEvent(t, conn)
		assert.Equal(t, "orderUpdated", event)
	}
}

func TestHub_RegisterPrintClientAck(t *testing.T) {
	_, srv := newTestServer(t, nil)

	conn := dial(t, srv)
	sendEvent(t, conn, "registerPrintClient", map[string]string{"name": "pos-1"})

	event, data := readEvent(t, conn)
	assert.Equal(t, "printClientRegistered", event)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "pos-1", payload["name"])
	assert.NotEmpty(t, payload["clientId"])
}

func TestHub_PrintOrderWithoutPrinters(t *testing.T) {
	_, srv := newTestServer(t, &stubOrderLoader{order: entities.Order{ID: "ord-1"}})

	conn := dial(t, srv)
	sendEvent(t, conn, "printOrder", map[string]string{"orderId": "ord-1"})

	event, data := readEvent(t, conn)
	assert.Equal(t, "printError", event)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "no printers connected", payload["message"])
}

func TestHub_PrintOrderUnknownOrder(t *testing.T) {
	_, srv := newTestServer(t, &stubOrderLoader{err: errors.New("order not found")})

	conn := dial(t, srv)
	sendEvent(t, conn, "printOrder", map[string]string{"orderId": "missing"})

	event, _ := readEvent(t, conn)
	assert.Equal(t, "printError", event)
}

func TestHub_PrintOrderFanOut(t *testing.T) {
	order := entities.Order{ID: "ord-1", OrderNumber: "2026-08-001", Name: "Ana Novak"}
	_, srv := newTestServer(t, &stubOrderLoader{order: order})

	printer := dial(t, srv)
	sendEvent(t, printer, "registerPrintClient", map[string]string{"name": "pos-1"})
	event, _ := readEvent(t, printer)
	require.Equal(t, "printClientRegistered", event)

	requester := dial(t, srv)
	sendEvent(t, requester, "printOrder", map[string]string{"orderId": "ord-1"})

	event, _ = readEvent(t, requester)
	assert.Equal(t, "printSuccess", event)

	event, data := readEvent(t, printer)
	assert.Equal(t, "print", event)
	var job struct {
		Order entities.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(data, &job))
	assert.Equal(t, "2026-08-001", job.Order.OrderNumber)
}

func TestHub_PrintCompleteBroadcastsNotification(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	watcher := dial(t, srv)
	printer := dial(t, srv)
	waitForClients(t, hub, 2)

	sendEvent(t, printer, "printComplete", printCompletePayload{OrderID: "ord-1", Success: false, Error: "paper jam"})

	event, data := readEvent(t, watcher)
	assert.Equal(t, "printNotification", event)
	var payload printCompletePayload
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "ord-1", payload.OrderID)
	assert.False(t, payload.Success)
	assert.Equal(t, "paper jam", payload.Error)
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()
	waitForClients(t, hub, 0)

	// Broadcasting into an empty registry is a no-op, not an error.
	hub.Broadcast("orderDeleted", map[string]string{"id": "ord-1"})
}

func TestClient_SendAfterDropDoesNotPanic(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := newClient(hub, nil, zap.NewNop())
	hub.register(c)

	msg, err := encodeEvent("orderUpdated", map[string]string{"id": "ord-1"})
	require.NoError(t, err)

	// No write pump is draining, so the buffer fills and the next enqueue
	// drops the client.
	for i := 0; i < sendBufferSize; i++ {
		c.enqueue(msg)
	}
	c.enqueue(msg)
	waitForClients(t, hub, 0)

	// A reply racing the drop must be discarded, not panic on a closed
	// channel.
	require.NotPanics(t, func() {
		c.send("printSuccess", map[string]string{"orderId": "ord-1"})
	})
}

func TestServe_RejectsPlainHTTP(t *testing.T) {
	_, srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
