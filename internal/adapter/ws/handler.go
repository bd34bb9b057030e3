package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The app serves browsers and LAN print clients from arbitrary hosts.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades GET /ws requests and attaches the connection to the hub.
func Serve(hub *Hub, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		client := newClient(hub, conn, log)
		hub.register(client)
		go client.writePump()
		go client.readPump()
	}
}
