package live

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
	// the feed is public read-only data, so any origin may subscribe
	CheckOrigin: func(*http.Request) bool { return true },
}

// WSHandler upgrades the request and keeps the connection registered until
// the client goes away. The feed is write-only; incoming frames are drained
// and discarded.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade failed: %v", err)
			return
		}

		hub.AddWS(conn)
		log.Printf("[ws] client connected: %s", conn.RemoteAddr())

		_ = conn.WriteJSON(map[string]string{"type": "welcome", "transport": "websocket"})

		drain(conn)

		hub.RemoveWS(conn)
		log.Printf("[ws] client disconnected: %s", conn.RemoteAddr())
	}
}

func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
