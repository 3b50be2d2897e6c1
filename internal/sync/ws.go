package sync

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// devhub pages connect cross-origin in local setups
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades a connection onto the index event feed. Listeners only
// receive; anything they send is drained and ignored.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.AttachWS(conn)
		log.Printf("[sync-ws] listener joined: %s", conn.RemoteAddr())

		_ = conn.WriteJSON(hub.hello())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.DetachWS(conn)
		log.Printf("[sync-ws] listener left: %s", conn.RemoteAddr())
	}
}
