package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"audio-bridge/internal/player"
)

var upgrader = websocket.Upgrader{
	// The bridge sits behind the controller's own boundary; origin checks
	// belong to whatever fronts it.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventServer bridges session event streams onto websockets.
type EventServer struct {
	platform *player.Platform
}

// NewEventServer creates an event server over the given platform.
func NewEventServer(platform *player.Platform) *EventServer {
	return &EventServer{platform: platform}
}

// Stream upgrades the connection and forwards playback snapshots until the
// session is disposed or the client goes away. The stream carries snapshots
// only; a failed command surfaces on its own request, never here.
func (e *EventServer) Stream(c *gin.Context) {
	session, err := e.platform.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		fmt.Printf("[Events] Upgrade failed: %v\n", err)
		return
	}
	defer conn.Close()

	fmt.Printf("[Events] Controller subscribed: session=%s\n", session.ID)

	events := session.Events(c.Request.Context())
	for ev := range events {
		if err := conn.WriteJSON(ev.EncodeMap()); err != nil {
			fmt.Printf("[Events] Write failed, dropping subscriber: %v\n", err)
			return
		}
	}

	// Channel closed: session disposed. Terminate the stream cleanly.
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session disposed")
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
	fmt.Printf("[Events] Stream ended: session=%s\n", session.ID)
}
