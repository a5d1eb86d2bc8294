package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/alexdev/portfolio-api/internal/realtime"
)

type WSHandler struct {
	Hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{Hub: hub}
}

// ContentFeed streams content-changed events to a connected browser. No auth:
// the event carries no payload beyond the cue to re-fetch public content.
func (h *WSHandler) ContentFeed(c *websocket.Conn) {
	client := &realtime.Client{
		ID:   uuid.New().String(),
		Conn: realtime.NewWebSocketConn(c),
		Send: make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// reads only keep the connection alive
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
