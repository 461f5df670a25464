package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/digitalagency-id/agency_be/internal/realtime"
)

type ActivityHandler struct {
	Hub *realtime.Hub
}

func NewActivityHandler(hub *realtime.Hub) *ActivityHandler {
	return &ActivityHandler{Hub: hub}
}

// WebSocketHandler streams contract lifecycle events to a staff session.
func (h *ActivityHandler) WebSocketHandler(c *websocket.Conn) {
	userID := c.Query("user_id")
	if userID == "" {
		log.Println("WebSocket: user_id parameter missing")
		c.Close()
		return
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		log.Println("WebSocket: invalid user_id:", userID, "error:", err)
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: userUUID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
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

	// read loop just keeps the connection alive
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}
