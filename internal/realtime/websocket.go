package realtime

import "github.com/gofiber/websocket/v2"

// WebSocketConn wraps websocket.Conn so hub.go stays free of the websocket import.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}
