package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// client is a connected viewer.
type client struct {
	conn *websocket.Conn
	addr string
	send chan []byte
}

// writePump writes the queued messages and keeps the connection alive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for %s: %v", c.addr, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for %s: %v", c.addr, err)
				return
			}
		}
	}
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// sendError sends an error message to the viewer without blocking.
func (c *client) sendError(message string) {
	data, err := json.Marshal(errorMessage{Type: "error", Message: message})
	if err != nil {
		log.Printf("[WS] error marshaling error message for %s: %v", c.addr, err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
