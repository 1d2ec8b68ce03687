package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

const maxMessageSize = 4096

// Client is one websocket connection attached to the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// trySend queues a message unless the client has been dropped or its buffer
// is full. Reports whether the message was queued.
func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once. The hub goroutine is the
// only caller; readPump may still be live when it runs.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read: %v", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			continue
		}

		switch event.Event {
		case "sendNotification":
			c.hub.Broadcast("notification", map[string]interface{}{
				"message": "New notification received",
				"data":    event.Data,
			})
		case "Token":
			c.handleToken(event.Data)
		}
	}
}

// handleToken consumes the token and replies to the sending client only.
func (c *Client) handleToken(data json.RawMessage) {
	var req tokenRequest
	_ = json.Unmarshal(data, &req)

	success, message := false, "Invalid token"
	if req.Token != "" && c.hub.consumeToken != nil {
		success, message = c.hub.consumeToken(req.Token)
	}

	reply, err := marshalEvent("TokenResponse", TokenResponse{Success: success, Message: message})
	if err != nil {
		return
	}
	c.trySend(reply)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
