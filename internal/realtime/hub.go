package realtime

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Event is the wire envelope for every message on the channel. The event
// names form a closed set: clients send "sendNotification" and "Token",
// the server emits "notification", "userLoggedIn" and "TokenResponse".
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

// TokenResponse is the point reply to a Token event.
type TokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TokenConsumer validates and consumes a handshake token, returning the
// outcome and a human message.
type TokenConsumer func(token string) (bool, string)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans broadcast events out to every connected client. Delivery is
// fire-and-forget; clients that fall behind are dropped.
type Hub struct {
	register     chan *Client
	unregister   chan *Client
	broadcast    chan []byte
	clients      map[*Client]bool
	consumeToken TokenConsumer
}

func NewHub(consumeToken TokenConsumer) *Hub {
	return &Hub{
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan []byte, 16),
		clients:      make(map[*Client]bool),
		consumeToken: consumeToken,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.trySend(message) {
					delete(h.clients, client)
					client.closeSend()
				}
			}
		}
	}
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(event string, data interface{}) {
	message, err := marshalEvent(event, data)
	if err != nil {
		log.Printf("realtime: marshal %s event: %v", event, err)
		return
	}
	h.broadcast <- message
}

// ServeWS upgrades an HTTP request and runs the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade: %v", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func marshalEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: raw})
}
