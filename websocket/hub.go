package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types pushed over the socket
const (
	EventTypeOrderCreated      = "order_created"
	EventTypeOrderStatus       = "order_status"
	EventTypeCommissionCreated = "commission_created"
	EventTypeCommissionStatus  = "commission_status"
)

// Event represents a message sent over WebSocket
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"userID,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID  primitive.ObjectID
	IsAdmin bool
	Conn    *websocket.Conn
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID primitive.ObjectID, event Event) error {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user not connected")
	}

	return client.Conn.WriteJSON(event)
}

// BroadcastToAdmins pushes an event to every connected admin. The
// admin dashboard uses this as its live order feed.
func (h *Hub) BroadcastToAdmins(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.IsAdmin {
			client.Conn.WriteJSON(event)
		}
	}
}

// NotifyOrderCreated pushes a new order to the admin feed
func (h *Hub) NotifyOrderCreated(orderData interface{}) {
	h.BroadcastToAdmins(Event{
		Type:    EventTypeOrderCreated,
		Message: "New order received",
		Data:    orderData,
	})
}

// NotifyOrderStatus tells the buyer their order status changed
func (h *Hub) NotifyOrderStatus(userID primitive.ObjectID, orderData interface{}) error {
	return h.SendToUser(userID, Event{
		Type:    EventTypeOrderStatus,
		Message: "Your order status has been updated",
		Data:    orderData,
	})
}

// NotifyCommissionStatus tells the partner their commission moved state
func (h *Hub) NotifyCommissionStatus(partnerID primitive.ObjectID, commissionData interface{}) error {
	return h.SendToUser(partnerID, Event{
		Type:    EventTypeCommissionStatus,
		Message: "Your commission status has been updated",
		Data:    commissionData,
	})
}
