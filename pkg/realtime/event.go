// Package realtime pushes order and store events to connected clients.
//
// A Registry tracks live WebSocket connections per user, and a
// Dispatcher fans events out to them. With Redis configured, the
// dispatcher also relays events to sibling server processes so a client
// connected anywhere receives them. Delivery is fire-and-forget: an
// offline target simply misses the event.
package realtime

import (
	"encoding/json"
	"time"
)

// Event names as sent on the wire.
const (
	EventOrderUpdate = "order-update"
	EventNewOrder    = "new-order"
	EventStoreStatus = "store-status"
)

// Event is the envelope pushed to clients:
//
//	{"event": "order-update", "data": {...}}
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Encode serializes the event for the wire.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// OrderData is the payload of order-update and new-order events.
type OrderData struct {
	OrderID   uint      `json:"orderId"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StoreData is the payload of store-status events.
type StoreData struct {
	IsOpen    bool      `json:"isOpen"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderUpdate builds an order-update event for the order's owner.
func OrderUpdate(orderID uint, status, message string) Event {
	return Event{
		Name: EventOrderUpdate,
		Data: OrderData{
			OrderID:   orderID,
			Status:    status,
			Message:   message,
			Timestamp: time.Now().UTC(),
		},
	}
}

// NewOrder builds a new-order event for the vendor group.
func NewOrder(orderID uint, status string) Event {
	return Event{
		Name: EventNewOrder,
		Data: OrderData{
			OrderID:   orderID,
			Status:    status,
			Timestamp: time.Now().UTC(),
		},
	}
}

// StoreStatus builds a store-status broadcast event.
func StoreStatus(isOpen bool) Event {
	return Event{
		Name: EventStoreStatus,
		Data: StoreData{
			IsOpen:    isOpen,
			Timestamp: time.Now().UTC(),
		},
	}
}
