package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names the real-time event a notification is broadcast under.
type Event string

const (
	EventNewSales     Event = "NewSales"
	EventUpdatedSales Event = "UpdatedSales"
)

// Type classifies a notification for clients.
type Type string

const (
	TypeBooking Type = "Booking"
)

// Party identifies a buyer or seller inside a notification.
type Party struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// PropertyRef identifies the property a notification is about.
type PropertyRef struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
}

// SaleNotification is built fresh for each sale event and never stored.
type SaleNotification struct {
	NotificationID uuid.UUID   `json:"id"`
	Buyer          Party       `json:"buyer"`
	Seller         Party       `json:"seller"`
	Property       PropertyRef `json:"property"`
	Event          Event       `json:"event"`
	Type           Type        `json:"type"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// SSEClient represents an active SSE connection. Every client receives every
// broadcast.
type SSEClient struct {
	ClientID    string
	ConnectedAt time.Time
	MessageChan chan *SSEMessage
}

// NewSSEClient creates a new SSE client
func NewSSEClient(clientID string) *SSEClient {
	return &SSEClient{
		ClientID:    clientID,
		ConnectedAt: time.Now().UTC(),
		MessageChan: make(chan *SSEMessage, 100),
	}
}

// Close closes the client's message channel
func (c *SSEClient) Close() {
	close(c.MessageChan)
}

// SSEMessage represents a message to be sent via SSE
type SSEMessage struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewSSEMessage creates a new SSE message
func NewSSEMessage(event string, data json.RawMessage) *SSEMessage {
	return &SSEMessage{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
