package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estate-hub/estate-hub/internal/domain/notification"
	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/property"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

// Dispatcher builds sale notifications and broadcasts them to every
// connected listener.
type Dispatcher struct {
	sseHub notification.SSEHub
	logger zerolog.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(sseHub notification.SSEHub, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sseHub: sseHub,
		logger: logger.With().Str("service", "notification").Logger(),
	}
}

// BuildNotification constructs a notification. It performs no I/O.
func (d *Dispatcher) BuildNotification(
	buyer *profile.Profile,
	seller *profile.Profile,
	prop *property.Property,
	event notification.Event,
	typ notification.Type,
) *notification.SaleNotification {
	n := &notification.SaleNotification{
		NotificationID: uuid.New(),
		Event:          event,
		Type:           typ,
		CreatedAt:      time.Now().UTC(),
	}
	if buyer != nil {
		n.Buyer = notification.Party{ID: buyer.ProfileID, Username: buyer.Username}
	}
	if seller != nil {
		n.Seller = notification.Party{ID: seller.ProfileID, Username: seller.Username}
	}
	if prop != nil {
		n.Property = notification.PropertyRef{ID: prop.PropertyID, Title: prop.Title, Status: string(prop.Status)}
	}
	return n
}

type salePayload struct {
	Sale         *sale.Sale                     `json:"sale"`
	Notification *notification.SaleNotification `json:"notification"`
}

// Broadcast sends the sale and its notification to all subscribers under the
// notification's event name. Delivery is not acknowledged and never retried.
func (d *Dispatcher) Broadcast(s *sale.Sale, n *notification.SaleNotification) {
	data, err := json.Marshal(salePayload{Sale: s, Notification: n})
	if err != nil {
		d.logger.Warn().Err(err).Str("sale_id", s.SaleID.String()).Msg("failed to marshal sale notification")
		return
	}
	d.sseHub.BroadcastToAll(notification.NewSSEMessage(string(n.Event), data))

	d.logger.Debug().
		Str("sale_id", s.SaleID.String()).
		Str("event", string(n.Event)).
		Int("listeners", d.sseHub.GetClientCount()).
		Msg("sale notification broadcast")
}
