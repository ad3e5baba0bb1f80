package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	appSale "github.com/estate-hub/estate-hub/internal/application/sale"
	"github.com/estate-hub/estate-hub/internal/domain/notification"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

const streamHeartbeat = 25 * time.Second

type createSaleRequest struct {
	Buyer    *uuid.UUID `json:"buyer"`
	Seller   uuid.UUID  `json:"seller" validate:"required"`
	Property uuid.UUID  `json:"property" validate:"required"`
	Price    int64      `json:"price" validate:"gte=0"`
	Notes    string     `json:"notes" validate:"max=4000"`
}

type updateSaleRequest struct {
	Price *int64  `json:"price" validate:"omitempty,gte=0"`
	Notes *string `json:"notes" validate:"omitempty,max=4000"`
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := s.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	auth := authProfileFromContext(r.Context())
	if req.Buyer != nil && *req.Buyer != auth.Profile.ProfileID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "buyer must be the caller")
		return
	}
	sl, err := s.saleSvc.Create(r.Context(), appSale.CreateInput{
		BuyerID:    auth.Profile.ProfileID,
		SellerID:   req.Seller,
		PropertyID: req.Property,
		Price:      req.Price,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sl)
}

func (s *Server) updateSale(w http.ResponseWriter, r *http.Request) {
	var req updateSaleRequest
	if err := s.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	sl := saleFromContext(r.Context())
	updated, err := s.saleSvc.Update(r.Context(), sl.SaleID, sale.Patch{Price: req.Price, Notes: req.Notes})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) acceptSale(w http.ResponseWriter, r *http.Request) {
	sl := saleFromContext(r.Context())
	updated, err := s.saleSvc.Accept(r.Context(), sl.SaleID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) declineSale(w http.ResponseWriter, r *http.Request) {
	sl := saleFromContext(r.Context())
	updated, err := s.saleSvc.Decline(r.Context(), sl.SaleID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	sl := saleFromContext(r.Context())
	if err := s.saleSvc.Delete(r.Context(), sl.SaleID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "Successfully deleted a sale"})
}

// saleStream serves sale notifications as server-sent events. Each event is
// named after the notification event and carries {sale, notification}.
func (s *Server) saleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming not supported")
		return
	}
	clientID := uuid.NewString()
	client := notification.NewSSEClient(clientID)
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(clientID)
	hlog.FromRequest(r).Debug().Str("client_id", clientID).Msg("sale stream opened")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case msg, open := <-client.MessageChan:
			if !open || msg == nil {
				return
			}
			if err := writeEvent(w, msg); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, msg *notification.SSEMessage) error {
	data, err := json.Marshal(msg.Data)
	if err != nil {
		return err
	}
	frame := "id: " + msg.ID + "\nevent: " + msg.Event + "\ndata: " + string(data) + "\n\n"
	_, err = w.Write([]byte(frame))
	return err
}
