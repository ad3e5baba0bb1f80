package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	appAgreement "github.com/estate-hub/estate-hub/internal/application/agreement"
	"github.com/estate-hub/estate-hub/internal/domain/agreement"
)

// createAgreementRequest accepts a status field for compatibility but ignores
// it: new agreements are always pending.
type createAgreementRequest struct {
	Buyer       *uuid.UUID `json:"buyer"`
	Seller      uuid.UUID  `json:"seller" validate:"required"`
	Property    uuid.UUID  `json:"property" validate:"required"`
	MonthlyRent int64      `json:"monthlyRent" validate:"gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Terms       string     `json:"terms" validate:"max=4000"`
	Status      *string    `json:"status"`
}

type updateAgreementRequest struct {
	MonthlyRent *int64     `json:"monthlyRent" validate:"omitempty,gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Terms       *string    `json:"terms" validate:"omitempty,max=4000"`
}

func (s *Server) listAgreements(w http.ResponseWriter, r *http.Request) {
	auth := authProfileFromContext(r.Context())
	page, err := s.agreementSvc.List(r.Context(), auth.Profile, parsePage(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) createAgreement(w http.ResponseWriter, r *http.Request) {
	var req createAgreementRequest
	if err := s.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	auth := authProfileFromContext(r.Context())
	if req.Buyer != nil && *req.Buyer != auth.Profile.ProfileID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "buyer must be the caller")
		return
	}
	a, err := s.agreementSvc.Create(r.Context(), appAgreement.CreateInput{
		BuyerID:     auth.Profile.ProfileID,
		SellerID:    req.Seller,
		PropertyID:  req.Property,
		MonthlyRent: req.MonthlyRent,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Terms:       req.Terms,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (s *Server) updateAgreement(w http.ResponseWriter, r *http.Request) {
	var req updateAgreementRequest
	if err := s.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	a := agreementFromContext(r.Context())
	updated, err := s.agreementSvc.Update(r.Context(), a.AgreementID, agreement.Patch{
		MonthlyRent: req.MonthlyRent,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Terms:       req.Terms,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) acceptAgreement(w http.ResponseWriter, r *http.Request) {
	a := agreementFromContext(r.Context())
	res, err := s.agreementSvc.Accept(r.Context(), a.AgreementID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) declineAgreement(w http.ResponseWriter, r *http.Request) {
	a := agreementFromContext(r.Context())
	updated, err := s.agreementSvc.Decline(r.Context(), a.AgreementID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) completeAgreement(w http.ResponseWriter, r *http.Request) {
	a := agreementFromContext(r.Context())
	updated, err := s.agreementSvc.Complete(r.Context(), a.AgreementID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteAgreement(w http.ResponseWriter, r *http.Request) {
	a := agreementFromContext(r.Context())
	if err := s.agreementSvc.Delete(r.Context(), a.AgreementID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Agreement " + a.AgreementID.String() + " successfully deleted.",
	})
}
