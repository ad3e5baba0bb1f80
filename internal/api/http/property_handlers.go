package httpapi

import (
	"net/http"
)

type createPropertyRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := s.decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	auth := authProfileFromContext(r.Context())
	p, err := s.propertySvc.Create(r.Context(), auth.Profile.ProfileID, req.Title)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "propertyId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid propertyId")
		return
	}
	p, err := s.propertySvc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
