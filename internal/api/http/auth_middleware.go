package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r, s.sessionCookieName)
		p, sess, err := s.authSvc.Authenticate(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			return
		}
		zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("profile_id", p.ProfileID.String())
		})
		ctx := withAuthProfile(r.Context(), &AuthProfile{Profile: p, SessionID: sess.SessionID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := authProfileFromContext(r.Context())
			if auth == nil {
				respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth")
				return
			}
			if _, ok := allowed[string(auth.Profile.Role)]; !ok {
				respondError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loadAgreement resolves {agreementId} and attaches the agreement to the
// request context.
func (s *Server) loadAgreement(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "agreementId")
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid agreementId")
			return
		}
		a, err := s.agreementSvc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), agreementKey, a)))
	})
}

func (s *Server) requireAgreementParticipant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := agreementFromContext(r.Context())
		auth := authProfileFromContext(r.Context())
		if a == nil || auth == nil || !a.IsParticipant(auth.Profile.ProfileID) {
			respondError(w, http.StatusForbidden, "FORBIDDEN", "not a party to this agreement")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAgreementSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := agreementFromContext(r.Context())
		auth := authProfileFromContext(r.Context())
		if a == nil || auth == nil || a.SellerID != auth.Profile.ProfileID {
			respondError(w, http.StatusForbidden, "FORBIDDEN", "only the landlord can do this")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loadSale resolves {saleId} and attaches the sale to the request context.
func (s *Server) loadSale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "saleId")
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid saleId")
			return
		}
		sl, err := s.saleSvc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), saleKey, sl)))
	})
}

func (s *Server) requireSaleBuyer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sl := saleFromContext(r.Context())
		auth := authProfileFromContext(r.Context())
		if sl == nil || auth == nil || sl.BuyerID != auth.Profile.ProfileID {
			respondError(w, http.StatusForbidden, "FORBIDDEN", "only the buyer can do this")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireSaleSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sl := saleFromContext(r.Context())
		auth := authProfileFromContext(r.Context())
		if sl == nil || auth == nil || sl.SellerID != auth.Profile.ProfileID {
			respondError(w, http.StatusForbidden, "FORBIDDEN", "only the seller can do this")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request, cookieName string) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}
