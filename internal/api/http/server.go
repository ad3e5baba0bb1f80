package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	appAgreement "github.com/estate-hub/estate-hub/internal/application/agreement"
	appAuth "github.com/estate-hub/estate-hub/internal/application/auth"
	appProperty "github.com/estate-hub/estate-hub/internal/application/property"
	appSale "github.com/estate-hub/estate-hub/internal/application/sale"
	"github.com/estate-hub/estate-hub/internal/domain/agreement"
	"github.com/estate-hub/estate-hub/internal/domain/notification"
	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/property"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authSvc             *appAuth.Service
	agreementSvc        *appAgreement.Service
	saleSvc             *appSale.Service
	propertySvc         *appProperty.Service
	sseHub              notification.SSEHub
	validate            *validator.Validate
	logger              zerolog.Logger
	sessionCookieName   string
	sessionCookieSecure bool
}

// Options configures a Server.
type Options struct {
	AuthService         *appAuth.Service
	AgreementService    *appAgreement.Service
	SaleService         *appSale.Service
	PropertyService     *appProperty.Service
	SSEHub              notification.SSEHub
	Logger              zerolog.Logger
	SessionCookieName   string
	SessionCookieSecure bool
}

func NewServer(opts Options) *Server {
	return &Server{
		authSvc:             opts.AuthService,
		agreementSvc:        opts.AgreementService,
		saleSvc:             opts.SaleService,
		propertySvc:         opts.PropertyService,
		sseHub:              opts.SSEHub,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		logger:              opts.Logger,
		sessionCookieName:   opts.SessionCookieName,
		sessionCookieSecure: opts.SessionCookieSecure,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/logout", s.logout)
			r.Get("/me", s.me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		// The stream is long-lived and must not inherit the request timeout.
		r.Get("/sales/stream", s.saleStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Route("/properties", func(r chi.Router) {
				r.With(s.requireRole(string(profile.RoleLandlord), string(profile.RoleSeller))).Post("/", s.createProperty)
				r.Get("/{propertyId}", s.getProperty)
			})

			r.Route("/agreements/rent", func(r chi.Router) {
				r.Get("/", s.listAgreements)
				r.With(s.requireRole(string(profile.RoleTenant))).Post("/", s.createAgreement)

				r.Route("/{agreementId}", func(r chi.Router) {
					r.Use(s.loadAgreement)
					r.With(s.requireAgreementParticipant).Put("/", s.updateAgreement)
					r.With(s.requireAgreementParticipant).Delete("/", s.deleteAgreement)

					r.Group(func(r chi.Router) {
						r.Use(s.requireRole(string(profile.RoleLandlord)))
						r.Use(s.requireAgreementSeller)
						r.Put("/accept", s.acceptAgreement)
						r.Put("/decline", s.declineAgreement)
						r.Put("/complete", s.completeAgreement)
					})
				})
			})

			r.Route("/sales", func(r chi.Router) {
				r.With(s.requireRole(string(profile.RoleBuyer))).Post("/create", s.createSale)

				r.Group(func(r chi.Router) {
					r.Use(s.requireRole(string(profile.RoleBuyer)))
					r.With(s.loadSale, s.requireSaleBuyer).Put("/update/{saleId}", s.updateSale)
					r.With(s.loadSale, s.requireSaleBuyer).Delete("/delete/{saleId}", s.deleteSale)
				})
				r.Group(func(r chi.Router) {
					r.Use(s.requireRole(string(profile.RoleSeller)))
					r.With(s.loadSale, s.requireSaleSeller).Put("/accept/{saleId}", s.acceptSale)
					r.With(s.loadSale, s.requireSaleSeller).Put("/decline/{saleId}", s.declineSale)
				})
			})
		})
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

// respondServiceError maps domain errors onto HTTP statuses. Anything it does
// not recognise is a persistence failure.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, agreement.ErrNotFound),
		errors.Is(err, sale.ErrNotFound),
		errors.Is(err, property.ErrNotFound),
		errors.Is(err, profile.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, agreement.ErrInvalidTransition),
		errors.Is(err, sale.ErrInvalidTransition),
		errors.Is(err, property.ErrInvalidTransition),
		errors.Is(err, property.ErrInvalidStatus),
		errors.Is(err, property.ErrVersionConflict),
		errors.Is(err, profile.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, agreement.ErrInvalid),
		errors.Is(err, sale.ErrInvalid),
		errors.Is(err, profile.ErrInvalid),
		errors.Is(err, appProperty.ErrInvalidTitle):
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

// decodeBody decodes a JSON body into v and runs its validate tags.
func (s *Server) decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

// parsePage reads ?page=N. Missing, malformed or non-positive values mean 1;
// values past agreement.MaxPage are capped.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	if page > agreement.MaxPage {
		return agreement.MaxPage
	}
	return page
}
