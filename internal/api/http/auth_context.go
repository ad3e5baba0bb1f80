package httpapi

import (
	"context"

	"github.com/google/uuid"

	"github.com/estate-hub/estate-hub/internal/domain/agreement"
	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

type contextKey string

const (
	authProfileKey contextKey = "authProfile"
	agreementKey   contextKey = "agreement"
	saleKey        contextKey = "sale"
)

// AuthProfile is the authenticated caller attached to the request context.
type AuthProfile struct {
	Profile   *profile.Profile
	SessionID uuid.UUID
}

func withAuthProfile(ctx context.Context, p *AuthProfile) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, authProfileKey, p)
}

func authProfileFromContext(ctx context.Context) *AuthProfile {
	if v, ok := ctx.Value(authProfileKey).(*AuthProfile); ok {
		return v
	}
	return nil
}

func agreementFromContext(ctx context.Context) *agreement.RentAgreement {
	a, _ := ctx.Value(agreementKey).(*agreement.RentAgreement)
	return a
}

func saleFromContext(ctx context.Context) *sale.Sale {
	sl, _ := ctx.Value(saleKey).(*sale.Sale)
	return sl
}
