package profile

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for profiles.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, profileID uuid.UUID) (*Profile, error)
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	// AddSale adds saleID to the sales set of every listed profile.
	AddSale(ctx context.Context, profileIDs []uuid.UUID, saleID uuid.UUID) error
	// RemoveSale removes saleID from the sales set of every listed profile.
	RemoveSale(ctx context.Context, profileIDs []uuid.UUID, saleID uuid.UUID) error
}
