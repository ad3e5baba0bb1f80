package sale

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for sales.
type Repository interface {
	Create(ctx context.Context, sale *Sale) error
	GetByID(ctx context.Context, saleID uuid.UUID) (*Sale, error)
	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, saleID uuid.UUID) error
}
