package property

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for properties.
type Repository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, propertyID uuid.UUID) (*Property, error)
	// UpdateStatus writes status and version only if the stored version still
	// equals expectedVersion; otherwise it returns ErrVersionConflict.
	UpdateStatus(ctx context.Context, property *Property, expectedVersion int64) error
}
