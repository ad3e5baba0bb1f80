package agreement

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Filter controls agreement listing. Exactly one of the fields is normally set.
type Filter struct {
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID
}

// Repository defines persistence for rent agreements.
type Repository interface {
	Create(ctx context.Context, agreement *RentAgreement) error
	GetByID(ctx context.Context, agreementID uuid.UUID) (*RentAgreement, error)
	Update(ctx context.Context, agreement *RentAgreement) error
	Delete(ctx context.Context, agreementID uuid.UUID) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*RentAgreement, error)
	Count(ctx context.Context, filter Filter) (int, error)
}
