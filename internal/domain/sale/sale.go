package sale

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents sale status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusDeclined  Status = "DECLINED"
)

var (
	ErrNotFound          = errors.New("sale not found")
	ErrInvalidTransition = errors.New("invalid sale status transition")
	ErrInvalid           = errors.New("invalid sale")
)

// Sale is a purchase contract between a seller and a buyer for one property.
type Sale struct {
	ID         int64     `json:"-"`
	SaleID     uuid.UUID `json:"id"`
	BuyerID    uuid.UUID `json:"buyer"`
	SellerID   uuid.UUID `json:"seller"`
	PropertyID uuid.UUID `json:"property"`
	Status     Status    `json:"status"`
	Price      int64     `json:"price"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewSale creates a pending sale.
func NewSale(buyerID, sellerID, propertyID uuid.UUID, price int64) *Sale {
	now := time.Now().UTC()
	return &Sale{
		SaleID:     uuid.New(),
		BuyerID:    buyerID,
		SellerID:   sellerID,
		PropertyID: propertyID,
		Status:     StatusPending,
		Price:      price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Parties returns the buyer and seller ids, the profiles that reference this sale.
func (s *Sale) Parties() []uuid.UUID {
	return []uuid.UUID{s.BuyerID, s.SellerID}
}

// Complete accepts a pending sale.
func (s *Sale) Complete() error {
	if s.Status != StatusPending {
		return ErrInvalidTransition
	}
	s.Status = StatusCompleted
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Decline marks the sale declined from any status.
func (s *Sale) Decline() {
	s.Status = StatusDeclined
	s.UpdatedAt = time.Now().UTC()
}

// Patch holds editable sale fields. Status is not editable here.
type Patch struct {
	Price *int64
	Notes *string
}

func (p Patch) Apply(s *Sale) {
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	s.UpdatedAt = time.Now().UTC()
}

func (s *Sale) Validate() error {
	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	if s.BuyerID == s.SellerID {
		return fmt.Errorf("%w: buyer and seller must differ", ErrInvalid)
	}
	return nil
}
