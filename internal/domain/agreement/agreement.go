package agreement

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Status represents rent agreement status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSettled   Status = "SETTLED"
	StatusDeclined  Status = "DECLINED"
	StatusCompleted Status = "COMPLETED"
)

// PageLimit is the number of agreements returned per page.
const PageLimit = 10

// MaxPage is the highest page whose offset fits in an int.
const MaxPage = math.MaxInt / PageLimit

var (
	ErrNotFound          = errors.New("agreement not found")
	ErrInvalidTransition = errors.New("invalid agreement status transition")
	ErrInvalid           = errors.New("invalid agreement")
)

// RentAgreement is a rental contract between a landlord (seller) and a tenant (buyer).
type RentAgreement struct {
	ID          int64      `json:"-"`
	AgreementID uuid.UUID  `json:"id"`
	BuyerID     uuid.UUID  `json:"buyer"`
	SellerID    uuid.UUID  `json:"seller"`
	PropertyID  uuid.UUID  `json:"property"`
	Status      Status     `json:"status"`
	MonthlyRent int64      `json:"monthlyRent"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Terms       string     `json:"terms,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewRentAgreement creates an agreement. New agreements are always pending.
func NewRentAgreement(buyerID, sellerID, propertyID uuid.UUID) *RentAgreement {
	now := time.Now().UTC()
	return &RentAgreement{
		AgreementID: uuid.New(),
		BuyerID:     buyerID,
		SellerID:    sellerID,
		PropertyID:  propertyID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsParticipant reports whether the profile is the buyer or the seller.
func (a *RentAgreement) IsParticipant(profileID uuid.UUID) bool {
	return a.BuyerID == profileID || a.SellerID == profileID
}

// Settle accepts a pending agreement.
func (a *RentAgreement) Settle() error {
	if a.Status != StatusPending {
		return ErrInvalidTransition
	}
	a.setStatus(StatusSettled)
	return nil
}

// Decline marks the agreement declined from any status.
func (a *RentAgreement) Decline() {
	a.setStatus(StatusDeclined)
}

// Complete marks the agreement completed from any status.
func (a *RentAgreement) Complete() {
	a.setStatus(StatusCompleted)
}

func (a *RentAgreement) setStatus(status Status) {
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
}

// Patch holds editable, non-status agreement fields.
type Patch struct {
	MonthlyRent *int64
	StartDate   *time.Time
	EndDate     *time.Time
	Terms       *string
}

// Apply copies set fields onto the agreement.
func (p Patch) Apply(a *RentAgreement) {
	if p.MonthlyRent != nil {
		a.MonthlyRent = *p.MonthlyRent
	}
	if p.StartDate != nil {
		a.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		a.EndDate = p.EndDate
	}
	if p.Terms != nil {
		a.Terms = *p.Terms
	}
	a.UpdatedAt = time.Now().UTC()
}

// Validate checks field-level consistency.
func (a *RentAgreement) Validate() error {
	if a.MonthlyRent < 0 {
		return fmt.Errorf("%w: monthly rent must not be negative", ErrInvalid)
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalid)
	}
	if a.BuyerID == a.SellerID {
		return fmt.Errorf("%w: buyer and seller must differ", ErrInvalid)
	}
	return nil
}

// Page is one page of agreements.
type Page struct {
	Items []*RentAgreement `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

// Offset returns the row offset for a 1-based page number.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * PageLimit
}

// PageCount returns how many pages hold total rows.
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageLimit - 1) / PageLimit
}
