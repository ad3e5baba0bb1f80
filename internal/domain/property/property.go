package property

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents property availability.
type Status string

const (
	StatusFree     Status = "FREE"
	StatusReserved Status = "RESERVED"
	StatusSold     Status = "SOLD"
)

var (
	ErrNotFound          = errors.New("property not found")
	ErrInvalidTransition = errors.New("invalid property status transition")
	ErrInvalidStatus     = errors.New("invalid property status")
	ErrVersionConflict   = errors.New("property was modified concurrently")
)

// transitions lists the statuses reachable from each status. A reserved
// property cannot be reserved again, so only one agreement or sale holds it.
var transitions = map[Status][]Status{
	StatusFree:     {StatusFree, StatusReserved, StatusSold},
	StatusReserved: {StatusFree, StatusSold},
	StatusSold:     {StatusFree},
}

// Property is a listing whose status is driven by agreements and sales.
type Property struct {
	ID         int64     `json:"-"`
	PropertyID uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner"`
	Title      string    `json:"title"`
	Status     Status    `json:"status"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewProperty creates a free property.
func NewProperty(ownerID uuid.UUID, title string) *Property {
	now := time.Now().UTC()
	return &Property{
		PropertyID: uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		Status:     StatusFree,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CanTransition reports whether a property may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionTo validates a move from the property's current status.
func (p *Property) CanTransitionTo(target Status) bool {
	return CanTransition(p.Status, target)
}

// MoveTo applies a status change and bumps the version.
func (p *Property) MoveTo(target Status) error {
	if !p.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	p.Status = target
	p.Version++
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func ValidateStatus(status Status) error {
	switch status {
	case StatusFree, StatusReserved, StatusSold:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}
