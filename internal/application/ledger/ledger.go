package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// Ledger moves properties between statuses in response to agreement and sale
// transitions. It is the only writer of property status.
type Ledger struct {
	logger zerolog.Logger
}

// New creates a property status ledger.
func New(logger zerolog.Logger) *Ledger {
	return &Ledger{
		logger: logger.With().Str("service", "ledger").Logger(),
	}
}

// SetPropertyStatus moves a property to target using the given repository,
// which is normally bound to the caller's transaction. The write only lands if
// the property has not changed since it was read.
func (l *Ledger) SetPropertyStatus(ctx context.Context, repo property.Repository, propertyID uuid.UUID, target property.Status) (*property.Property, error) {
	if err := property.ValidateStatus(target); err != nil {
		return nil, err
	}
	p, err := repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", property.ErrNotFound, propertyID)
	}

	from := p.Status
	expected := p.Version
	if err := p.MoveTo(target); err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", err, from, target)
	}
	if err := repo.UpdateStatus(ctx, p, expected); err != nil {
		return nil, fmt.Errorf("failed to update property status: %w", err)
	}

	l.logger.Info().
		Str("property_id", propertyID.String()).
		Str("from", string(from)).
		Str("to", string(target)).
		Int64("version", p.Version).
		Msg("property status changed")
	return p, nil
}
