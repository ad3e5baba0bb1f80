package agreement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estate-hub/estate-hub/internal/application/ledger"
	domain "github.com/estate-hub/estate-hub/internal/domain/agreement"
	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/property"
	"github.com/estate-hub/estate-hub/internal/domain/txn"
)

// Service runs the rent agreement lifecycle.
type Service struct {
	tx     txn.Manager
	ledger *ledger.Ledger
	logger zerolog.Logger
}

// NewService creates an agreement service.
func NewService(tx txn.Manager, ledger *ledger.Ledger, logger zerolog.Logger) *Service {
	return &Service{
		tx:     tx,
		ledger: ledger,
		logger: logger.With().Str("service", "agreement").Logger(),
	}
}

// CreateInput defines agreement creation input. There is no status field:
// new agreements are always pending.
type CreateInput struct {
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	PropertyID  uuid.UUID
	MonthlyRent int64
	StartDate   *time.Time
	EndDate     *time.Time
	Terms       string
}

// AcceptResult carries both records changed by an accept.
type AcceptResult struct {
	Agreement *domain.RentAgreement `json:"agreement"`
	Property  *property.Property    `json:"property"`
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.RentAgreement, error) {
	a := domain.NewRentAgreement(input.BuyerID, input.SellerID, input.PropertyID)
	a.MonthlyRent = input.MonthlyRent
	a.StartDate = input.StartDate
	a.EndDate = input.EndDate
	a.Terms = input.Terms
	if err := a.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		p, err := repos.Properties.GetByID(ctx, a.PropertyID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: %s", property.ErrNotFound, a.PropertyID)
		}
		return repos.Agreements.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("agreement_id", a.AgreementID.String()).
		Str("property_id", a.PropertyID.String()).
		Msg("agreement created")
	return a, nil
}

func (s *Service) Get(ctx context.Context, agreementID uuid.UUID) (*domain.RentAgreement, error) {
	a, err := s.tx.Repos().Agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, agreementID)
	}
	return a, nil
}

// List returns one page of the caller's agreements. Landlords see agreements
// where they are the seller; everyone else sees those where they are the buyer.
func (s *Service) List(ctx context.Context, caller *profile.Profile, page int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}
	filter := domain.Filter{}
	if caller.IsLandlord() {
		filter.SellerID = &caller.ProfileID
	} else {
		filter.BuyerID = &caller.ProfileID
	}

	repo := s.tx.Repos().Agreements
	items, err := repo.List(ctx, filter, domain.PageLimit, domain.Offset(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count agreements: %w", err)
	}
	if items == nil {
		items = []*domain.RentAgreement{}
	}
	return &domain.Page{
		Items: items,
		Total: total,
		Page:  page,
		Pages: domain.PageCount(total),
	}, nil
}

// Update patches non-status fields. It never touches the property.
func (s *Service) Update(ctx context.Context, agreementID uuid.UUID, patch domain.Patch) (*domain.RentAgreement, error) {
	var out *domain.RentAgreement
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		a, err := load(ctx, repos, agreementID)
		if err != nil {
			return err
		}
		patch.Apply(a)
		if err := a.Validate(); err != nil {
			return err
		}
		if err := repos.Agreements.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to update agreement: %w", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Accept settles a pending agreement and reserves its property.
func (s *Service) Accept(ctx context.Context, agreementID uuid.UUID) (*AcceptResult, error) {
	a, p, err := s.transition(ctx, agreementID, (*domain.RentAgreement).Settle, property.StatusReserved)
	if err != nil {
		return nil, err
	}
	return &AcceptResult{Agreement: a, Property: p}, nil
}

// Decline declines the agreement and frees its property.
func (s *Service) Decline(ctx context.Context, agreementID uuid.UUID) (*domain.RentAgreement, error) {
	a, _, err := s.transition(ctx, agreementID, func(a *domain.RentAgreement) error {
		a.Decline()
		return nil
	}, property.StatusFree)
	return a, err
}

// Complete completes the agreement and marks its property sold.
func (s *Service) Complete(ctx context.Context, agreementID uuid.UUID) (*domain.RentAgreement, error) {
	a, _, err := s.transition(ctx, agreementID, func(a *domain.RentAgreement) error {
		a.Complete()
		return nil
	}, property.StatusSold)
	return a, err
}

// Delete removes the agreement and frees its property.
func (s *Service) Delete(ctx context.Context, agreementID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		a, err := load(ctx, repos, agreementID)
		if err != nil {
			return err
		}
		if err := repos.Agreements.Delete(ctx, agreementID); err != nil {
			return fmt.Errorf("failed to delete agreement: %w", err)
		}
		_, err = s.ledger.SetPropertyStatus(ctx, repos.Properties, a.PropertyID, property.StatusFree)
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("agreement_id", agreementID.String()).Msg("agreement deleted")
	return nil
}

// transition writes the agreement first and the property second, in one
// transaction.
func (s *Service) transition(
	ctx context.Context,
	agreementID uuid.UUID,
	apply func(*domain.RentAgreement) error,
	target property.Status,
) (*domain.RentAgreement, *property.Property, error) {
	var (
		a *domain.RentAgreement
		p *property.Property
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		loaded, err := load(ctx, repos, agreementID)
		if err != nil {
			return err
		}
		if err := apply(loaded); err != nil {
			return fmt.Errorf("%w: from %s", err, loaded.Status)
		}
		if err := repos.Agreements.Update(ctx, loaded); err != nil {
			return fmt.Errorf("failed to update agreement: %w", err)
		}
		moved, err := s.ledger.SetPropertyStatus(ctx, repos.Properties, loaded.PropertyID, target)
		if err != nil {
			return err
		}
		a, p = loaded, moved
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("agreement_id", agreementID.String()).Msg("agreement transition failed")
		return nil, nil, err
	}

	s.logger.Info().
		Str("agreement_id", a.AgreementID.String()).
		Str("status", string(a.Status)).
		Str("property_status", string(p.Status)).
		Msg("agreement transitioned")
	return a, p, nil
}

func load(ctx context.Context, repos txn.Repositories, agreementID uuid.UUID) (*domain.RentAgreement, error) {
	a, err := repos.Agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, agreementID)
	}
	return a, nil
}
