package sale

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estate-hub/estate-hub/internal/application/ledger"
	appNotification "github.com/estate-hub/estate-hub/internal/application/notification"
	"github.com/estate-hub/estate-hub/internal/domain/notification"
	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/property"
	domain "github.com/estate-hub/estate-hub/internal/domain/sale"
	"github.com/estate-hub/estate-hub/internal/domain/txn"
)

// Service runs the sale lifecycle.
type Service struct {
	tx         txn.Manager
	ledger     *ledger.Ledger
	dispatcher *appNotification.Dispatcher
	logger     zerolog.Logger
}

// NewService creates a sale service.
func NewService(tx txn.Manager, ledger *ledger.Ledger, dispatcher *appNotification.Dispatcher, logger zerolog.Logger) *Service {
	return &Service{
		tx:         tx,
		ledger:     ledger,
		dispatcher: dispatcher,
		logger:     logger.With().Str("service", "sale").Logger(),
	}
}

// CreateInput defines sale creation input.
type CreateInput struct {
	BuyerID    uuid.UUID
	SellerID   uuid.UUID
	PropertyID uuid.UUID
	Price      int64
	Notes      string
}

// parties holds the records a sale notification is built from.
type parties struct {
	buyer    *profile.Profile
	seller   *profile.Profile
	property *property.Property
}

// Create records a pending sale, links it to the buyer and seller, reserves
// the property, then broadcasts a NewSales notification.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Sale, error) {
	sl := domain.NewSale(input.BuyerID, input.SellerID, input.PropertyID, input.Price)
	sl.Notes = input.Notes
	if err := sl.Validate(); err != nil {
		return nil, err
	}

	var pt parties
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		var err error
		if pt.buyer, pt.seller, err = loadProfiles(ctx, repos, sl); err != nil {
			return err
		}
		if err := repos.Sales.Create(ctx, sl); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		if err := repos.Profiles.AddSale(ctx, sl.Parties(), sl.SaleID); err != nil {
			return fmt.Errorf("failed to link sale to profiles: %w", err)
		}
		pt.property, err = s.ledger.SetPropertyStatus(ctx, repos.Properties, sl.PropertyID, property.StatusReserved)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("property_id", input.PropertyID.String()).Msg("sale creation failed")
		return nil, err
	}

	s.logger.Info().
		Str("sale_id", sl.SaleID.String()).
		Str("property_id", sl.PropertyID.String()).
		Msg("sale created")
	s.notify(sl, pt, notification.EventNewSales)
	return sl, nil
}

func (s *Service) Get(ctx context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	sl, err := s.tx.Repos().Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, saleID)
	}
	return sl, nil
}

// Update patches price and notes, leaves status alone, and re-broadcasts an
// UpdatedSales notification.
func (s *Service) Update(ctx context.Context, saleID uuid.UUID, patch domain.Patch) (*domain.Sale, error) {
	var (
		sl *domain.Sale
		pt parties
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		loaded, err := load(ctx, repos, saleID)
		if err != nil {
			return err
		}
		patch.Apply(loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		if err := repos.Sales.Update(ctx, loaded); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		if pt.buyer, pt.seller, err = loadProfiles(ctx, repos, loaded); err != nil {
			return err
		}
		if pt.property, err = repos.Properties.GetByID(ctx, loaded.PropertyID); err != nil {
			return err
		}
		if pt.property == nil {
			return fmt.Errorf("%w: %s", property.ErrNotFound, loaded.PropertyID)
		}
		sl = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(sl, pt, notification.EventUpdatedSales)
	return sl, nil
}

// Accept completes a pending sale and marks the property sold. No
// notification is sent.
func (s *Service) Accept(ctx context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	return s.transition(ctx, saleID, (*domain.Sale).Complete, property.StatusSold)
}

// Decline declines the sale and frees the property. No notification is sent.
func (s *Service) Decline(ctx context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	return s.transition(ctx, saleID, func(sl *domain.Sale) error {
		sl.Decline()
		return nil
	}, property.StatusFree)
}

// Delete removes the sale, frees the property and unlinks the sale from the
// buyer and seller.
func (s *Service) Delete(ctx context.Context, saleID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		sl, err := load(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if err := repos.Sales.Delete(ctx, saleID); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		if _, err := s.ledger.SetPropertyStatus(ctx, repos.Properties, sl.PropertyID, property.StatusFree); err != nil {
			return err
		}
		if err := repos.Profiles.RemoveSale(ctx, sl.Parties(), saleID); err != nil {
			return fmt.Errorf("failed to unlink sale from profiles: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("sale_id", saleID.String()).Msg("sale deleted")
	return nil
}

func (s *Service) transition(
	ctx context.Context,
	saleID uuid.UUID,
	apply func(*domain.Sale) error,
	target property.Status,
) (*domain.Sale, error) {
	var sl *domain.Sale
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos txn.Repositories) error {
		loaded, err := load(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if err := apply(loaded); err != nil {
			return fmt.Errorf("%w: from %s", err, loaded.Status)
		}
		if err := repos.Sales.Update(ctx, loaded); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		if _, err := s.ledger.SetPropertyStatus(ctx, repos.Properties, loaded.PropertyID, target); err != nil {
			return err
		}
		sl = loaded
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("sale_id", saleID.String()).Msg("sale transition failed")
		return nil, err
	}
	s.logger.Info().
		Str("sale_id", sl.SaleID.String()).
		Str("status", string(sl.Status)).
		Msg("sale transitioned")
	return sl, nil
}

func (s *Service) notify(sl *domain.Sale, pt parties, event notification.Event) {
	n := s.dispatcher.BuildNotification(pt.buyer, pt.seller, pt.property, event, notification.TypeBooking)
	s.dispatcher.Broadcast(sl, n)
}

func load(ctx context.Context, repos txn.Repositories, saleID uuid.UUID) (*domain.Sale, error) {
	sl, err := repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, saleID)
	}
	return sl, nil
}

func loadProfiles(ctx context.Context, repos txn.Repositories, sl *domain.Sale) (*profile.Profile, *profile.Profile, error) {
	buyer, err := repos.Profiles.GetByID(ctx, sl.BuyerID)
	if err != nil {
		return nil, nil, err
	}
	if buyer == nil {
		return nil, nil, fmt.Errorf("%w: buyer %s", profile.ErrNotFound, sl.BuyerID)
	}
	seller, err := repos.Profiles.GetByID(ctx, sl.SellerID)
	if err != nil {
		return nil, nil, err
	}
	if seller == nil {
		return nil, nil, fmt.Errorf("%w: seller %s", profile.ErrNotFound, sl.SellerID)
	}
	return buyer, seller, nil
}
