package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/estate-hub/estate-hub/internal/domain/property"
)

var ErrInvalidTitle = errors.New("title is required")

// Service registers properties. Status is never written here; the ledger
// owns it.
type Service struct {
	repo   domain.Repository
	logger zerolog.Logger
}

func NewService(repo domain.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "property").Logger(),
	}
}

// Create lists a new FREE property owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, title string) (*domain.Property, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	p := domain.NewProperty(ownerID, title)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	s.logger.Info().Str("property_id", p.PropertyID.String()).Str("owner_id", ownerID.String()).Msg("property created")
	return p, nil
}

func (s *Service) Get(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, propertyID)
	}
	return p, nil
}
