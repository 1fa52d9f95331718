package services

import (
	"context"
	"errors"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
)

// CatalogService defines the interface for gift catalog operations
type CatalogService interface {
	GetCatalog(ctx context.Context) ([]models.Gift, error)
	GetGift(ctx context.Context, id string) (*models.Gift, error)
	// WheelPool returns the gifts offerable on the wheel, i.e. the catalog
	// without the reserved tier. Zero-weight gifts stay in the pool; they
	// render on the wheel but are never drawn by weight.
	WheelPool(ctx context.Context) ([]models.Gift, error)
	UpdateWeight(ctx context.Context, id string, weight float64) error
	EnsureSeeded(ctx context.Context) error
}

type catalogService struct {
	catalogRepo  repositories.CatalogRepository
	reservedTier models.Tier
}

// NewCatalogService creates a new CatalogService implementation
func NewCatalogService(catalogRepo repositories.CatalogRepository, reservedTier models.Tier) CatalogService {
	return &catalogService{
		catalogRepo:  catalogRepo,
		reservedTier: reservedTier,
	}
}

// GetCatalog returns the full catalog including reserved-tier entries
func (s *catalogService) GetCatalog(ctx context.Context) ([]models.Gift, error) {
	return s.catalogRepo.FindAll(ctx)
}

// GetGift returns a single gift by its stable identifier
func (s *catalogService) GetGift(ctx context.Context, id string) (*models.Gift, error) {
	return s.catalogRepo.FindByID(ctx, id)
}

// WheelPool returns the offerable pool
func (s *catalogService) WheelPool(ctx context.Context) ([]models.Gift, error) {
	gifts, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	pool := make([]models.Gift, 0, len(gifts))
	for _, g := range gifts {
		if g.Tier != s.reservedTier {
			pool = append(pool, g)
		}
	}
	return pool, nil
}

// UpdateWeight updates a gift's weight
func (s *catalogService) UpdateWeight(ctx context.Context, id string, weight float64) error {
	if weight < 0 {
		return errors.New("weight must be non-negative")
	}
	return s.catalogRepo.UpdateWeight(ctx, id, weight)
}

// EnsureSeeded loads the default catalog into an empty catalog collection
func (s *catalogService) EnsureSeeded(ctx context.Context) error {
	count, err := s.catalogRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.catalogRepo.InsertMany(ctx, models.DefaultCatalog())
}
