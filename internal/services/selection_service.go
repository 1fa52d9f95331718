package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/brendimo/spinwheel-backend/internal/config"
	"github.com/brendimo/spinwheel-backend/internal/models"
)

// SyntheticIDPrefix marks gifts synthesized when a designated identifier is
// missing from the live catalog, so they stand out in logs and responses.
const SyntheticIDPrefix = "synthetic-"

// SelectionService picks the prize for a spin. The first three spins of a
// day are scripted; later spins use weighted random selection. Selection
// never fails: a missing catalog entry degrades to a synthesized gift.
type SelectionService interface {
	SelectPrize(ctx context.Context, ordinal int) models.Gift
}

type selectionService struct {
	catalog CatalogService
	wheel   config.WheelConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelectionService creates a new SelectionService implementation
func NewSelectionService(catalog CatalogService, wheel config.WheelConfig) SelectionService {
	return NewSelectionServiceWithSource(catalog, wheel, rand.NewSource(time.Now().UnixNano()))
}

// NewSelectionServiceWithSource creates a SelectionService with an explicit
// randomness source, so tests can pin or sweep the draws
func NewSelectionServiceWithSource(catalog CatalogService, wheel config.WheelConfig, src rand.Source) SelectionService {
	return &selectionService{
		catalog: catalog,
		wheel:   wheel,
		rng:     rand.New(src),
	}
}

// SelectPrize selects the gift for the given spin-of-the-day ordinal
func (s *selectionService) SelectPrize(ctx context.Context, ordinal int) models.Gift {
	switch {
	case ordinal <= 1:
		// scripted no-win, no randomness involved
		return s.designated(ctx, s.wheel.FirstSpinGiftID, models.TierF)
	case ordinal == 2:
		return s.designated(ctx, s.wheel.SecondSpinGiftID, models.TierB)
	case ordinal == 3:
		return s.consolation(ctx)
	default:
		return s.weighted(ctx)
	}
}

// designated resolves a scripted gift by stable identifier
func (s *selectionService) designated(ctx context.Context, id string, fallbackTier models.Tier) models.Gift {
	gift, err := s.catalog.GetGift(ctx, id)
	if err != nil {
		return synthesize(id, fallbackTier)
	}
	return *gift
}

// consolation picks uniformly from the fixed third-spin menu. The configured
// weights are deliberately ignored here.
func (s *selectionService) consolation(ctx context.Context) models.Gift {
	ids := s.wheel.ConsolationGiftIDs
	if len(ids) == 0 {
		return s.weighted(ctx)
	}
	id := ids[s.intn(len(ids))]
	return s.designated(ctx, id, models.TierC)
}

// weighted performs a single-draw weighted walk over the offerable pool.
// A pool whose total weight is zero degrades to uniform selection; the
// caller must always get a gift back.
func (s *selectionService) weighted(ctx context.Context) models.Gift {
	pool, err := s.catalog.WheelPool(ctx)
	if err != nil || len(pool) == 0 {
		return synthesize(s.wheel.FirstSpinGiftID, models.TierF)
	}

	total := 0.0
	for _, g := range pool {
		total += g.Weight
	}
	if total <= 0 {
		return pool[s.intn(len(pool))]
	}

	r := s.float64() * total
	acc := 0.0
	for _, g := range pool {
		acc += g.Weight
		if r <= acc {
			return g
		}
	}
	return pool[len(pool)-1]
}

// synthesize builds a stand-in gift for an identifier absent from the live
// catalog. Display data comes from the built-in catalog when available.
func synthesize(id string, fallbackTier models.Tier) models.Gift {
	for _, g := range models.DefaultCatalog() {
		if g.ID == id {
			return models.Gift{
				ID:   SyntheticIDPrefix + id,
				Name: g.Name,
				Tier: g.Tier,
			}
		}
	}
	return models.Gift{
		ID:   SyntheticIDPrefix + id,
		Name: id,
		Tier: fallbackTier,
	}
}

func (s *selectionService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *selectionService) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
