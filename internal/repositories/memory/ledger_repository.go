package memory

import (
	"context"
	"sync"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
)

// Compile-time check to ensure LedgerRepository implements the interface
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository is an in-process ledger store, used in tests and when
// running without MongoDB
type LedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]*models.SpinLedger // key: normalized phone
}

// NewLedgerRepository creates a new in-memory LedgerRepository
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		ledgers: make(map[string]*models.SpinLedger),
	}
}

// Find returns a copy of the ledger for a phone, or (nil, nil) if absent
func (r *LedgerRepository) Find(ctx context.Context, phone string) (*models.SpinLedger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger, ok := r.ledgers[phone]
	if !ok {
		return nil, nil
	}

	out := &models.SpinLedger{
		Phone: ledger.Phone,
		Name:  ledger.Name,
		Spins: make([]models.SpinRecord, len(ledger.Spins)),
	}
	copy(out.Spins, ledger.Spins)
	return out, nil
}

// Upsert overwrites the stored ledger for its phone number
func (r *LedgerRepository) Upsert(ctx context.Context, ledger *models.SpinLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := &models.SpinLedger{
		Phone: ledger.Phone,
		Name:  ledger.Name,
		Spins: make([]models.SpinRecord, len(ledger.Spins)),
	}
	copy(stored.Spins, ledger.Spins)
	r.ledgers[ledger.Phone] = stored
	return nil
}
