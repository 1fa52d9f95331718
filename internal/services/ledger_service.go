package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
)

// LedgerService defines the interface for per-phone spin history operations.
// The ledger is a cache/history aid, never the quota authority, so reads
// fail soft: a missing or unreadable ledger is simply empty history.
type LedgerService interface {
	LoadLedger(ctx context.Context, phone string) *models.SpinLedger
	SaveLedger(ctx context.Context, ledger *models.SpinLedger) error
	CountSpinsToday(ctx context.Context, phone string) int
	AppendSpin(ctx context.Context, phone, name string, record models.SpinRecord) (*models.SpinLedger, error)
	MarkLastTaken(ctx context.Context, phone string) error
	History(ctx context.Context, phone string) []models.SpinRecord
}

type ledgerService struct {
	ledgerRepo repositories.LedgerRepository
	now        func() time.Time
}

// NewLedgerService creates a new LedgerService implementation
func NewLedgerService(ledgerRepo repositories.LedgerRepository) LedgerService {
	return NewLedgerServiceWithClock(ledgerRepo, time.Now)
}

// NewLedgerServiceWithClock creates a LedgerService with an explicit clock,
// so tests can pin the calendar day
func NewLedgerServiceWithClock(ledgerRepo repositories.LedgerRepository, now func() time.Time) LedgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		now:        now,
	}
}

// LoadLedger returns the ledger for a phone, or nil when none exists
func (s *ledgerService) LoadLedger(ctx context.Context, phone string) *models.SpinLedger {
	ledger, err := s.ledgerRepo.Find(ctx, phone)
	if err != nil {
		log.Printf("ledger load for %s failed, treating as empty: %v", phone, err)
		return nil
	}
	return ledger
}

// SaveLedger overwrites the stored ledger, last writer wins
func (s *ledgerService) SaveLedger(ctx context.Context, ledger *models.SpinLedger) error {
	return s.ledgerRepo.Upsert(ctx, ledger)
}

// CountSpinsToday counts recorded spins whose calendar day matches today.
// The count drives prize selection only; the remote service enforces quota.
func (s *ledgerService) CountSpinsToday(ctx context.Context, phone string) int {
	ledger := s.LoadLedger(ctx, phone)
	if ledger == nil {
		return 0
	}

	now := s.now()
	y, m, d := now.Date()
	count := 0
	for _, rec := range ledger.Spins {
		ry, rm, rd := rec.Date.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			count++
		}
	}
	return count
}

// AppendSpin appends a record to the phone's ledger, creating the ledger on
// the first spin. Read-modify-write, not transactional.
func (s *ledgerService) AppendSpin(ctx context.Context, phone, name string, record models.SpinRecord) (*models.SpinLedger, error) {
	ledger := s.LoadLedger(ctx, phone)
	if ledger == nil {
		ledger = &models.SpinLedger{Phone: phone, Name: name}
	}
	ledger.Name = name
	ledger.Spins = append(ledger.Spins, record)

	if err := s.SaveLedger(ctx, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// MarkLastTaken flags the most recent spin as claimed
func (s *ledgerService) MarkLastTaken(ctx context.Context, phone string) error {
	ledger := s.LoadLedger(ctx, phone)
	if ledger == nil || len(ledger.Spins) == 0 {
		return errors.New("no spins recorded for this phone")
	}
	ledger.Spins[len(ledger.Spins)-1].Taken = true
	return s.SaveLedger(ctx, ledger)
}

// History returns the phone's spin records, newest first
func (s *ledgerService) History(ctx context.Context, phone string) []models.SpinRecord {
	ledger := s.LoadLedger(ctx, phone)
	if ledger == nil {
		return []models.SpinRecord{}
	}
	out := make([]models.SpinRecord, 0, len(ledger.Spins))
	for i := len(ledger.Spins) - 1; i >= 0; i-- {
		out = append(out, ledger.Spins[i])
	}
	return out
}
