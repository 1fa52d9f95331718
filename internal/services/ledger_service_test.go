package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories/memory"
)

func TestLedgerService_CountSpinsToday(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)
	svc := NewLedgerServiceWithClock(memory.NewLedgerRepository(), func() time.Time { return now })
	const phone = "+994501234567"

	t.Run("fresh phone has zero spins", func(t *testing.T) {
		if got := svc.CountSpinsToday(ctx, phone); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})

	t.Run("each append on the current day increments by one", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			rec := models.SpinRecord{Date: now, SpinNumber: i, GiftID: "B2", GiftName: "54 AZN", Tier: models.TierB}
			if _, err := svc.AppendSpin(ctx, phone, "Aysel", rec); err != nil {
				t.Fatalf("append %d: %v", i, err)
			}
			if got := svc.CountSpinsToday(ctx, phone); got != i {
				t.Fatalf("after append %d: expected %d, got %d", i, i, got)
			}
		}
	})

	t.Run("yesterday's spins are not counted", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		rec := models.SpinRecord{Date: yesterday, SpinNumber: 4, GiftID: "C1", GiftName: "57 AZN", Tier: models.TierC}
		if _, err := svc.AppendSpin(ctx, phone, "Aysel", rec); err != nil {
			t.Fatalf("append: %v", err)
		}
		if got := svc.CountSpinsToday(ctx, phone); got != 3 {
			t.Fatalf("expected 3 (yesterday excluded), got %d", got)
		}
	})

	t.Run("late-night spin still counts on its local day", func(t *testing.T) {
		rec := models.SpinRecord{Date: time.Date(2024, 6, 15, 23, 59, 0, 0, time.Local), SpinNumber: 5, GiftID: "D3", GiftName: "59 AZN", Tier: models.TierD}
		if _, err := svc.AppendSpin(ctx, phone, "Aysel", rec); err != nil {
			t.Fatalf("append: %v", err)
		}
		if got := svc.CountSpinsToday(ctx, phone); got != 4 {
			t.Fatalf("expected 4, got %d", got)
		}
	})
}

func TestLedgerService_LoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	svc := NewLedgerServiceWithClock(memory.NewLedgerRepository(), func() time.Time { return now })
	const phone = "+994551112233"

	rec := models.SpinRecord{Date: now, SpinNumber: 1, GiftID: "F1", GiftName: "Qazanmadın", Tier: models.TierF}
	if _, err := svc.AppendSpin(ctx, phone, "Murad", rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	first := svc.LoadLedger(ctx, phone)
	second := svc.LoadLedger(ctx, phone)
	if first == nil || second == nil {
		t.Fatal("expected a ledger on both loads")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive loads differ: %+v vs %+v", first, second)
	}
}

func TestLedgerService_MarkLastTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	svc := NewLedgerServiceWithClock(memory.NewLedgerRepository(), func() time.Time { return now })
	const phone = "+994501234567"

	t.Run("fails with no history", func(t *testing.T) {
		if err := svc.MarkLastTaken(ctx, phone); err == nil {
			t.Fatal("expected an error for an empty ledger")
		}
	})

	t.Run("flags only the most recent spin", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			rec := models.SpinRecord{Date: now, SpinNumber: i, GiftID: "B2", GiftName: "54 AZN", Tier: models.TierB}
			if _, err := svc.AppendSpin(ctx, phone, "Aysel", rec); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
		if err := svc.MarkLastTaken(ctx, phone); err != nil {
			t.Fatalf("mark: %v", err)
		}

		ledger := svc.LoadLedger(ctx, phone)
		if ledger.Spins[0].Taken {
			t.Error("first spin should not be flagged")
		}
		if !ledger.Spins[1].Taken {
			t.Error("last spin should be flagged")
		}
	})
}

func TestLedgerService_HistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	svc := NewLedgerServiceWithClock(memory.NewLedgerRepository(), func() time.Time { return now })
	const phone = "+994501234567"

	if got := svc.History(ctx, phone); len(got) != 0 {
		t.Fatalf("expected empty history, got %d records", len(got))
	}

	for i := 1; i <= 3; i++ {
		rec := models.SpinRecord{Date: now.Add(time.Duration(i) * time.Minute), SpinNumber: i, GiftID: "B2", GiftName: "54 AZN", Tier: models.TierB}
		if _, err := svc.AppendSpin(ctx, phone, "Aysel", rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got := svc.History(ctx, phone)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].SpinNumber != 3 || got[2].SpinNumber != 1 {
		t.Errorf("history not newest-first: %+v", got)
	}
}
