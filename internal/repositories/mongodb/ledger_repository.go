package mongodb

import (
	"context"
	"errors"
	"log"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure LedgerRepository implements the interface
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository handles MongoDB operations for spin ledgers
type LedgerRepository struct {
	collection *mongo.Collection
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		collection: db.Collection("ledgers"),
	}
}

// Find finds a ledger by normalized phone number. Missing and undecodable
// documents both surface as (nil, nil): the ledger is a history aid and a
// corrupt record must read as "no history".
func (r *LedgerRepository) Find(ctx context.Context, phone string) (*models.SpinLedger, error) {
	var ledger models.SpinLedger
	filter := bson.M{"_id": phone}
	err := r.collection.FindOne(ctx, filter).Decode(&ledger)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Printf("ledger read for %s failed, treating as empty: %v", phone, err)
		return nil, nil
	}
	return &ledger, nil
}

// Upsert overwrites the ledger for its phone number, last writer wins
func (r *LedgerRepository) Upsert(ctx context.Context, ledger *models.SpinLedger) error {
	filter := bson.M{"_id": ledger.Phone}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, ledger, opts)
	return err
}
