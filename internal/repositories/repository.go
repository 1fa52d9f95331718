package repositories

import (
	"context"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerRepository defines the interface for spin ledger operations.
// Find returns (nil, nil) when no ledger exists for the phone; read-side
// corruption is swallowed the same way so history loss never blocks a spin.
type LedgerRepository interface {
	Find(ctx context.Context, phone string) (*models.SpinLedger, error)
	Upsert(ctx context.Context, ledger *models.SpinLedger) error
}

// CatalogRepository defines the interface for gift catalog operations
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]models.Gift, error)
	FindByID(ctx context.Context, id string) (*models.Gift, error)
	UpdateWeight(ctx context.Context, id string, weight float64) error
	InsertMany(ctx context.Context, gifts []models.Gift) error
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
