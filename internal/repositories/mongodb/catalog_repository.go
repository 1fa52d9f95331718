package mongodb

import (
	"context"

	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure CatalogRepository implements the interface
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository handles MongoDB operations for the gift catalog
type CatalogRepository struct {
	collection *mongo.Collection
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		collection: db.Collection("catalog"),
	}
}

// FindAll retrieves the full catalog
func (r *CatalogRepository) FindAll(ctx context.Context) ([]models.Gift, error) {
	var gifts []models.Gift
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &gifts); err != nil {
		return nil, err
	}
	if gifts == nil {
		gifts = []models.Gift{}
	}
	return gifts, nil
}

// FindByID finds a gift by its identifier
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*models.Gift, error) {
	var gift models.Gift
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&gift)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &gift, nil
}

// UpdateWeight updates the weight of a single gift
func (r *CatalogRepository) UpdateWeight(ctx context.Context, id string, weight float64) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"weight": weight}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// InsertMany inserts a batch of gifts
func (r *CatalogRepository) InsertMany(ctx context.Context, gifts []models.Gift) error {
	docs := make([]interface{}, 0, len(gifts))
	for _, g := range gifts {
		docs = append(docs, g)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Count returns the number of catalog entries
func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
