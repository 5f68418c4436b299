package commissionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikefix/database"
	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultRate applies when no override or tier matches and on lazily created
// policies.
const DefaultRate = 0.10

// MongoCommissionRepo implements CommissionRepository using MongoDB.
type MongoCommissionRepo struct {
	coll *mongo.Collection
}

// NewMongoCommissionRepo creates a new instance of CommissionRepository using MongoDB.
func NewMongoCommissionRepo() CommissionRepository {
	repo := &MongoCommissionRepo{coll: database.Collection("commissionconfigs")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("commissionconfigs: failed to create indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCommissionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetActive fetches the single active config, creating one with defaults on
// first access.
func (r *MongoCommissionRepo) GetActive() (*models.CommissionConfig, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cfg models.CommissionConfig
	err := r.coll.FindOne(ctx, bson.M{"active": true}).Decode(&cfg)
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error fetching commission config: %w", err)
	}

	now := time.Now()
	cfg = models.CommissionConfig{
		ID:                uuid.New().String(),
		DefaultRate:       DefaultRate,
		WorkshopOverrides: []models.WorkshopOverride{},
		TieredRates:       []models.TieredRate{},
		MinimumCommission: 0,
		ChangeHistory:     []models.CommissionChange{},
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := r.coll.InsertOne(ctx, &cfg); err != nil {
		// A concurrent first access may have inserted it already.
		if mongo.IsDuplicateKeyError(err) {
			if ferr := r.coll.FindOne(ctx, bson.M{"active": true}).Decode(&cfg); ferr == nil {
				return &cfg, nil
			}
		}
		return nil, fmt.Errorf("error creating default commission config: %w", err)
	}
	return &cfg, nil
}

func (r *MongoCommissionRepo) Update(cfg *models.CommissionConfig) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cfg.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": cfg.ID}, bson.M{"$set": cfg})
	if err != nil {
		return fmt.Errorf("error updating commission config: %w", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("commission config not found")
	}
	return nil
}
