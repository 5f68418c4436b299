package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikefix/database"
	"bikefix/models"
	"bikefix/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	repo := &MongoServiceRepo{coll: database.Collection("services")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("services: failed to create indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workshopId", Value: 1}, {Key: "active", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Create(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("service not found")
		}
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &service, nil
}

func (r *MongoServiceRepo) GetMany(ids []string) ([]models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

func (r *MongoServiceRepo) Update(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	service.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": service.ID}, bson.M{"$set": service})
	if err != nil {
		return fmt.Errorf("error updating service %s: %w", service.ID, err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("service not found")
	}
	return nil
}

func (r *MongoServiceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return utils.NewNotFoundError("service not found")
	}
	return nil
}

func (r *MongoServiceRepo) ListByWorkshop(workshopID string, activeOnly bool) ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"workshopId": workshopID}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}
