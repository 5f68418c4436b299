package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{coll: database.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("reviews: failed to create indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces one review per appointment at the storage level.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workshopId", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("appointment %s has already been reviewed", review.AppointmentID)
		}
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("review not found")
		}
		return nil, fmt.Errorf("error fetching review %s: %w", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) GetByAppointment(appointmentID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching review for appointment %s: %w", appointmentID, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) Update(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	review.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": review.ID}, bson.M{"$set": review})
	if err != nil {
		return fmt.Errorf("error updating review %s: %w", review.ID, err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("review not found")
	}
	return nil
}

func (r *MongoReviewRepo) ListByWorkshop(workshopID string, statuses []string) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"workshopId": workshopID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}
