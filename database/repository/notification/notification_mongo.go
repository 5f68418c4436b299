package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"bikefix/database"
	"bikefix/models"
	"bikefix/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo creates a new instance of NotificationRepository using MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	repo := &MongoNotificationRepo{coll: database.Collection("notifications")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("notifications: failed to create indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) Create(notif *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, notif); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) ListByUser(userID string) ([]models.Notification, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifs []models.Notification
	if err := cursor.All(ctx, &notifs); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return notifs, nil
}

func (r *MongoNotificationRepo) MarkRead(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "userId": userID}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("notification not found")
	}
	return nil
}
