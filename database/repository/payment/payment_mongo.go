package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &MongoPaymentRepo{coll: database.Collection("payments")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("payments: failed to create indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "externalId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("payment already exists for this transaction")
		}
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) GetByID(id string) (*models.Payment, error) {
	return r.findOne(bson.M{"id": id}, false)
}

func (r *MongoPaymentRepo) GetByExternalID(externalID string) (*models.Payment, error) {
	return r.findOne(bson.M{"externalId": externalID}, false)
}

func (r *MongoPaymentRepo) GetByAppointment(appointmentID string) (*models.Payment, error) {
	return r.findOne(bson.M{"appointmentId": appointmentID}, true)
}

func (r *MongoPaymentRepo) findOne(filter bson.M, nilOnMiss bool) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var payment models.Payment
	if err := r.coll.FindOne(ctx, filter).Decode(&payment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if nilOnMiss {
				return nil, nil
			}
			return nil, utils.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("error fetching payment: %w", err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) Update(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	payment.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": payment.ID}, bson.M{"$set": payment})
	if err != nil {
		return fmt.Errorf("error updating payment %s: %w", payment.ID, err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("payment not found")
	}
	return nil
}
