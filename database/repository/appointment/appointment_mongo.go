package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("appointments: failed to create indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the query indexes plus the partial unique index that
// guarantees at most one active booking per (workshop, date, time) slot, even
// under concurrent create requests.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	activeSlot := bson.M{
		"status": bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
	}
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{
				{Key: "workshopId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeSlot),
		},
		{Keys: bson.D{{Key: "cyclistId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "workshopId", Value: 1}, {Key: "date", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("slot %s %s is already booked", appt.Date, appt.Time)
		}
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("appointment not found")
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": appt.ID}, bson.M{"$set": appt})
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", appt.ID, err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("appointment not found")
	}
	return nil
}

func (r *MongoAppointmentRepo) FindSlotHolder(workshopID, date, timeSlot string, statuses []string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"workshopId": workshopID,
		"date":       date,
		"time":       timeSlot,
		"status":     bson.M{"$in": statuses},
	}
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking slot: %w", err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByWorkshopAndDate(workshopID, date string, statuses []string) ([]models.Appointment, error) {
	filter := bson.M{
		"workshopId": workshopID,
		"date":       date,
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.find(filter)
}

func (r *MongoAppointmentRepo) ListByCyclist(cyclistID string) ([]models.Appointment, error) {
	return r.find(bson.M{"cyclistId": cyclistID})
}

func (r *MongoAppointmentRepo) ListByWorkshop(workshopID string) ([]models.Appointment, error) {
	return r.find(bson.M{"workshopId": workshopID})
}

func (r *MongoAppointmentRepo) find(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}
