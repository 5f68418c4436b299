package database

import (
	"context"
	"time"

	"bikefix/config"
	"bikefix/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the shared MongoDB client, set once by InitDB.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection with a ping.
func InitDB() {
	logger := utils.GetLogger().Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	logger.Infof("connected to MongoDB, database %q", config.AppConfig.DatabaseName)
}

// Collection returns a handle on a collection in the configured database.
func Collection(name string) *mongo.Collection {
	return MongoClient.Database(config.AppConfig.DatabaseName).Collection(name)
}
