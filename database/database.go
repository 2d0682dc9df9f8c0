package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"conference-webapp/config"
)

const (
	conferencesCollection = "conferences"
	enrollmentsCollection = "enrollments"
	intentsCollection     = "payment_intents"
	usersCollection       = "users"
	speakersCollection    = "speakers"
)

// DBInit connects to MongoDB, verifies the connection and returns the
// application database handle.
func DBInit(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("db is not available: %v", err)
	}

	return client.Database(cfg.Database), nil
}

// abandonedIntentTTL bounds how long a phase-1 payment intent outlives a
// buyer who never returns from the provider. Confirmed intents are deleted
// explicitly; only abandoned ones reach the TTL.
const abandonedIntentTTL = 24 * time.Hour

// intentIndexes: the unique payment id lookup key, plus a TTL on created_at
// so abandoned intents are expired by the server instead of accumulating.
var intentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "payment_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(abandonedIntentTTL / time.Second)),
	},
}

// EnsureIndexes creates the indexes the stores rely on. The unique compound
// index on enrollments is load-bearing: it is what turns a concurrent
// duplicate registration into a detectable duplicate-key write instead of a
// silent second seat.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(enrollmentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "attendee_id", Value: 1},
			{Key: "conference_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("enrollment pair index: %w", err)
	}

	_, err = db.Collection(intentsCollection).Indexes().CreateMany(ctx, intentIndexes)
	if err != nil {
		return fmt.Errorf("payment intent indexes: %w", err)
	}

	_, err = db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("user login index: %w", err)
	}

	return nil
}
