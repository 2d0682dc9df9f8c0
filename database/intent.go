package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"conference-webapp/model"
)

// IntentCollection stores pending redirect-payment intents, keyed by the
// gateway's payment id (unique index).
type IntentCollection struct {
	coll *mongo.Collection
}

func NewIntentCollection(db *mongo.Database) *IntentCollection {
	return &IntentCollection{coll: db.Collection(intentsCollection)}
}

func (s *IntentCollection) SaveIntent(ctx context.Context, intent model.PaymentIntent) error {
	_, err := s.coll.InsertOne(ctx, intent)
	if mongo.IsDuplicateKeyError(err) {
		// same payment id saved twice; the stored record already pins the
		// same gateway intent, nothing to do
		return nil
	}
	if err != nil {
		return fmt.Errorf("save payment intent: %w", err)
	}
	return nil
}

func (s *IntentCollection) GetIntent(ctx context.Context, paymentId string) (model.PaymentIntent, bool, error) {
	var intent model.PaymentIntent
	err := s.coll.FindOne(ctx, bson.M{"payment_id": paymentId}).Decode(&intent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.PaymentIntent{}, false, nil
	}
	if err != nil {
		return model.PaymentIntent{}, false, fmt.Errorf("get payment intent: %w", err)
	}
	return intent, true, nil
}

func (s *IntentCollection) DeleteIntent(ctx context.Context, paymentId string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"payment_id": paymentId}); err != nil {
		return fmt.Errorf("delete payment intent: %w", err)
	}
	return nil
}
