package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentIntent is the durable phase-1 record of a redirect-based payment.
// It is keyed by the gateway's payment id, so a replayed callback resolves to
// the same intent, and it pins conference and buyer server-side instead of
// trusting redirect query parameters.
type PaymentIntent struct {
	PaymentId    string             `json:"payment_id" bson:"payment_id"`
	AttendeeId   primitive.ObjectID `json:"attendee_id" bson:"attendee_id"`
	ConferenceId primitive.ObjectID `json:"conference_id" bson:"conference_id"`
	Amount       float64            `json:"amount" bson:"amount"`
	Currency     Currency           `json:"currency" bson:"currency"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
