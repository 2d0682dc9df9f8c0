package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that count as "holds or is acquiring a seat"
// for the duplicate-registration check.
var ActiveStatuses = []EnrollmentStatus{EnrollmentPending, EnrollmentConfirmed}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodFree   PaymentMethod = "free"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

// Enrollment is one attendee's seat at one conference. The
// (attendee_id, conference_id) pair is unique in the collection.
type Enrollment struct {
	Id               primitive.ObjectID `json:"_id" bson:"_id"`
	AttendeeId       primitive.ObjectID `json:"attendee_id" bson:"attendee_id"`
	ConferenceId     primitive.ObjectID `json:"conference_id" bson:"conference_id"`
	Status           EnrollmentStatus   `json:"status" bson:"status"`
	PaymentStatus    PaymentStatus      `json:"payment_status" bson:"payment_status"`
	PaymentMethod    PaymentMethod      `json:"payment_method" bson:"payment_method"`
	PaymentReference string             `json:"payment_reference,omitempty" bson:"payment_reference,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}
