package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"conference-webapp/model"
	"conference-webapp/registration"
)

// EnrollmentCollection is the Mongo-backed enrollment store. The unique
// (attendee_id, conference_id) index created in EnsureIndexes backs the
// create-if-absent semantics.
type EnrollmentCollection struct {
	coll *mongo.Collection
}

func NewEnrollmentCollection(db *mongo.Database) *EnrollmentCollection {
	return &EnrollmentCollection{coll: db.Collection(enrollmentsCollection)}
}

func (s *EnrollmentCollection) CreateEnrollment(ctx context.Context, enr model.Enrollment) error {
	_, err := s.coll.InsertOne(ctx, enr)
	if mongo.IsDuplicateKeyError(err) {
		return registration.ErrAlreadyRegistered
	}
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func (s *EnrollmentCollection) GetEnrollment(ctx context.Context, id primitive.ObjectID) (model.Enrollment, error) {
	var enr model.Enrollment
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&enr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Enrollment{}, registration.ErrEnrollmentNotFound
	}
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("get enrollment: %w", err)
	}
	return enr, nil
}

func (s *EnrollmentCollection) FindEnrollment(ctx context.Context, attendeeId, conferenceId primitive.ObjectID) (model.Enrollment, bool, error) {
	filter := bson.M{
		"attendee_id":   attendeeId,
		"conference_id": conferenceId,
		"status":        bson.M{"$in": model.ActiveStatuses},
	}
	var enr model.Enrollment
	err := s.coll.FindOne(ctx, filter).Decode(&enr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Enrollment{}, false, nil
	}
	if err != nil {
		return model.Enrollment{}, false, fmt.Errorf("find enrollment: %w", err)
	}
	return enr, true, nil
}

func (s *EnrollmentCollection) ListEnrollments(ctx context.Context, attendeeId primitive.ObjectID) ([]model.Enrollment, error) {
	cur, err := s.coll.Find(ctx, bson.M{"attendee_id": attendeeId})
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	enrollments := []model.Enrollment{}
	if err := cur.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *EnrollmentCollection) DeleteEnrollment(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if res.DeletedCount == 0 {
		return registration.ErrEnrollmentNotFound
	}
	return nil
}
