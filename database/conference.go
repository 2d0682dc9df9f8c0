package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"conference-webapp/model"
	"conference-webapp/registration"
)

// ErrCapacityBelowAttendees rejects a conference update that would set
// max_attendees below the number of seats already taken.
var ErrCapacityBelowAttendees = errors.New("max attendees cannot be lower than current attendees")

// ConferenceCollection is the Mongo-backed conference store. The counter
// mutations are expressed as conditional FindOneAndUpdate operations so the
// capacity decision is made by the database, not by a read-then-write in the
// caller.
type ConferenceCollection struct {
	coll        *mongo.Collection
	enrollments *mongo.Collection
	intents     *mongo.Collection
	log         zerolog.Logger
}

func NewConferenceCollection(db *mongo.Database, log zerolog.Logger) *ConferenceCollection {
	return &ConferenceCollection{
		coll:        db.Collection(conferencesCollection),
		enrollments: db.Collection(enrollmentsCollection),
		intents:     db.Collection(intentsCollection),
		log:         log,
	}
}

func (s *ConferenceCollection) GetConference(ctx context.Context, id primitive.ObjectID) (model.Conference, error) {
	var conf model.Conference
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&conf)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Conference{}, registration.ErrConferenceNotFound
	}
	if err != nil {
		return model.Conference{}, fmt.Errorf("get conference: %w", err)
	}
	return conf, nil
}

// IncrementAttendees adds one attendee only while the conference still has a
// seat, in a single atomic operation.
func (s *ConferenceCollection) IncrementAttendees(ctx context.Context, id primitive.ObjectID) (int, error) {
	filter := bson.M{
		"_id":   id,
		"$expr": bson.M{"$lt": bson.A{"$attendees", "$max_attendees"}},
	}
	update := bson.M{"$inc": bson.M{"attendees": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conf model.Conference
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conf)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// no seat left, or no such conference; tell them apart
		if _, getErr := s.GetConference(ctx, id); getErr != nil {
			return 0, getErr
		}
		return 0, registration.ErrConferenceFull
	}
	if err != nil {
		return 0, fmt.Errorf("increment attendees: %w", err)
	}
	return conf.Attendees, nil
}

// DecrementAttendees removes one attendee, clamping at zero. The clamped
// return tells the caller the counter and the enrollment set disagreed.
func (s *ConferenceCollection) DecrementAttendees(ctx context.Context, id primitive.ObjectID) (int, bool, error) {
	filter := bson.M{
		"_id":       id,
		"attendees": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"attendees": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conf model.Conference
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conf)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := s.GetConference(ctx, id); getErr != nil {
			return 0, false, getErr
		}
		return 0, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("decrement attendees: %w", err)
	}
	return conf.Attendees, false, nil
}

func (s *ConferenceCollection) ListConferences(ctx context.Context) ([]model.Conference, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	defer cur.Close(ctx)

	conferences := []model.Conference{}
	if err := cur.All(ctx, &conferences); err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	return conferences, nil
}

func (s *ConferenceCollection) CreateConference(ctx context.Context, conf model.Conference) error {
	if _, err := s.coll.InsertOne(ctx, conf); err != nil {
		return fmt.Errorf("create conference: %w", err)
	}
	return nil
}

// UpdateConference rewrites the organizer-editable fields. The attendee
// counter is never touched here; lowering max_attendees below the current
// count is rejected atomically by the update filter.
func (s *ConferenceCollection) UpdateConference(ctx context.Context, conf model.Conference) error {
	filter := bson.M{
		"_id":       conf.Id,
		"attendees": bson.M{"$lte": conf.MaxAttendees},
	}
	update := bson.M{"$set": bson.M{
		"title":         conf.Title,
		"description":   conf.Description,
		"category":      conf.Category,
		"hash_tags":     conf.HashTags,
		"location":      conf.Location,
		"image":         conf.Image,
		"start_date":    conf.StartDate,
		"end_date":      conf.EndDate,
		"ticket_price":  conf.TicketPrice,
		"currency":      conf.Currency,
		"max_attendees": conf.MaxAttendees,
		"speaker_ids":   conf.SpeakerIds,
	}}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update conference: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := s.GetConference(ctx, conf.Id); getErr != nil {
			return getErr
		}
		return ErrCapacityBelowAttendees
	}
	return nil
}

// DeleteConference removes the conference and cascades to its enrollments
// and pending payment intents, so no record can outlive the counter it is
// paired with.
func (s *ConferenceCollection) DeleteConference(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete conference: %w", err)
	}
	if res.DeletedCount == 0 {
		return registration.ErrConferenceNotFound
	}

	if _, err := s.enrollments.DeleteMany(ctx, bson.M{"conference_id": id}); err != nil {
		s.log.Error().Err(err).Str("conference_id", id.Hex()).Msg("cascade delete of enrollments failed")
	}
	if _, err := s.intents.DeleteMany(ctx, bson.M{"conference_id": id}); err != nil {
		s.log.Error().Err(err).Str("conference_id", id.Hex()).Msg("cascade delete of payment intents failed")
	}
	return nil
}
