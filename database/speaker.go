package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"conference-webapp/model"
)

var ErrSpeakerNotFound = errors.New("speaker not found")

type SpeakerCollection struct {
	coll *mongo.Collection
}

func NewSpeakerCollection(db *mongo.Database) *SpeakerCollection {
	return &SpeakerCollection{coll: db.Collection(speakersCollection)}
}

func (s *SpeakerCollection) ListSpeakers(ctx context.Context) ([]model.Speaker, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	defer cur.Close(ctx)

	speakers := []model.Speaker{}
	if err := cur.All(ctx, &speakers); err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	return speakers, nil
}

func (s *SpeakerCollection) GetSpeaker(ctx context.Context, id primitive.ObjectID) (model.Speaker, error) {
	var speaker model.Speaker
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&speaker)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Speaker{}, ErrSpeakerNotFound
	}
	if err != nil {
		return model.Speaker{}, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}

func (s *SpeakerCollection) CreateSpeaker(ctx context.Context, speaker model.Speaker) error {
	if _, err := s.coll.InsertOne(ctx, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *SpeakerCollection) UpdateSpeaker(ctx context.Context, speaker model.Speaker) error {
	update := bson.M{"$set": bson.M{
		"name":          speaker.Name,
		"surname":       speaker.Surname,
		"bio":           speaker.Bio,
		"role":          speaker.Role,
		"profile_image": speaker.ProfileImage,
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": speaker.Id}, update)
	if err != nil {
		return fmt.Errorf("update speaker: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrSpeakerNotFound
	}
	return nil
}

func (s *SpeakerCollection) DeleteSpeaker(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete speaker: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrSpeakerNotFound
	}
	return nil
}
