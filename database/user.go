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

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLoginTaken   = errors.New("login already taken")
)

type UserCollection struct {
	coll *mongo.Collection
}

func NewUserCollection(db *mongo.Database) *UserCollection {
	return &UserCollection{coll: db.Collection(usersCollection)}
}

func (s *UserCollection) GetUser(ctx context.Context, id primitive.ObjectID) (model.UserData, error) {
	var user model.UserData
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.UserData{}, ErrUserNotFound
	}
	if err != nil {
		return model.UserData{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserCollection) GetUserByLogin(ctx context.Context, login string) (model.UserData, error) {
	var user model.UserData
	err := s.coll.FindOne(ctx, bson.M{"login": login}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.UserData{}, ErrUserNotFound
	}
	if err != nil {
		return model.UserData{}, fmt.Errorf("get user by login: %w", err)
	}
	return user, nil
}

func (s *UserCollection) CreateUser(ctx context.Context, user model.UserData) error {
	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrLoginTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
