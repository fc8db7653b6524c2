package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

type UserStore struct {
	coll *mongo.Collection
}

// Create inserts the user unless a document with the same email already
// exists. The upsert relies on the unique email index, so concurrent calls
// for the same email cannot both insert.
func (s *UserStore) Create(ctx context.Context, user models.User) (bool, error) {
	doc := bson.M{
		"email": user.Email,
		"name":  user.Name,
	}
	if user.PhotoURL != "" {
		doc["photoURL"] = user.PhotoURL
	}
	if user.Role != "" {
		doc["role"] = user.Role
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) RoleByEmail(ctx context.Context, email string) (models.UserRole, error) {
	user, err := s.ByEmail(ctx, email)
	if err != nil || user == nil {
		return "", err
	}
	return user.Role, nil
}

func (s *UserStore) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) ByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) SetRole(ctx context.Context, id string, role models.UserRole) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *UserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *UserStore) EstimatedCount(ctx context.Context) (int64, error) {
	return s.coll.EstimatedDocumentCount(ctx)
}
