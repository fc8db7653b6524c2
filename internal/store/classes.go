package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

type ClassStore struct {
	coll *mongo.Collection
}

func (s *ClassStore) Insert(ctx context.Context, class *models.Class) error {
	class.ID = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, class)
	return err
}

// List returns all classes, or only those in the given status when one is
// supplied.
func (s *ClassStore) List(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []models.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *ClassStore) ByID(ctx context.Context, id string) (*models.Class, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var class models.Class
	err = s.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&class)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (s *ClassStore) ByIDs(ctx context.Context, ids []string) ([]models.Class, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []models.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *ClassStore) ByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"instructorEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []models.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Update replaces the instructor-editable fields of a class.
func (s *ClassStore) Update(ctx context.Context, id string, class models.Class) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"className":      class.ClassName,
			"classImage":     class.ClassImage,
			"price":          class.Price,
			"availableSeats": class.AvailableSeats,
			"status":         class.Status,
		},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *ClassStore) SetStatus(ctx context.Context, id string, status models.ClassStatus) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *ClassStore) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"feedback": feedback}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *ClassStore) Delete(ctx context.Context, id string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// InstructorStats groups approved classes by instructor email, counting
// classes and collecting the distinct class names per instructor.
func (s *ClassStore) InstructorStats(ctx context.Context, emails []string) ([]InstructorStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"instructorEmail": bson.M{"$in": emails},
			"status":          models.StatusApproved,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":             "$instructorEmail",
			"numberOfClasses": bson.M{"$sum": 1},
			"classesTaken":    bson.M{"$addToSet": "$className"},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []InstructorStats
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *ClassStore) EstimatedCount(ctx context.Context) (int64, error) {
	return s.coll.EstimatedDocumentCount(ctx)
}
