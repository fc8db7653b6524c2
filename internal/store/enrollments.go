package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

type EnrollmentStore struct {
	coll *mongo.Collection
}

// Select inserts a selection record. The unique (studentId, classId) index
// makes the insert atomic: a duplicate selection surfaces as a key conflict
// rather than racing a prior existence check.
func (s *EnrollmentStore) Select(ctx context.Context, sc models.StudentClass) (bool, error) {
	sc.ID = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, sc)
	if mongo.IsDuplicateKeyError(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *EnrollmentStore) ByStudent(ctx context.Context, studentID string, enrolled bool) ([]models.StudentClass, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"studentId": studentID, "enrolled": enrolled})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.StudentClass
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RemoveSelection deletes a pre-payment selection. The enrolled=false filter
// keeps a paid enrollment from being removed through this path.
func (s *EnrollmentStore) RemoveSelection(ctx context.Context, studentID, classID string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{
		"studentId": studentID,
		"classId":   classID,
		"enrolled":  false,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountsByClass groups enrollment records per class, descending by count.
// A positive limit caps the result.
func (s *EnrollmentStore) CountsByClass(ctx context.Context, classIDs []string, enrolledOnly bool, limit int64) ([]ClassEnrollment, error) {
	match := bson.M{"classId": bson.M{"$in": classIDs}}
	if enrolledOnly {
		match["enrolled"] = true
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$classId",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []ClassEnrollment
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// WithClassDetails joins each enrollment record of a student to its class
// document and projects the public class fields, one row per record.
// Enrollment records store the class id as a hex string, so the lookup
// converts it before comparing against the class _id.
func (s *EnrollmentStore) WithClassDetails(ctx context.Context, studentID string) ([]StudentClassDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"studentId": studentID}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "classes",
			"let":  bson.M{"cid": "$classId"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr": bson.M{"$eq": bson.A{"$_id", bson.M{"$toObjectId": "$$cid"}}},
				}},
			},
			"as": "class",
		}}},
		{{Key: "$unwind", Value: "$class"}},
		{{Key: "$project", Value: bson.M{
			"class.className":       1,
			"class.classImage":      1,
			"class.price":           1,
			"class.availableSeats":  1,
			"class.instructorName":  1,
			"class.instructorEmail": 1,
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []StudentClassDetail
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
