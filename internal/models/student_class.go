package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentClass is the enrollment join record linking a student and a class.
// The enrolled flag flips to true once payment is recorded; until then the
// record is only a selection and may be removed by the student.
type StudentClass struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	StudentID string             `json:"studentId" bson:"studentId"`
	ClassID   string             `json:"classId" bson:"classId"`
	Enrolled  bool               `json:"enrolled" bson:"enrolled"`
}
