package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

// Mongo bundles the per-collection repositories over a shared client.
type Mongo struct {
	client      *mongo.Client
	Users       *UserStore
	Classes     *ClassStore
	Enrollments *EnrollmentStore
	Payments    *PaymentStore
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	return &Mongo{
		client:      client,
		Users:       &UserStore{coll: db.Collection("users")},
		Classes:     &ClassStore{coll: db.Collection("classes")},
		Enrollments: &EnrollmentStore{coll: db.Collection("student_classes")},
		Payments:    &PaymentStore{coll: db.Collection("payments")},
	}
}

// RecordPayment runs the ledger insert, seat decrement, and enrollment flip
// inside one session transaction so a failure in any step rolls back the rest.
func (m *Mongo) RecordPayment(ctx context.Context, payment models.Payment) error {
	classID, err := primitive.ObjectIDFromHex(payment.ClassID)
	if err != nil {
		return fmt.Errorf("invalid class id %q: %w", payment.ClassID, err)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := m.Payments.coll.InsertOne(sc, payment); err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}
		_, err := m.Classes.coll.UpdateOne(sc,
			bson.M{"_id": classID},
			bson.M{"$inc": bson.M{"availableSeats": -1}})
		if err != nil {
			return nil, fmt.Errorf("decrement seats: %w", err)
		}
		_, err = m.Enrollments.coll.UpdateOne(sc,
			bson.M{"studentId": payment.StudentID, "classId": payment.ClassID},
			bson.M{"$set": bson.M{"enrolled": true}})
		if err != nil {
			return nil, fmt.Errorf("mark enrolled: %w", err)
		}
		return nil, nil
	})
	return err
}
