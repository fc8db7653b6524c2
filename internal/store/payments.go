package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

type PaymentStore struct {
	coll *mongo.Collection
}

// HistoryByEmail returns a student's ledger entries newest-first by
// insertion order.
func (s *PaymentStore) HistoryByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"email": email},
		options.Find().SetSort(bson.M{"_id": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentStore) EstimatedCount(ctx context.Context) (int64, error) {
	return s.coll.EstimatedDocumentCount(ctx)
}

// TotalRevenue sums the price field over a full scan of the ledger.
// Linear in payment count; fine at current scale.
func (s *PaymentStore) TotalRevenue(ctx context.Context) (float64, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var total float64
	for cursor.Next(ctx) {
		var payment models.Payment
		if err := cursor.Decode(&payment); err != nil {
			return 0, err
		}
		total += payment.Price
	}
	return total, cursor.Err()
}
