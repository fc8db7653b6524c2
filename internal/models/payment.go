package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only ledger entry; records are never updated or
// deleted once written.
type Payment struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	Price         float64            `json:"price" bson:"price"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	ClassID       string             `json:"classId" bson:"classId"`
	ClassName     string             `json:"className,omitempty" bson:"className,omitempty"`
	StudentID     string             `json:"studentId" bson:"studentId"`
	Date          time.Time          `json:"date" bson:"date"`
}
