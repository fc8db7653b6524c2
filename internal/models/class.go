package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClassStatus string

const (
	StatusPending  ClassStatus = "pending"
	StatusApproved ClassStatus = "approved"
	StatusDenied   ClassStatus = "denied"
)

// ValidStatus reports whether s is one of the three legal class states.
func ValidStatus(s ClassStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

type Class struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ClassName       string             `json:"className" bson:"className"`
	ClassImage      string             `json:"classImage" bson:"classImage"`
	Price           float64            `json:"price" bson:"price"`
	AvailableSeats  int                `json:"availableSeats" bson:"availableSeats"`
	InstructorName  string             `json:"instructorName" bson:"instructorName"`
	InstructorEmail string             `json:"instructorEmail" bson:"instructorEmail"`
	Status          ClassStatus        `json:"status" bson:"status"`
	Feedback        string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
}
