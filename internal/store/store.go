package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

// Users is the user-collection surface consumed by handlers and the role
// middleware. Lookups return (nil, nil) when no document matches; callers
// render absent documents as null rather than a distinct not-found error.
type Users interface {
	Create(ctx context.Context, user models.User) (created bool, err error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	RoleByEmail(ctx context.Context, email string) (models.UserRole, error)
	All(ctx context.Context) ([]models.User, error)
	ByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	SetRole(ctx context.Context, id string, role models.UserRole) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type Classes interface {
	Insert(ctx context.Context, class *models.Class) error
	List(ctx context.Context, status models.ClassStatus) ([]models.Class, error)
	ByID(ctx context.Context, id string) (*models.Class, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Class, error)
	ByInstructor(ctx context.Context, email string) ([]models.Class, error)
	Update(ctx context.Context, id string, class models.Class) (int64, error)
	SetStatus(ctx context.Context, id string, status models.ClassStatus) (int64, error)
	SetFeedback(ctx context.Context, id, feedback string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	InstructorStats(ctx context.Context, emails []string) ([]InstructorStats, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type Enrollments interface {
	// Select inserts a selection record; exists is true when the
	// (studentId, classId) pair is already present.
	Select(ctx context.Context, sc models.StudentClass) (exists bool, err error)
	ByStudent(ctx context.Context, studentID string, enrolled bool) ([]models.StudentClass, error)
	RemoveSelection(ctx context.Context, studentID, classID string) (int64, error)
	CountsByClass(ctx context.Context, classIDs []string, enrolledOnly bool, limit int64) ([]ClassEnrollment, error)
	WithClassDetails(ctx context.Context, studentID string) ([]StudentClassDetail, error)
}

type Payments interface {
	HistoryByEmail(ctx context.Context, email string) ([]models.Payment, error)
	EstimatedCount(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

// PaymentRecorder applies the three payment effects (ledger insert, seat
// decrement, enrollment flip) as a single transactional unit.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, payment models.Payment) error
}

// InstructorStats is one row of the approved-classes-per-instructor group.
type InstructorStats struct {
	Email           string   `bson:"_id"`
	NumberOfClasses int      `bson:"numberOfClasses"`
	ClassesTaken    []string `bson:"classesTaken"`
}

// ClassEnrollment is one row of the enrollments-per-class group.
type ClassEnrollment struct {
	ClassID string `bson:"_id"`
	Count   int    `bson:"count"`
}

// ClassSummary is the projected subset of class fields returned by the
// enrollment aggregation listing.
type ClassSummary struct {
	ClassName       string  `bson:"className" json:"className"`
	ClassImage      string  `bson:"classImage" json:"classImage"`
	Price           float64 `bson:"price" json:"price"`
	AvailableSeats  int     `bson:"availableSeats" json:"availableSeats"`
	InstructorName  string  `bson:"instructorName" json:"instructorName"`
	InstructorEmail string  `bson:"instructorEmail" json:"instructorEmail"`
}

// StudentClassDetail is one flattened row per enrollment record with its
// joined class projection.
type StudentClassDetail struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Class ClassSummary `bson:"class" json:"class"`
}
