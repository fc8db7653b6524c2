package handlers

import (
	"context"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
)

func newID(t *testing.T) primitive.ObjectID {
	t.Helper()
	return primitive.NewObjectID()
}

// In-memory stand-ins for the mongo repositories. They mirror the store
// semantics closely enough for handler tests: upsert-by-email, unique
// (studentId, classId) pairs, and the per-class count aggregations.

type fakeUsers struct {
	users []models.User
}

func (f *fakeUsers) Create(_ context.Context, user models.User) (bool, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return false, nil
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return true, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) RoleByEmail(ctx context.Context, email string) (models.UserRole, error) {
	user, err := f.ByEmail(ctx, email)
	if err != nil || user == nil {
		return "", err
	}
	return user.Role, nil
}

func (f *fakeUsers) All(context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUsers) ByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) SetRole(_ context.Context, id string, role models.UserRole) (int64, error) {
	for i := range f.users {
		if f.users[i].ID.Hex() == id {
			f.users[i].Role = role
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUsers) DeleteByEmail(_ context.Context, email string) (int64, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUsers) EstimatedCount(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeClasses struct {
	classes []models.Class
}

func (f *fakeClasses) Insert(_ context.Context, class *models.Class) error {
	class.ID = primitive.NewObjectID()
	f.classes = append(f.classes, *class)
	return nil
}

func (f *fakeClasses) List(_ context.Context, status models.ClassStatus) ([]models.Class, error) {
	if status == "" {
		return f.classes, nil
	}
	var out []models.Class
	for _, c := range f.classes {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClasses) ByID(_ context.Context, id string) (*models.Class, error) {
	for i := range f.classes {
		if f.classes[i].ID.Hex() == id {
			return &f.classes[i], nil
		}
	}
	return nil, nil
}

func (f *fakeClasses) ByIDs(_ context.Context, ids []string) ([]models.Class, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Class
	for _, c := range f.classes {
		if want[c.ID.Hex()] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClasses) ByInstructor(_ context.Context, email string) ([]models.Class, error) {
	var out []models.Class
	for _, c := range f.classes {
		if c.InstructorEmail == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClasses) Update(_ context.Context, id string, class models.Class) (int64, error) {
	for i := range f.classes {
		if f.classes[i].ID.Hex() == id {
			f.classes[i].ClassName = class.ClassName
			f.classes[i].ClassImage = class.ClassImage
			f.classes[i].Price = class.Price
			f.classes[i].AvailableSeats = class.AvailableSeats
			f.classes[i].Status = class.Status
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeClasses) SetStatus(_ context.Context, id string, status models.ClassStatus) (int64, error) {
	for i := range f.classes {
		if f.classes[i].ID.Hex() == id {
			f.classes[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeClasses) SetFeedback(_ context.Context, id, feedback string) (int64, error) {
	for i := range f.classes {
		if f.classes[i].ID.Hex() == id {
			f.classes[i].Feedback = feedback
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeClasses) Delete(_ context.Context, id string) (int64, error) {
	for i := range f.classes {
		if f.classes[i].ID.Hex() == id {
			f.classes = append(f.classes[:i], f.classes[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeClasses) InstructorStats(_ context.Context, emails []string) ([]store.InstructorStats, error) {
	want := make(map[string]bool, len(emails))
	for _, e := range emails {
		want[e] = true
	}
	byEmail := make(map[string]*store.InstructorStats)
	for _, c := range f.classes {
		if c.Status != models.StatusApproved || !want[c.InstructorEmail] {
			continue
		}
		s, ok := byEmail[c.InstructorEmail]
		if !ok {
			s = &store.InstructorStats{Email: c.InstructorEmail}
			byEmail[c.InstructorEmail] = s
		}
		s.NumberOfClasses++
		s.ClassesTaken = append(s.ClassesTaken, c.ClassName)
	}
	var out []store.InstructorStats
	for _, s := range byEmail {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeClasses) EstimatedCount(context.Context) (int64, error) {
	return int64(len(f.classes)), nil
}

type fakeEnrollments struct {
	records []models.StudentClass
	details []store.StudentClassDetail
}

func (f *fakeEnrollments) Select(_ context.Context, sc models.StudentClass) (bool, error) {
	for _, rec := range f.records {
		if rec.StudentID == sc.StudentID && rec.ClassID == sc.ClassID {
			return true, nil
		}
	}
	sc.ID = primitive.NewObjectID()
	f.records = append(f.records, sc)
	return false, nil
}

func (f *fakeEnrollments) ByStudent(_ context.Context, studentID string, enrolled bool) ([]models.StudentClass, error) {
	var out []models.StudentClass
	for _, rec := range f.records {
		if rec.StudentID == studentID && rec.Enrolled == enrolled {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeEnrollments) RemoveSelection(_ context.Context, studentID, classID string) (int64, error) {
	for i, rec := range f.records {
		if rec.StudentID == studentID && rec.ClassID == classID && !rec.Enrolled {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeEnrollments) CountsByClass(_ context.Context, classIDs []string, enrolledOnly bool, limit int64) ([]store.ClassEnrollment, error) {
	want := make(map[string]bool, len(classIDs))
	for _, id := range classIDs {
		want[id] = true
	}
	counts := make(map[string]int)
	for _, rec := range f.records {
		if !want[rec.ClassID] {
			continue
		}
		if enrolledOnly && !rec.Enrolled {
			continue
		}
		counts[rec.ClassID]++
	}
	out := make([]store.ClassEnrollment, 0, len(counts))
	for id, n := range counts {
		out = append(out, store.ClassEnrollment{ClassID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEnrollments) WithClassDetails(context.Context, string) ([]store.StudentClassDetail, error) {
	return f.details, nil
}

type fakePayments struct {
	payments []models.Payment
}

func (f *fakePayments) HistoryByEmail(_ context.Context, email string) ([]models.Payment, error) {
	var out []models.Payment
	for i := len(f.payments) - 1; i >= 0; i-- {
		if f.payments[i].Email == email {
			out = append(out, f.payments[i])
		}
	}
	return out, nil
}

func (f *fakePayments) EstimatedCount(context.Context) (int64, error) {
	return int64(len(f.payments)), nil
}

func (f *fakePayments) TotalRevenue(context.Context) (float64, error) {
	var total float64
	for _, p := range f.payments {
		total += p.Price
	}
	return total, nil
}

// fakeStore wires the three payment effects together the way the mongo
// transaction does.
type fakeStore struct {
	classes     *fakeClasses
	enrollments *fakeEnrollments
	payments    *fakePayments
}

func (f *fakeStore) RecordPayment(_ context.Context, payment models.Payment) error {
	f.payments.payments = append(f.payments.payments, payment)
	for i := range f.classes.classes {
		if f.classes.classes[i].ID.Hex() == payment.ClassID {
			f.classes.classes[i].AvailableSeats--
		}
	}
	for i := range f.enrollments.records {
		rec := &f.enrollments.records[i]
		if rec.StudentID == payment.StudentID && rec.ClassID == payment.ClassID {
			rec.Enrolled = true
		}
	}
	return nil
}
