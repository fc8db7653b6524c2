package handlers

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
)

const topClassesLimit = 6

type StatsHandler struct {
	users       store.Users
	classes     store.Classes
	enrollments store.Enrollments
	payments    store.Payments
}

func NewStatsHandler(users store.Users, classes store.Classes, enrollments store.Enrollments, payments store.Payments) *StatsHandler {
	return &StatsHandler{users: users, classes: classes, enrollments: enrollments, payments: payments}
}

type instructorProfile struct {
	PhotoURL        string   `json:"photoURL"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	NumberOfClasses int      `json:"numberOfClasses"`
	ClassesTaken    []string `json:"classesTaken"`
}

// Instructors lists every instructor with stats derived from their approved
// classes, busiest instructors first.
func (h *StatsHandler) Instructors(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.users.ByRole(r.Context(), models.RoleInstructor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	emails := make([]string, 0, len(instructors))
	for _, instructor := range instructors {
		emails = append(emails, instructor.Email)
	}
	stats, err := h.classes.InstructorStats(r.Context(), emails)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, mergeInstructorStats(instructors, stats))
}

func mergeInstructorStats(instructors []models.User, stats []store.InstructorStats) []instructorProfile {
	byEmail := make(map[string]store.InstructorStats, len(stats))
	for _, s := range stats {
		byEmail[s.Email] = s
	}

	profiles := make([]instructorProfile, 0, len(instructors))
	for _, instructor := range instructors {
		s := byEmail[instructor.Email]
		taken := s.ClassesTaken
		if taken == nil {
			taken = []string{}
		}
		profiles = append(profiles, instructorProfile{
			PhotoURL:        instructor.PhotoURL,
			Name:            instructor.Name,
			Email:           instructor.Email,
			NumberOfClasses: s.NumberOfClasses,
			ClassesTaken:    taken,
		})
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].NumberOfClasses > profiles[j].NumberOfClasses
	})
	return profiles
}

type classWithEnrollment struct {
	models.Class
	TotalEnrollment int `json:"totalEnrollment"`
}

// InstructorClasses lists an instructor's classes with the total number of
// enrollment records per class.
func (h *StatsHandler) InstructorClasses(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	classes, err := h.classes.ByInstructor(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	ids := make([]string, 0, len(classes))
	for _, class := range classes {
		ids = append(ids, class.ID.Hex())
	}
	counts, err := h.enrollments.CountsByClass(r.Context(), ids, false, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, attachEnrollmentCounts(classes, counts))
}

func attachEnrollmentCounts(classes []models.Class, counts []store.ClassEnrollment) []classWithEnrollment {
	byID := make(map[string]int, len(counts))
	for _, c := range counts {
		byID[c.ClassID] = c.Count
	}
	out := make([]classWithEnrollment, 0, len(classes))
	for _, class := range classes {
		out = append(out, classWithEnrollment{
			Class:           class,
			TotalEnrollment: byID[class.ID.Hex()],
		})
	}
	return out
}

type topClass struct {
	ClassID          primitive.ObjectID `json:"classId"`
	ClassImage       string             `json:"classImage"`
	ClassName        string             `json:"className"`
	InstructorName   string             `json:"instructorName"`
	InstructorEmail  string             `json:"instructorEmail"`
	Price            float64            `json:"price"`
	AvailableSeats   int                `json:"availableSeats"`
	Status           models.ClassStatus `json:"status"`
	NumberOfStudents int                `json:"numberOfStudents"`
}

// TopClasses returns the most-enrolled approved classes, at most six,
// descending by paid enrollment count.
func (h *StatsHandler) TopClasses(w http.ResponseWriter, r *http.Request) {
	approved, err := h.classes.List(r.Context(), models.StatusApproved)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}
	ids := make([]string, 0, len(approved))
	for _, class := range approved {
		ids = append(ids, class.ID.Hex())
	}
	counts, err := h.enrollments.CountsByClass(r.Context(), ids, true, topClassesLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	writeJSON(w, http.StatusOK, rankTopClasses(approved, counts))
}

func rankTopClasses(approved []models.Class, counts []store.ClassEnrollment) []topClass {
	byID := make(map[string]int, len(counts))
	for _, c := range counts {
		byID[c.ClassID] = c.Count
	}
	ranked := make([]topClass, 0, len(approved))
	for _, class := range approved {
		ranked = append(ranked, topClass{
			ClassID:          class.ID,
			ClassImage:       class.ClassImage,
			ClassName:        class.ClassName,
			InstructorName:   class.InstructorName,
			InstructorEmail:  class.InstructorEmail,
			Price:            class.Price,
			AvailableSeats:   class.AvailableSeats,
			Status:           class.Status,
			NumberOfStudents: byID[class.ID.Hex()],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NumberOfStudents > ranked[j].NumberOfStudents
	})
	if len(ranked) > topClassesLimit {
		ranked = ranked[:topClassesLimit]
	}
	return ranked
}

// AppStats reports approximate user/class counts and exact payment totals.
func (h *StatsHandler) AppStats(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.EstimatedCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch stats")
		return
	}
	classes, err := h.classes.EstimatedCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch stats")
		return
	}
	orders, err := h.payments.EstimatedCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch stats")
		return
	}
	revenue, err := h.payments.TotalRevenue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"revenue": revenue,
		"users":   users,
		"classes": classes,
		"orders":  orders,
	})
}
