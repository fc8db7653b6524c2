package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riasat97/instrument-learning-academy-server/internal/handlers"
	"github.com/riasat97/instrument-learning-academy-server/internal/middleware"
	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

type Handlers struct {
	Tokens         *handlers.TokenHandler
	Users          *handlers.UserHandler
	Classes        *handlers.ClassHandler
	StudentClasses *handlers.StudentClassHandler
	Payments       *handlers.PaymentHandler
	Stats          *handlers.StatsHandler
}

func SetupRouter(mw *middleware.Middleware, h Handlers) *mux.Router {
	router := mux.NewRouter()

	authed := func(next http.HandlerFunc) http.Handler {
		return mw.RequireAuth(next)
	}
	gated := func(role models.UserRole, next http.HandlerFunc) http.Handler {
		return mw.RequireAuth(mw.RequireRole(role)(next))
	}

	// Liveness
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ILA is running"))
	}).Methods("GET")

	// Tokens
	router.HandleFunc("/jwt", h.Tokens.Issue).Methods("POST")

	// Users
	router.HandleFunc("/users", h.Users.Create).Methods("POST")
	router.Handle("/users", gated(models.RoleAdmin, h.Users.List)).Methods("GET")
	router.Handle("/users/has-role/{email}", authed(h.Users.HasRole)).Methods("GET")
	router.HandleFunc("/users/check-role/{email}", h.Users.CheckRole).Methods("GET")
	router.Handle("/users/admin/{id}", gated(models.RoleAdmin, h.Users.SetRole)).Methods("PATCH")
	router.Handle("/users/{email}", gated(models.RoleAdmin, h.Users.Delete)).Methods("DELETE")

	// Classes
	router.HandleFunc("/classes", h.Classes.List).Methods("GET")
	router.Handle("/classes", gated(models.RoleInstructor, h.Classes.Create)).Methods("POST")
	router.Handle("/classes/{classId}", gated(models.RoleInstructor, h.Classes.Update)).Methods("PATCH")
	router.Handle("/classes/{classId}/statuses/{status}", gated(models.RoleAdmin, h.Classes.SetStatus)).Methods("PATCH")
	router.Handle("/classes/{classId}/feedback", gated(models.RoleAdmin, h.Classes.SetFeedback)).Methods("PATCH")
	router.HandleFunc("/classes/{classId}", h.Classes.Get).Methods("GET")
	router.Handle("/classes/{id}", gated(models.RoleInstructor, h.Classes.Delete)).Methods("DELETE")

	// Enrollment
	router.Handle("/student-classes", gated(models.RoleStudent, h.StudentClasses.Select)).Methods("POST")
	router.HandleFunc("/students/{studentId}/classes", h.StudentClasses.ListForStudent).Methods("GET")
	router.Handle("/students/{email}/payments", gated(models.RoleStudent, h.Payments.History)).Methods("GET")
	router.Handle("/students/{studentId}/classes/{classId}", gated(models.RoleStudent, h.StudentClasses.RemoveSelection)).Methods("DELETE")
	router.HandleFunc("/students/{studentId}/test", h.StudentClasses.ListDetailed).Methods("GET")

	// Payments
	router.Handle("/create-payment-intent", authed(h.Payments.CreateIntent)).Methods("POST")
	router.Handle("/payments", authed(h.Payments.Record)).Methods("POST")

	// Public aggregates
	router.Handle("/instructors/{email}/classes", gated(models.RoleInstructor, h.Stats.InstructorClasses)).Methods("GET")
	router.HandleFunc("/instructors", h.Stats.Instructors).Methods("GET")
	router.HandleFunc("/top-classes", h.Stats.TopClasses).Methods("GET")
	router.HandleFunc("/app-stats", h.Stats.AppStats).Methods("GET")

	return router
}
