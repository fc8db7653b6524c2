package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riasat97/instrument-learning-academy-server/internal/middleware"
	"github.com/riasat97/instrument-learning-academy-server/internal/models"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
)

type UserHandler struct {
	users store.Users
}

func NewUserHandler(users store.Users) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a user on first sign-in. Idempotent by email: repeated
// calls return the already-exists indicator and leave the stored document
// untouched.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if user.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	created, err := h.users.Create(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "user already exists"})
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// HasRole is the authenticated self-check: it answers whether the stored
// role of the path email equals the candidate role. A caller asking about
// an email other than their own is rejected outright.
func (h *UserHandler) HasRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	role := models.UserRole(r.URL.Query().Get("role"))

	caller, ok := middleware.EmailFromContext(r.Context())
	if !ok || caller != email {
		writeJSON(w, http.StatusForbidden, map[string]bool{"role": false})
		return
	}

	stored, err := h.users.RoleByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"role": stored == role})
}

// CheckRole is the public variant used for role display; no token required.
func (h *UserHandler) CheckRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	role := models.UserRole(r.URL.Query().Get("role"))

	stored, err := h.users.RoleByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"role": stored == role})
}

// SetRole assigns the role in the query, defaulting to student when omitted.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	role := models.UserRole(r.URL.Query().Get("role"))
	if role == "" {
		role = models.RoleStudent
	}

	modified, err := h.users.SetRole(r.Context(), id, role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to set role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	deleted, err := h.users.DeleteByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
