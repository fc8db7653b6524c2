package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
	"github.com/riasat97/instrument-learning-academy-server/internal/utils"
)

type ClassHandler struct {
	classes store.Classes
	mailer  *utils.Mailer
}

func NewClassHandler(classes store.Classes, mailer *utils.Mailer) *ClassHandler {
	return &ClassHandler{classes: classes, mailer: mailer}
}

// List returns all classes, optionally filtered by status.
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.ClassStatus(r.URL.Query().Get("status"))
	classes, err := h.classes.List(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch classes")
		return
	}
	if classes == nil {
		classes = []models.Class{}
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classId"]
	class, err := h.classes.ByID(r.Context(), classID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// Create inserts a new class. Every class starts in pending regardless of
// what the caller supplies; only an admin moves it out of that state.
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var class models.Class
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if class.ClassName == "" || class.InstructorEmail == "" {
		writeError(w, http.StatusBadRequest, "className and instructorEmail are required")
		return
	}
	class.Status = models.StatusPending
	class.Feedback = ""

	if err := h.classes.Insert(r.Context(), &class); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create class")
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

// Update replaces the instructor-editable fields. Status defaults back to
// pending when unset and must otherwise be one of the legal states.
func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classId"]

	var class models.Class
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if class.Status == "" {
		class.Status = models.StatusPending
	}
	if !models.ValidStatus(class.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	modified, err := h.classes.Update(r.Context(), classID, class)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update class")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

// SetStatus moves a class between the pending/approved/denied states.
func (h *ClassHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	classID := vars["classId"]
	status := models.ClassStatus(vars["status"])
	if !models.ValidStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	class, err := h.classes.ByID(r.Context(), classID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	modified, err := h.classes.SetStatus(r.Context(), classID, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	if class != nil && h.mailer.Enabled() {
		go h.notifyStatusChange(class, status)
	}
	writeJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

// SetFeedback attaches admin feedback to a class.
func (h *ClassHandler) SetFeedback(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classId"]

	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	modified, err := h.classes.SetFeedback(r.Context(), classID, body.Feedback)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["id"]

	deleted, err := h.classes.Delete(r.Context(), classID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete class")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

func (h *ClassHandler) notifyStatusChange(class *models.Class, status models.ClassStatus) {
	subject := fmt.Sprintf("Your class %q is now %s", class.ClassName, status)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>The status of your class <b>%s</b> changed to <b>%s</b>.</p>",
		class.InstructorName, class.ClassName, status)
	_ = h.mailer.Send(class.InstructorEmail, subject, body)
}
