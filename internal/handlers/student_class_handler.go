package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
)

type StudentClassHandler struct {
	enrollments store.Enrollments
	classes     store.Classes
}

func NewStudentClassHandler(enrollments store.Enrollments, classes store.Classes) *StudentClassHandler {
	return &StudentClassHandler{enrollments: enrollments, classes: classes}
}

// Select records a pre-payment class selection. Re-selecting the same class
// answers {exists: true} instead of erroring.
func (h *StudentClassHandler) Select(w http.ResponseWriter, r *http.Request) {
	var sc models.StudentClass
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if sc.StudentID == "" || sc.ClassID == "" {
		writeError(w, http.StatusBadRequest, "studentId and classId are required")
		return
	}

	exists, err := h.enrollments.Select(r.Context(), sc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to select class")
		return
	}
	if exists {
		writeJSON(w, http.StatusOK, map[string]bool{"exists": true})
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

// classWithSelections is a class document with the raw enrollment records
// that reference it. Multiple records per class are possible, e.g.
// historical re-selections.
type classWithSelections struct {
	models.Class
	StudentClass []models.StudentClass `json:"studentClass"`
}

// ListForStudent joins a student's enrollment records, filtered by the
// enrolled flag, to their class documents.
func (h *StudentClassHandler) ListForStudent(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]
	enrolled := r.URL.Query().Get("enrolled") == "true"

	records, err := h.enrollments.ByStudent(r.Context(), studentID, enrolled)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch selections")
		return
	}

	classIDs := make([]string, 0, len(records))
	for _, rec := range records {
		classIDs = append(classIDs, rec.ClassID)
	}
	classes, err := h.classes.ByIDs(r.Context(), classIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch classes")
		return
	}

	writeJSON(w, http.StatusOK, combineStudentClasses(classes, records))
}

func combineStudentClasses(classes []models.Class, records []models.StudentClass) []classWithSelections {
	combined := make([]classWithSelections, 0, len(classes))
	for _, class := range classes {
		id := class.ID.Hex()
		matches := make([]models.StudentClass, 0, 1)
		for _, rec := range records {
			if rec.ClassID == id {
				matches = append(matches, rec)
			}
		}
		combined = append(combined, classWithSelections{Class: class, StudentClass: matches})
	}
	return combined
}

// ListDetailed is the aggregation variant: one flattened row per enrollment
// record with a projected subset of class fields.
func (h *StudentClassHandler) ListDetailed(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	rows, err := h.enrollments.WithClassDetails(r.Context(), studentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "an error occurred while retrieving classes")
		return
	}
	if rows == nil {
		rows = []store.StudentClassDetail{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// RemoveSelection deletes a not-yet-purchased selection by its composite key.
func (h *StudentClassHandler) RemoveSelection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deleted, err := h.enrollments.RemoveSelection(r.Context(), vars["studentId"], vars["classId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove selection")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
