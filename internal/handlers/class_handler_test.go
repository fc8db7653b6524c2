package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

func TestCreateClassAlwaysStartsPending(t *testing.T) {
	classes := &fakeClasses{}
	h := NewClassHandler(classes, nil)

	body := `{"className":"Violin 101","instructorEmail":"ins@example.com","status":"approved"}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest("POST", "/classes", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := classes.classes[0].Status; got != models.StatusPending {
		t.Errorf("stored status = %q, want %q regardless of caller input", got, models.StatusPending)
	}
}

func TestSetStatusRejectsUnknownState(t *testing.T) {
	classes := &fakeClasses{}
	h := NewClassHandler(classes, nil)

	req := httptest.NewRequest("PATCH", "/classes/abc/statuses/published", nil)
	req = mux.SetURLVars(req, map[string]string{"classId": "abc", "status": "published"})

	rec := httptest.NewRecorder()
	h.SetStatus(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d for unknown state", rec.Code, http.StatusBadRequest)
	}
}

func TestStatusTransitionReflectedInFilteredList(t *testing.T) {
	classes := &fakeClasses{}
	class := &models.Class{ClassName: "Piano", InstructorEmail: "ins@example.com", Status: models.StatusPending}
	if err := classes.Insert(context.Background(), class); err != nil {
		t.Fatal(err)
	}
	h := NewClassHandler(classes, nil)
	id := class.ID.Hex()

	req := httptest.NewRequest("PATCH", "/classes/"+id+"/statuses/approved", nil)
	req = mux.SetURLVars(req, map[string]string{"classId": id, "status": "approved"})
	rec := httptest.NewRecorder()
	h.SetStatus(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("transition status = %d, want %d", rec.Code, http.StatusOK)
	}

	listStatus := func(status string) []models.Class {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest("GET", "/classes?status="+status, nil))
		var out []models.Class
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		return out
	}

	approved := listStatus("approved")
	if len(approved) != 1 || approved[0].ID != class.ID {
		t.Errorf("approved list = %v, want the transitioned class", approved)
	}
	if pending := listStatus("pending"); len(pending) != 0 {
		t.Errorf("pending list = %v, want empty after transition", pending)
	}
}

func TestUpdateClassDefaultsStatusToPending(t *testing.T) {
	classes := &fakeClasses{}
	class := &models.Class{ClassName: "Guitar", InstructorEmail: "ins@example.com", Status: models.StatusApproved}
	if err := classes.Insert(context.Background(), class); err != nil {
		t.Fatal(err)
	}
	h := NewClassHandler(classes, nil)
	id := class.ID.Hex()

	body := `{"className":"Guitar II","classImage":"img","price":25,"availableSeats":10}`
	req := httptest.NewRequest("PATCH", "/classes/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"classId": id})

	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := classes.classes[0].Status; got != models.StatusPending {
		t.Errorf("status after update = %q, want default %q", got, models.StatusPending)
	}
	if got := classes.classes[0].ClassName; got != "Guitar II" {
		t.Errorf("className = %q, want %q", got, "Guitar II")
	}
}

func TestUpdateClassRejectsInvalidStatus(t *testing.T) {
	classes := &fakeClasses{}
	h := NewClassHandler(classes, nil)

	body := `{"className":"Drums","status":"archived"}`
	req := httptest.NewRequest("PATCH", "/classes/abc", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"classId": "abc"})

	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSetFeedback(t *testing.T) {
	classes := &fakeClasses{}
	class := &models.Class{ClassName: "Cello", InstructorEmail: "ins@example.com", Status: models.StatusPending}
	if err := classes.Insert(context.Background(), class); err != nil {
		t.Fatal(err)
	}
	h := NewClassHandler(classes, nil)
	id := class.ID.Hex()

	req := httptest.NewRequest("PATCH", "/classes/"+id+"/feedback", strings.NewReader(`{"feedback":"needs a syllabus"}`))
	req = mux.SetURLVars(req, map[string]string{"classId": id})

	rec := httptest.NewRecorder()
	h.SetFeedback(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := classes.classes[0].Feedback; got != "needs a syllabus" {
		t.Errorf("feedback = %q, want %q", got, "needs a syllabus")
	}
}
