package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/riasat97/instrument-learning-academy-server/internal/middleware"
	"github.com/riasat97/instrument-learning-academy-server/internal/models"
	"github.com/riasat97/instrument-learning-academy-server/internal/payments"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
)

type PaymentHandler struct {
	gateway  payments.IntentCreator
	recorder store.PaymentRecorder
	payments store.Payments
}

func NewPaymentHandler(gateway payments.IntentCreator, recorder store.PaymentRecorder, history store.Payments) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, recorder: recorder, payments: history}
}

// CreateIntent stages a card charge with the gateway; the client completes
// the charge with the returned secret and records the result via Record.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	clientSecret, err := h.gateway.CreateIntent(r.Context(), payments.AmountInCents(body.Price))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create payment intent")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// Record writes the ledger entry and applies the seat decrement and
// enrollment flip; the store runs all three as one transaction.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payment.ClassID == "" || payment.StudentID == "" {
		writeError(w, http.StatusBadRequest, "classId and studentId are required")
		return
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	if err := h.recorder.RecordPayment(r.Context(), payment); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"recorded": true})
}

// History returns the caller's own ledger entries, newest first.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	caller, ok := middleware.EmailFromContext(r.Context())
	if !ok || caller != email {
		writeError(w, http.StatusForbidden, "forbidden message")
		return
	}

	history, err := h.payments.HistoryByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}
	if history == nil {
		history = []models.Payment{}
	}
	writeJSON(w, http.StatusOK, history)
}
