package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/riasat97/instrument-learning-academy-server/internal/auth"
)

type TokenHandler struct {
	tokens *auth.TokenService
}

func NewTokenHandler(tokens *auth.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue signs an access token for the identity claims supplied by the
// client after sign-in.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if claims.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	token, err := h.tokens.Generate(claims.Email, claims.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
