package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/riasat97/instrument-learning-academy-server/internal/auth"
	"github.com/riasat97/instrument-learning-academy-server/internal/store"
)

type contextKey string

const emailKey contextKey = "email"

// EmailFromContext returns the verified caller email attached by RequireAuth.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// ContextWithEmail attaches a caller email the way RequireAuth does.
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// Middleware gates routes on token validity and on the caller's stored role.
type Middleware struct {
	tokens *auth.TokenService
	users  store.Users
}

func New(tokens *auth.TokenService, users store.Users) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireAuth verifies the Authorization bearer token and attaches the
// decoded email to the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}
		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}
		ctx := ContextWithEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
	})
}
