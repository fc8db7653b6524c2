package middleware

import (
	"net/http"

	"github.com/riasat97/instrument-learning-academy-server/internal/models"
)

// RequireRole rejects callers whose stored role does not exactly equal the
// required one. The role is re-read from the store on every request, so a
// role change takes effect on the caller's next request.
func (m *Middleware) RequireRole(role models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			stored, err := m.users.RoleByEmail(r.Context(), email)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to check role")
				return
			}
			if stored != role {
				writeError(w, http.StatusForbidden, "forbidden message")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
