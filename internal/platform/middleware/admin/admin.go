// Package admin is the role gate layered after the access gate. It is
// stateless and does no I/O: the decision rests entirely on the identity the
// access gate attached.
package admin

import (
	"fmt"
	"log/slog"
	"net/http"

	"shopgate/internal/platform/middleware/auth"
	"shopgate/internal/users"
)

// RequireAdmin admits only authenticated users with the admin role.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.GetUser(r.Context())
			if user == nil {
				// Misordered middleware; the access gate must run first.
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized - No access token provided")
				return
			}
			if user.Role != users.RoleAdmin {
				logger.WarnContext(r.Context(), "forbidden - admin role required",
					"user_id", user.ID,
					"role", user.Role,
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Access denied - Admin only")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"message":%q}`, errCode, message))
}
