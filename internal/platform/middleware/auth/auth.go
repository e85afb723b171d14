// Package auth is the request-time access gate: it verifies the access cookie,
// loads the identity behind it and attaches it to the request context. Access
// tokens are trusted on signature alone here; only the refresh endpoint
// consults the server-side store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"shopgate/internal/transport/cookies"
	"shopgate/internal/users"
	"shopgate/pkg/platform/sentinel"
)

// AccessVerifier validates an access credential and returns the user ID.
type AccessVerifier interface {
	VerifyAccess(tokenString string) (string, error)
}

// UserLoader resolves a verified user ID to the identity record.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

type contextKeyUser struct{}

// ContextKeyUser is exported for use in handlers.
var ContextKeyUser = contextKeyUser{}

// GetUser retrieves the authenticated identity from the context, or nil when
// the request did not pass the access gate.
func GetUser(ctx context.Context) *users.User {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	if !ok {
		return nil
	}
	return user
}

func writeJSONError(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"message":%q}`, errCode, message))
}

// RequireAuth gates protected routes on a valid access cookie. Expired and
// invalid tokens answer with distinct messages so clients know whether to
// call the refresh endpoint or to reauthenticate.
func RequireAuth(verifier AccessVerifier, loader UserLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString := cookies.ReadAccess(r)
			if tokenString == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized - No access token provided")
				return
			}

			userID, err := verifier.VerifyAccess(tokenString)
			if err != nil {
				if errors.Is(err, sentinel.ErrExpired) {
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized - Access token expired")
					return
				}
				logger.WarnContext(ctx, "unauthorized access - invalid token", "error", err)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized - Invalid access token")
				return
			}

			user, err := loader.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					// Token verified but the account is gone: treat as stale.
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "User not found")
					return
				}
				logger.ErrorContext(ctx, "failed to load user for access gate", "error", err, "user_id", userID)
				writeJSONError(w, http.StatusServiceUnavailable, "unavailable", "Service temporarily unavailable")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
