package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mwauth "shopgate/internal/platform/middleware/auth"
	"shopgate/internal/users"
)

func doGet(t *testing.T, user *users.User) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(slog.New(slog.DiscardHandler))(next)

	r := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if user != nil {
		r = r.WithContext(context.WithValue(r.Context(), mwauth.ContextKeyUser, user))
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)
	return rr
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	rr := doGet(t, &users.User{ID: uuid.NewString(), Role: users.RoleAdmin})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAdmin_RejectsCustomer(t *testing.T) {
	rr := doGet(t, &users.User{ID: uuid.NewString(), Role: users.RoleCustomer})

	assert.Equal(t, http.StatusForbidden, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Access denied - Admin only", body["message"])
}

func TestRequireAdmin_MissingIdentity(t *testing.T) {
	rr := doGet(t, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
