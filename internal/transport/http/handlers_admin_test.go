package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "shopgate/internal/auth/models"
	"shopgate/internal/transport/cookies"
	"shopgate/internal/users"
)

func newAdminRouter(t *testing.T) (*users.InMemoryDirectory, *chi.Mux) {
	t.Helper()
	directory := users.NewInMemoryDirectory()
	handler := NewAdminHandler(directory, testCodec, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	handler.Register(r)
	return directory, r
}

func seedAdmin(t *testing.T, directory *users.InMemoryDirectory) (*users.User, *http.Cookie) {
	t.Helper()
	admin := &users.User{ID: uuid.NewString(), Name: "Root", Email: "root@example.com", Role: users.RoleAdmin}
	require.NoError(t, directory.Create(context.Background(), admin))
	tok, err := testCodec.IssueAccess(admin.ID)
	require.NoError(t, err)
	return admin, &http.Cookie{Name: cookies.AccessTokenCookie, Value: tok}
}

func TestAdminHandler_GetUser(t *testing.T) {
	directory, router := newAdminRouter(t)
	_, adminCookie := seedAdmin(t, directory)

	customer := &users.User{ID: uuid.NewString(), Name: "Shopper", Email: "shopper@example.com", Role: users.RoleCustomer}
	require.NoError(t, directory.Create(context.Background(), customer))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users/"+customer.ID, nil)
	req.AddCookie(adminCookie)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got authModel.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, customer.ID, got.ID)
	assert.Equal(t, customer.Email, got.Email)
}

func TestAdminHandler_UnknownUser(t *testing.T) {
	directory, router := newAdminRouter(t)
	_, adminCookie := seedAdmin(t, directory)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users/"+uuid.NewString(), nil)
	req.AddCookie(adminCookie)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminHandler_CustomerForbidden(t *testing.T) {
	directory, router := newAdminRouter(t)

	customer := &users.User{ID: uuid.NewString(), Name: "Shopper", Email: "shopper@example.com", Role: users.RoleCustomer}
	require.NoError(t, directory.Create(context.Background(), customer))
	tok, err := testCodec.IssueAccess(customer.ID)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users/"+customer.ID, nil)
	req.AddCookie(&http.Cookie{Name: cookies.AccessTokenCookie, Value: tok})
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Access denied - Admin only", body["message"])
}

func TestAdminHandler_Anonymous(t *testing.T) {
	_, router := newAdminRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/users/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

func TestHealthz(t *testing.T) {
	directory := users.NewInMemoryDirectory()
	logger := slog.New(slog.DiscardHandler)
	auth := NewAuthHandler(nil, cookies.NewBinder(false), testCodec, directory, logger)
	admin := NewAdminHandler(directory, testCodec, logger)

	t.Run("healthy", func(t *testing.T) {
		router := NewRouter(auth, admin, stubHealth{})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		router := NewRouter(auth, admin, stubHealth{err: errors.New("connection refused")})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("nil checker is healthy", func(t *testing.T) {
		router := NewRouter(auth, admin, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
