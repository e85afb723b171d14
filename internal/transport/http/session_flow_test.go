package httptransport

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "shopgate/internal/auth/models"
	"shopgate/internal/auth/service"
	refreshtoken "shopgate/internal/auth/store/refresh-token"
	"shopgate/internal/transport/cookies"
	"shopgate/internal/users"
	"shopgate/pkg/testutil"
)

// Full-stack flow against the real service wired to in-memory stores. The
// handler-level suites cover branch behavior; this covers the cookie handoff
// between endpoints.
func TestSessionFlow(t *testing.T) {
	directory := users.NewInMemoryDirectory()
	store := refreshtoken.NewInMemoryStore()
	logger := slog.New(slog.DiscardHandler)

	svc, err := service.NewService(directory, testCodec, store, logger)
	require.NoError(t, err)

	auth := NewAuthHandler(svc, cookies.NewBinder(false), testCodec, directory, logger)
	admin := NewAdminHandler(directory, testCodec, logger)
	router := NewRouter(auth, admin, nil)

	signupBody := map[string]string{
		"email":    "flow@example.com",
		"password": "hunter22",
		"name":     "Flow Tester",
	}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/signup", signupBody))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[authModel.UserResponse](t, rr)
	assert.Equal(t, "flow@example.com", created.Email)
	assert.Equal(t, users.RoleCustomer, created.Role)

	access := testutil.Cookie(rr, cookies.AccessTokenCookie)
	refresh := testutil.Cookie(rr, cookies.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	t.Run("second signup with the same email is a 400", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/signup", signupBody))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Equal(t, "User already exists", testutil.UnmarshalErrorResponse(t, rr)["message"])
		assert.Nil(t, testutil.Cookie(rr, cookies.AccessTokenCookie))
	})

	t.Run("profile accepts the minted access cookie", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodGet, "/profile", nil)
		req.AddCookie(access)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[authModel.UserResponse](t, rr)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("refresh mints a working access token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/refresh-token", nil)
		req.AddCookie(refresh)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONContains(t, rr, "message", "Token refreshed successfully")

		fresh := testutil.Cookie(rr, cookies.AccessTokenCookie)
		require.NotNil(t, fresh)

		profileReq := testutil.NewJSONRequest(t, http.MethodGet, "/profile", nil)
		profileReq.AddCookie(fresh)
		profileRR := testutil.DoRequest(router, profileReq)
		testutil.AssertStatus(t, profileRR, http.StatusOK)
	})

	t.Run("login replaces the session and the old refresh credential dies", func(t *testing.T) {
		loginBody := map[string]string{"email": "flow@example.com", "password": "hunter22"}
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/login", loginBody))
		testutil.AssertStatus(t, rr, http.StatusOK)
		require.NotNil(t, testutil.Cookie(rr, cookies.RefreshTokenCookie))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/refresh-token", nil)
		req.AddCookie(refresh)
		rejected := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rejected, http.StatusUnauthorized)
		assert.Equal(t, "Invalid refresh token", testutil.UnmarshalErrorResponse(t, rejected)["message"])

		refresh = testutil.Cookie(rr, cookies.RefreshTokenCookie)
	})

	t.Run("logout revokes the refresh credential", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/logout", nil)
		req.AddCookie(refresh)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONContains(t, rr, "message", "Logged out successfully")

		refreshReq := testutil.NewJSONRequest(t, http.MethodPost, "/refresh-token", nil)
		refreshReq.AddCookie(refresh)
		rejected := testutil.DoRequest(router, refreshReq)
		testutil.AssertStatus(t, rejected, http.StatusUnauthorized)
	})
}
