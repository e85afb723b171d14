package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authModel "shopgate/internal/auth/models"
	"shopgate/internal/auth/service"
	mwauth "shopgate/internal/platform/middleware/auth"
	"shopgate/internal/transport/cookies"
	"shopgate/internal/users"
	dErrors "shopgate/pkg/domain-errors"
)

// AuthService is the slice of the auth service the HTTP layer needs.
type AuthService interface {
	Signup(ctx context.Context, req *authModel.SignupRequest, meta service.RequestMeta) (*users.User, *authModel.TokenPair, error)
	Login(ctx context.Context, req *authModel.LoginRequest, meta service.RequestMeta) (*users.User, *authModel.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string, meta service.RequestMeta)
}

// AuthHandler binds the session lifecycle endpoints. Tokens travel exclusively
// via cookies; response bodies carry the identity projection or a message.
type AuthHandler struct {
	logger   *slog.Logger
	auth     AuthService
	binder   *cookies.Binder
	verifier mwauth.AccessVerifier
	loader   mwauth.UserLoader
}

func NewAuthHandler(
	auth AuthService,
	binder *cookies.Binder,
	verifier mwauth.AccessVerifier,
	loader mwauth.UserLoader,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		auth:     auth,
		binder:   binder,
		verifier: verifier,
		loader:   loader,
	}
}

// Register registers the auth routes with the chi router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Post("/refresh-token", h.handleRefresh)

	r.Group(func(pr chi.Router) {
		pr.Use(mwauth.RequireAuth(h.verifier, h.loader, h.logger))
		pr.Get("/profile", h.handleProfile)
	})
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req authModel.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, pair, err := h.auth.Signup(r.Context(), &req, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	h.binder.WriteSession(w, pair.AccessToken, pair.RefreshToken)
	writeJSON(w, http.StatusCreated, authModel.NewUserResponse(user))
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authModel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, pair, err := h.auth.Login(r.Context(), &req, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	h.binder.WriteSession(w, pair.AccessToken, pair.RefreshToken)
	writeJSON(w, http.StatusOK, authModel.NewUserResponse(user))
}

// handleLogout always succeeds. Revocation of the mirrored credential is best
// effort; the cookies are cleared regardless.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), cookies.ReadRefresh(r), requestMeta(r))
	h.binder.Clear(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := cookies.ReadRefresh(r)
	if refreshToken == "" {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "No refresh token provided"))
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	h.binder.WriteAccess(w, accessToken)
	writeMessage(w, http.StatusOK, "Token refreshed successfully")
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := mwauth.GetUser(r.Context())
	if user == nil {
		writeError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	writeJSON(w, http.StatusOK, authModel.NewUserResponse(user))
}

func requestMeta(r *http.Request) service.RequestMeta {
	return service.RequestMeta{
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
	}
}
