package httptransport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authModel "shopgate/internal/auth/models"
	mwadmin "shopgate/internal/platform/middleware/admin"
	mwauth "shopgate/internal/platform/middleware/auth"
	dErrors "shopgate/pkg/domain-errors"
	"shopgate/pkg/platform/sentinel"
)

// AdminHandler exposes endpoints restricted to the admin role.
type AdminHandler struct {
	logger   *slog.Logger
	users    mwauth.UserLoader
	verifier mwauth.AccessVerifier
}

func NewAdminHandler(users mwauth.UserLoader, verifier mwauth.AccessVerifier, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		logger:   logger,
		users:    users,
		verifier: verifier,
	}
}

// Register mounts the admin routes behind the access and role gates.
func (h *AdminHandler) Register(r chi.Router) {
	r.Group(func(ar chi.Router) {
		ar.Use(mwauth.RequireAuth(h.verifier, h.users, h.logger))
		ar.Use(mwadmin.RequireAdmin(h.logger))
		ar.Get("/admin/users/{id}", h.handleGetUser)
	})
}

func (h *AdminHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			writeError(w, dErrors.New(dErrors.CodeNotFound, "User not found"))
		case errors.Is(err, sentinel.ErrUnavailable):
			writeError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "Service temporarily unavailable"))
		default:
			h.logger.ErrorContext(r.Context(), "failed to load user", "error", err.Error())
			writeError(w, dErrors.New(dErrors.CodeInternal, "internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, authModel.NewUserResponse(user))
}
