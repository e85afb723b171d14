package service

import (
	"context"

	"shopgate/internal/audit"
	"shopgate/internal/auth/token"
)

// Logout revokes the tracked refresh credential and is intentionally
// infallible from the caller's view: a stale or forged cookie must never block
// logging out, so verification and store failures are logged and swallowed.
// The transport layer clears both cookies unconditionally afterwards.
func (s *Service) Logout(ctx context.Context, refreshToken string, meta RequestMeta) {
	ctx, span := tracer.Start(ctx, "auth.Logout")
	defer span.End()

	if refreshToken == "" {
		return
	}

	userID, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		s.logger.Warn("logout with unverifiable refresh token", "error", err)
		return
	}

	removed, err := s.refresh.Delete(ctx, userID)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("could not delete refresh token on logout", "error", err, "user_id", userID)
	} else {
		s.logger.Debug("refresh token deleted on logout", "user_id", userID, "removed", removed)
	}

	s.emit(audit.Event{
		UserID:     userID,
		Action:     audit.ActionLogout,
		Device:     audit.DeviceName(meta.UserAgent),
		RemoteAddr: meta.RemoteAddr,
	})
}
