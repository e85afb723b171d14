package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"shopgate/internal/audit"
	"shopgate/internal/auth/token"
	"shopgate/internal/platform/metrics"
	dErrors "shopgate/pkg/domain-errors"
	"shopgate/pkg/platform/sentinel"
)

// Refresh validates a presented refresh credential against the store and, on
// an exact match, mints a new access token. The refresh credential itself is
// deliberately not rotated and its TTL not extended: the session window stays
// anchored to the original login, and a later login elsewhere overwrites the
// tracked value, invalidating this one on its next refresh attempt.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	ctx, span := tracer.Start(ctx, "auth.Refresh")
	defer span.End()

	userID, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		// Expired and forged collapse to the same answer: the client must
		// reauthenticate either way.
		s.rejectRefresh("", "")
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid refresh token")
	}

	stored, err := s.refresh.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			span.RecordError(err)
			return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "could not verify session")
		}
		// Absent entry: revoked by logout, or expired server-side.
		s.rejectRefresh(userID, "")
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid refresh token")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		// Superseded by a newer login for this user.
		s.rejectRefresh(userID, "")
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid refresh token")
	}

	accessToken, err := s.tokens.IssueAccess(userID)
	if err != nil {
		span.RecordError(err)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not refresh token")
	}

	s.count(func(m *metrics.Metrics) { m.TokenRefreshesTotal.Inc() })
	s.emit(audit.Event{UserID: userID, Action: audit.ActionTokenRefresh})
	return accessToken, nil
}

func (s *Service) rejectRefresh(userID, email string) {
	s.count(func(m *metrics.Metrics) { m.RefreshRejectionsTotal.Inc() })
	s.emit(audit.Event{UserID: userID, Email: email, Action: audit.ActionRefreshRejected})
}
