// Package service orchestrates the session token lifecycle: issuing the
// access/refresh pair on signup and login, refreshing access tokens against
// the tracked refresh credential, and revoking sessions on logout.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shopgate/internal/audit"
	"shopgate/internal/auth/models"
	refreshtoken "shopgate/internal/auth/store/refresh-token"
	"shopgate/internal/auth/token"
	"shopgate/internal/platform/metrics"
	"shopgate/internal/users"
	dErrors "shopgate/pkg/domain-errors"
	"shopgate/pkg/platform/sentinel"
)

var tracer = otel.Tracer("shopgate/internal/auth/service")

// RequestMeta carries transport facts the service records on audit events.
type RequestMeta struct {
	UserAgent  string
	RemoteAddr string
}

// Service implements the auth flows on top of the user directory, the token
// codec and the refresh token store.
type Service struct {
	users   users.Directory
	tokens  *token.Codec
	refresh refreshtoken.Store
	audit   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNow sets the clock (primarily for testing).
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithAudit attaches the audit publisher.
func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// WithMetrics attaches the prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService wires the auth service. Directory, codec and store are required;
// audit and metrics are optional.
func NewService(
	directory users.Directory,
	codec *token.Codec,
	refresh refreshtoken.Store,
	logger *slog.Logger,
	options ...Option,
) (*Service, error) {
	if directory == nil {
		return nil, errors.New("user directory is required")
	}
	if codec == nil {
		return nil, errors.New("token codec is required")
	}
	if refresh == nil {
		return nil, errors.New("refresh token store is required")
	}

	svc := &Service{
		users:   directory,
		tokens:  codec,
		refresh: refresh,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(svc)
	}
	return svc, nil
}

// Signup registers a new customer account and issues its first session.
func (s *Service) Signup(ctx context.Context, req *models.SignupRequest, meta RequestMeta) (*users.User, *models.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "auth.Signup")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &users.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         users.RoleCustomer,
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Duplicate email answers 400, not 409, matching the storefront
			// clients that already depend on that status.
			return nil, nil, dErrors.New(dErrors.CodeBadRequest, "User already exists")
		}
		span.RecordError(err)
		return nil, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not create account")
	}

	pair, err := s.issueSession(ctx, span, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.count(func(m *metrics.Metrics) { m.SignupsTotal.Inc() })
	s.emit(audit.Event{
		UserID:     user.ID,
		Email:      user.Email,
		Action:     audit.ActionSignup,
		Device:     audit.DeviceName(meta.UserAgent),
		RemoteAddr: meta.RemoteAddr,
	})
	return user, pair, nil
}

// Login authenticates an email/password pair and issues a fresh session,
// replacing whatever refresh credential a previous login tracked.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest, meta RequestMeta) (*users.User, *models.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		span.RecordError(err)
		return nil, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not look up account")
	}

	// Unknown email and wrong password fail identically.
	if err != nil || !user.ComparePassword(req.Password) {
		s.count(func(m *metrics.Metrics) { m.LoginFailuresTotal.Inc() })
		s.emit(audit.Event{
			Email:      req.Email,
			Action:     audit.ActionLoginFailed,
			Device:     audit.DeviceName(meta.UserAgent),
			RemoteAddr: meta.RemoteAddr,
		})
		return nil, nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")
	}

	pair, err := s.issueSession(ctx, span, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.count(func(m *metrics.Metrics) { m.LoginsTotal.Inc() })
	s.emit(audit.Event{
		UserID:     user.ID,
		Email:      user.Email,
		Action:     audit.ActionLogin,
		Device:     audit.DeviceName(meta.UserAgent),
		RemoteAddr: meta.RemoteAddr,
	})
	return user, pair, nil
}

// issueSession mints both credentials and tracks the refresh token before
// anything is returned. If the store write fails the whole issuance fails: an
// untracked refresh token could never be revoked or rotated.
func (s *Service) issueSession(ctx context.Context, span trace.Span, userID string) (*models.TokenPair, error) {
	span.SetAttributes(attribute.String("user.id", userID))

	accessToken, err := s.tokens.IssueAccess(userID)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue session")
	}
	refreshToken, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue session")
	}

	if err := s.refresh.Put(ctx, userID, refreshToken); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "could not establish session")
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) count(inc func(*metrics.Metrics)) {
	if s.metrics != nil {
		inc(s.metrics)
	}
}

func (s *Service) emit(event audit.Event) {
	if s.audit != nil {
		s.audit.Emit(event)
	}
}
