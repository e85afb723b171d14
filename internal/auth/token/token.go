// Package token signs and verifies the two session credentials. Both kinds are
// stateless HS256 JWTs; validity of an access token is signature plus expiry
// only, while refresh tokens are additionally checked against the server-side
// store by the auth service.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopgate/pkg/platform/sentinel"
)

// Kind selects which signing secret and lifetime a credential uses.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Credential lifetimes. Access tokens stay short so that a revoked session
// goes stale quickly; refresh tokens carry the 7-day session window.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims carried by both credential kinds.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session credentials. The two secrets are
// independent so a leak of one cannot forge the other kind.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	now           func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithNow sets the clock used for issuance (primarily for testing).
func WithNow(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec constructs a Codec from the two signing secrets.
func NewCodec(accessSecret, refreshSecret string, options ...CodecOption) *Codec {
	c := &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        "shopgate",
		now:           time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// IssueAccess signs a short-lived access credential for the given user.
func (c *Codec) IssueAccess(userID string) (string, error) {
	return c.issue(userID, KindAccess)
}

// IssueRefresh signs a long-lived refresh credential for the given user.
func (c *Codec) IssueRefresh(userID string) (string, error) {
	return c.issue(userID, KindRefresh)
}

func (c *Codec) issue(userID string, kind Kind) (string, error) {
	secret, ttl, err := c.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := c.now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
		},
	})

	signedToken, err := newToken.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signedToken, nil
}

// Verify checks a credential of the given kind and returns the user ID it was
// issued for. Expired-but-authentic tokens fail with sentinel.ErrExpired; any
// structural or signature problem fails with sentinel.ErrInvalid, so callers
// can tell "refresh needed" apart from "reauthenticate".
func (c *Codec) Verify(tokenString string, kind Kind) (string, error) {
	secret, _, err := c.kindParams(kind)
	if err != nil {
		return "", err
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s token expired: %w", kind, sentinel.ErrExpired)
		}
		return "", fmt.Errorf("%s token rejected: %w", kind, sentinel.ErrInvalid)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return "", fmt.Errorf("%s token claims rejected: %w", kind, sentinel.ErrInvalid)
	}

	return claims.UserID, nil
}

// VerifyAccess is the Verify shorthand the request middleware uses.
func (c *Codec) VerifyAccess(tokenString string) (string, error) {
	return c.Verify(tokenString, KindAccess)
}

func (c *Codec) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return c.accessSecret, AccessTokenTTL, nil
	case KindRefresh:
		return c.refreshSecret, RefreshTokenTTL, nil
	default:
		return nil, 0, fmt.Errorf("unknown token kind %q: %w", kind, sentinel.ErrInvalid)
	}
}
