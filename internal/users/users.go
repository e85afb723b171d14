// Package users is the user directory: it owns identity records and password
// verification. Auth flows only ever read identities; nothing here knows about
// tokens or cookies.
package users

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	dErrors "shopgate/pkg/domain-errors"
)

// Role values permitted on a user record.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const minPasswordLength = 6

// User is the primary identity record. PasswordHash never serializes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ComparePassword reports whether candidate matches the stored hash.
func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", dErrors.New(dErrors.CodeBadRequest, "password must be at least 6 characters long")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}
	return string(hashed), nil
}

// NormalizeEmail lowercases and trims an email the way records are stored,
// so lookups and uniqueness checks agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Directory is the read/create contract the auth service depends on.
//
// Error Contract:
// - FindByID / FindByEmail return an error wrapping sentinel.ErrNotFound when
//   no record exists.
// - Create returns an error wrapping sentinel.ErrConflict when the email is
//   already registered.
// - Infrastructure failures come back wrapped with context.
type Directory interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
