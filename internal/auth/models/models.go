// Package models holds the request and response shapes for the auth flows.
package models

import (
	"net/mail"
	"strings"

	"shopgate/internal/users"
	dErrors "shopgate/pkg/domain-errors"
)

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *SignupRequest) Normalize() {
	r.Email = users.NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *SignupRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid email")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	return nil
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = users.NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	return nil
}

// TokenPair bundles the two freshly minted session credentials. It only ever
// travels to the transport binder; token values never appear in response
// bodies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserResponse is the password-hash-free identity projection returned by
// signup, login and profile.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
