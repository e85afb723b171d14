// Package cookies binds the session credentials to the client. Cookies are the
// only transport for token values; they never appear in response bodies.
package cookies

import (
	"net/http"

	"shopgate/internal/auth/token"
)

// Cookie names the storefront frontend depends on.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Binder writes and clears the credential cookie pair. HttpOnly and
// SameSite=Strict always; Secure everywhere except local development.
type Binder struct {
	secure bool
}

func NewBinder(secure bool) *Binder {
	return &Binder{secure: secure}
}

// WriteSession sets both credential cookies, each with its own lifetime.
func (b *Binder) WriteSession(w http.ResponseWriter, accessToken, refreshToken string) {
	b.set(w, AccessTokenCookie, accessToken, int(token.AccessTokenTTL.Seconds()))
	b.set(w, RefreshTokenCookie, refreshToken, int(token.RefreshTokenTTL.Seconds()))
}

// WriteAccess replaces only the access cookie; the refresh cookie keeps its
// original expiry, so the session window stays anchored to the login.
func (b *Binder) WriteAccess(w http.ResponseWriter, accessToken string) {
	b.set(w, AccessTokenCookie, accessToken, int(token.AccessTokenTTL.Seconds()))
}

// Clear removes both credential cookies.
func (b *Binder) Clear(w http.ResponseWriter) {
	b.set(w, AccessTokenCookie, "", -1)
	b.set(w, RefreshTokenCookie, "", -1)
}

func (b *Binder) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ReadAccess returns the access credential from the request, or "".
func ReadAccess(r *http.Request) string {
	return read(r, AccessTokenCookie)
}

// ReadRefresh returns the refresh credential from the request, or "".
func ReadRefresh(r *http.Request) string {
	return read(r, RefreshTokenCookie)
}

func read(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
