package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedCookies(t *testing.T, write func(w http.ResponseWriter)) map[string]*http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	write(rr)

	out := make(map[string]*http.Cookie)
	for _, c := range rr.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestWriteSession(t *testing.T) {
	binder := NewBinder(true)
	got := recordedCookies(t, func(w http.ResponseWriter) {
		binder.WriteSession(w, "access-val", "refresh-val")
	})

	access := got[AccessTokenCookie]
	require.NotNil(t, access)
	assert.Equal(t, "access-val", access.Value)
	assert.Equal(t, 15*60, access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)

	refresh := got[RefreshTokenCookie]
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-val", refresh.Value)
	assert.Equal(t, 7*24*60*60, refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)
}

func TestWriteAccessLeavesRefreshAlone(t *testing.T) {
	binder := NewBinder(false)
	got := recordedCookies(t, func(w http.ResponseWriter) {
		binder.WriteAccess(w, "new-access")
	})

	require.Len(t, got, 1)
	require.NotNil(t, got[AccessTokenCookie])
	assert.False(t, got[AccessTokenCookie].Secure, "development binder leaves Secure off")
}

func TestClear(t *testing.T) {
	binder := NewBinder(true)
	got := recordedCookies(t, func(w http.ResponseWriter) {
		binder.Clear(w)
	})

	require.Len(t, got, 2)
	for _, c := range got {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestReadHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	assert.Empty(t, ReadAccess(r))
	assert.Empty(t, ReadRefresh(r))

	r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "a"})
	r.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "r"})
	assert.Equal(t, "a", ReadAccess(r))
	assert.Equal(t, "r", ReadRefresh(r))
}
