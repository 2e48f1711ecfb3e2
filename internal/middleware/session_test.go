package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClearInvalidSession(t *testing.T) {
	store := newTestStore()
	m := NewSessionMiddleware(store, zaptest.NewLogger(t))

	var sessionErr error
	var hadCookie bool
	handler := m.ClearInvalidSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(SessionName)
		hadCookie = err == nil
		_, sessionErr = store.Get(r, SessionName)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: "signed-with-an-old-secret"})
	req.AddCookie(&http.Cookie{Name: "other", Value: "kept"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.False(t, hadCookie)
	assert.NoError(t, sessionErr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestClearInvalidSession_ValidSessionUntouched(t *testing.T) {
	store := newTestStore()
	_, cookie := issueToken(t, NewCSRFMiddleware(store, zaptest.NewLogger(t)))
	m := NewSessionMiddleware(store, zaptest.NewLogger(t))

	var hadCookie bool
	handler := m.ClearInvalidSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(SessionName)
		hadCookie = err == nil
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.True(t, hadCookie)
	assert.Empty(t, rr.Result().Cookies())
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest("GET", "/", nil)
	req.TLS = &tls.ConnectionState{}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
}
