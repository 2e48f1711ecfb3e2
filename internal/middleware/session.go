package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// SessionMiddleware provides session management functionality
type SessionMiddleware struct {
	store  sessions.Store
	logger *zap.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:  store,
		logger: logger,
	}
}

// ClearInvalidSession drops session cookies that can no longer be decoded,
// e.g. after the session secret was rotated, so the visitor starts over
// with an empty cart instead of an error.
func (m *SessionMiddleware) ClearInvalidSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(SessionName); err == nil {
			// New decodes without touching the per-request registry
			if _, err := m.store.New(r, SessionName); err != nil {
				m.logger.Info("Clearing undecodable session", zap.Error(err))
				http.SetCookie(w, &http.Cookie{
					Name:   SessionName,
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
				r = withoutCookie(r, SessionName)
			}
		}

		next.ServeHTTP(w, r)
	})
}

func withoutCookie(r *http.Request, name string) *http.Request {
	clean := r.Clone(r.Context())
	clean.Header.Del("Cookie")
	for _, c := range r.Cookies() {
		if c.Name != name {
			clean.AddCookie(c)
		}
	}
	return clean
}

// SecureHeaders adds security headers to responses
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:;")

		// Only set HSTS for HTTPS
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
