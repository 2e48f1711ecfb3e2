package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"photo-storefront/internal/utils"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// SessionName is the cookie name of the storefront session
const SessionName = "storefront"

type contextKey string

const (
	csrfTokenKey contextKey = "csrf_token"
	requestIDKey contextKey = "request_id"
)

// CSRFMiddleware provides CSRF protection functionality
type CSRFMiddleware struct {
	store  sessions.Store
	logger *zap.Logger
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(store sessions.Store, logger *zap.Logger) *CSRFMiddleware {
	return &CSRFMiddleware{
		store:  store,
		logger: logger,
	}
}

// CSRFProtection middleware provides CSRF protection for state-changing requests
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip CSRF check for safe methods
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r, SessionName)
		if err != nil {
			WriteErrorFragment(w, r, http.StatusInternalServerError, "Session error. Please refresh the page and try again.")
			return
		}

		sessionToken, _ := session.Values["csrf_token"].(string)

		requestToken := r.Header.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = r.FormValue("csrf_token")
		}

		if sessionToken == "" || subtle.ConstantTimeCompare([]byte(requestToken), []byte(sessionToken)) != 1 {
			m.logger.Warn("CSRF token mismatch",
				zap.String("path", r.URL.Path),
				zap.Bool("session_token", sessionToken != ""),
				zap.Bool("request_token", requestToken != ""),
			)
			WriteErrorFragment(w, r, http.StatusForbidden, "Security token mismatch. Please refresh the page and try again.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EnsureCSRFToken middleware ensures a CSRF token is present in the session and context
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			m.logger.Debug("Failed to get session for CSRF token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values["csrf_token"].(string)
		if !ok || token == "" {
			token = GenerateCSRFToken()
			session.Values["csrf_token"] = token
			if err := session.Save(r, w); err != nil {
				m.logger.Error("Failed to save CSRF token", zap.Error(err))
			}
		}

		ctx := context.WithValue(r.Context(), csrfTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() string {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return token
}

// CSRFTokenFromContext returns the token placed by EnsureCSRFToken
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}
